package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stockcontrol-gateway/internal/application/dto"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/inventory"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
	"github.com/jhoicas/stockcontrol-gateway/internal/infrastructure/cache"
	"github.com/jhoicas/stockcontrol-gateway/pkg/format"
)

// TransactionUseCase registra, lista y corrige entradas y salidas de estoque.
// Las correcciones pasan por el CostEngine configurado; toda mutación invalida la
// caché de listados.
type TransactionUseCase struct {
	txs    repository.TransactionRepository
	users  repository.UserRepository
	costs  AverageCoster
	engine CostEngine
	cache  TransactionCache
	log    zerolog.Logger
	now    func() time.Time
	loc    *time.Location
}

// Option configura el caso de uso.
type Option func(*TransactionUseCase)

// WithLogger fija el logger.
func WithLogger(l zerolog.Logger) Option {
	return func(uc *TransactionUseCase) { uc.log = l }
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *TransactionUseCase) { uc.now = now }
}

// WithLocation zona horaria en la que se interpretan fecha y hora de los formularios.
func WithLocation(loc *time.Location) Option {
	return func(uc *TransactionUseCase) {
		if loc != nil {
			uc.loc = loc
		}
	}
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(
	txs repository.TransactionRepository,
	users repository.UserRepository,
	costs AverageCoster,
	engine CostEngine,
	cache TransactionCache,
	opts ...Option,
) *TransactionUseCase {
	uc := &TransactionUseCase{
		txs:    txs,
		users:  users,
		costs:  costs,
		engine: engine,
		cache:  cache,
		log:    zerolog.Nop(),
		now:    time.Now,
		loc:    time.UTC,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Engine nombre del motor de costos activo.
func (uc *TransactionUseCase) Engine() string {
	return uc.engine.Name()
}

// ListUnified listado combinado de entradas y salidas, servido desde la caché si la
// misma consulta se hizo hace menos del TTL.
func (uc *TransactionUseCase) ListUnified(ctx context.Context, f repository.TransactionFilter) (dto.PageResponse[dto.TransactionResponse], error) {
	key := cache.Key(UnifiedEndpoint, f.Query())
	if page, ok := uc.cache.Get(key); ok {
		return dto.NewPageResponse(page, ToTransactionResponse), nil
	}
	page, err := uc.txs.ListUnified(ctx, f)
	if err != nil {
		return dto.PageResponse[dto.TransactionResponse]{}, err
	}
	uc.cache.Set(key, page)
	return dto.NewPageResponse(page, ToTransactionResponse), nil
}

// ListAll recorre todas las páginas del listado unificado (exportaciones).
func (uc *TransactionUseCase) ListAll(ctx context.Context, f repository.TransactionFilter) ([]entity.Transaction, error) {
	out := make([]entity.Transaction, 0)
	f.Page = 1
	for {
		page, err := uc.txs.ListUnified(ctx, f)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Results...)
		if !page.HasNext || len(page.Results) == 0 {
			return out, nil
		}
		f.Page++
	}
}

// History histórico completo de un SKU en orden canónico.
func (uc *TransactionUseCase) History(ctx context.Context, sku string) ([]dto.TransactionResponse, error) {
	history, err := uc.txs.History(ctx, sku)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(history))
	for _, tx := range inventory.Chronological(history) {
		out = append(out, ToTransactionResponse(tx))
	}
	return out, nil
}

// ValidateOperation indica si eliminar o editar la transacción mantiene el stock >= 0.
func (uc *TransactionUseCase) ValidateOperation(ctx context.Context, in dto.ValidateOperationRequest) (*dto.ValidationResponse, error) {
	op := repository.StockOperationType(in.OperationType)
	if op != repository.StockOperationDelete && op != repository.StockOperationEdit {
		return nil, &FormError{Message: fmt.Sprintf("operación desconocida %q", in.OperationType)}
	}
	if op == repository.StockOperationEdit && in.NewQuantity == nil {
		return nil, &FormError{Message: "la edición requiere la nueva cantidad"}
	}
	tx, err := uc.locate(ctx, in.TransactionID)
	if err != nil {
		return nil, err
	}
	v, err := uc.engine.Validate(ctx, *tx, op, in.NewQuantity)
	if err != nil {
		return nil, err
	}
	return toValidationResponse(v), nil
}

// RecalculateCosts fuerza el recálculo de las salidas posteriores a la transacción.
func (uc *TransactionUseCase) RecalculateCosts(ctx context.Context, formattedID string) (*dto.RecalculationResponse, error) {
	tx, err := uc.locate(ctx, formattedID)
	if err != nil {
		return nil, err
	}
	report, err := uc.engine.Recalculate(ctx, *tx)
	uc.invalidate()
	return ToRecalculationResponse(report), err
}

// Delete elimina una transacción. Si la eliminación dejaría stock negativo devuelve
// *StockError sin modificar nada.
func (uc *TransactionUseCase) Delete(ctx context.Context, formattedID string) (*dto.MutationResponse, error) {
	tx, err := uc.locate(ctx, formattedID)
	if err != nil {
		return nil, err
	}
	outcome, err := uc.engine.Delete(ctx, *tx)
	if outcome != nil {
		uc.invalidate()
	}
	return toMutationResponse(outcome, nil, err), err
}

// Update aplica cambios a una transacción existente.
func (uc *TransactionUseCase) Update(ctx context.Context, formattedID string, in dto.UpdateTransactionRequest) (*dto.MutationResponse, error) {
	changes := entity.TransactionChanges{
		Quantity:    in.Quantity,
		UnitCost:    in.UnitCost,
		InvoiceCode: in.CodNf,
		SupplierID:  in.SupplierID,
		SKU:         in.Sku,
	}
	if changes.Empty() {
		return nil, &FormError{Message: "no hay cambios que aplicar"}
	}
	if msg := validateChanges(changes); msg != "" {
		return nil, &FormError{Message: msg}
	}
	tx, err := uc.locate(ctx, formattedID)
	if err != nil {
		return nil, err
	}
	outcome, err := uc.engine.Update(ctx, *tx, changes)
	if outcome != nil {
		uc.invalidate()
	}
	return toMutationResponse(outcome, nil, err), err
}

// locate reconstruye la transacción a partir de su id compuesto (detalle + cabecera).
func (uc *TransactionUseCase) locate(ctx context.Context, formattedID string) (*entity.Transaction, error) {
	kind, detailID, err := entity.ParseTransactionID(formattedID)
	if err != nil {
		return nil, &FormError{Message: err.Error()}
	}
	detail, err := uc.txs.GetDetail(ctx, kind, detailID)
	if err != nil {
		return nil, fmt.Errorf("transacción %s: %w", formattedID, err)
	}
	rec, err := uc.txs.GetRecord(ctx, detail.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("transacción %s: %w", formattedID, err)
	}
	return &entity.Transaction{
		ID:          rec.ID,
		DetailID:    detail.ID,
		Type:        kind,
		SKU:         rec.SKU,
		Quantity:    rec.Quantity,
		UnitCost:    rec.UnitCost,
		OccurredAt:  detail.OccurredAt,
		SupplierID:  rec.SupplierID,
		InvoiceCode: rec.InvoiceCode,
	}, nil
}

func (uc *TransactionUseCase) invalidate() {
	n := uc.cache.ClearEndpoint(UnifiedEndpoint)
	uc.log.Debug().Int("entries", n).Msg("caché de transacciones invalidada")
}

// ToTransactionResponse mapea una transacción unificada.
func ToTransactionResponse(tx entity.Transaction) dto.TransactionResponse {
	total := tx.TotalCost()
	return dto.TransactionResponse{
		ID:                 tx.FormattedID(),
		IdTransacao:        tx.ID,
		TransactionType:    string(tx.Type),
		Date:               tx.OccurredAt.Format(entity.DateLayout),
		Time:               tx.OccurredAt.Format(entity.TimeLayout),
		Sku:                tx.SKU,
		Description:        tx.Description,
		Quantity:           tx.Quantity,
		UnityMeasure:       tx.UnitMeasure,
		UnitCost:           tx.UnitCost,
		TotalCost:          total,
		UnitCostFormatted:  format.Currency(tx.UnitCost),
		TotalCostFormatted: format.Currency(total),
		NotaFiscal:         tx.InvoiceCode,
		Username:           tx.Username,
	}
}

func toValidationResponse(v *Validation) *dto.ValidationResponse {
	out := &dto.ValidationResponse{Valid: v.Valid, Message: v.Message}
	for _, tx := range v.DependentExits {
		out.DependentExits = append(out.DependentExits, tx.FormattedID())
	}
	return out
}

// ToRecalculationResponse mapea el informe de recálculo.
func ToRecalculationResponse(r *RecalculationReport) *dto.RecalculationResponse {
	if r == nil {
		return nil
	}
	out := &dto.RecalculationResponse{
		Engine:       r.Engine,
		Success:      r.Success,
		Message:      r.Message,
		Updated:      make([]dto.CostUpdateResponse, 0, len(r.Updated)),
		UpdatedCount: r.UpdatedCount,
	}
	for _, u := range r.Updated {
		out.Updated = append(out.Updated, toCostUpdateResponse(u))
	}
	if r.Failed != nil {
		f := toCostUpdateResponse(r.Failed.Update)
		f.Error = r.Failed.Err.Error()
		out.Failed = &f
	}
	for _, u := range r.NotAttempted {
		out.NotAttempted = append(out.NotAttempted, toCostUpdateResponse(u))
	}
	return out
}

func toCostUpdateResponse(u inventory.CostUpdate) dto.CostUpdateResponse {
	return dto.CostUpdateResponse{
		IdTransacao: u.TransactionID,
		ID:          entity.FormatTransactionID(entity.TransactionExit, u.DetailID),
		OldCost:     u.PreviousCost,
		NewCost:     u.NewCost,
	}
}

func toMutationResponse(o *Outcome, tx *entity.Transaction, err error) *dto.MutationResponse {
	if o == nil {
		return nil
	}
	out := &dto.MutationResponse{
		Success:       err == nil,
		Message:       o.Message,
		Recalculation: ToRecalculationResponse(o.Recalculation),
	}
	if err != nil && o.Recalculation != nil && o.Recalculation.Message != "" {
		out.Message = o.Message + "; " + o.Recalculation.Message
	}
	if tx != nil {
		t := ToTransactionResponse(*tx)
		out.Transaction = &t
	}
	return out
}

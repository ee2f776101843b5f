package rest

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
	"github.com/jhoicas/stockcontrol-gateway/internal/infrastructure/api"
)

var _ repository.TransactionRepository = (*TransactionRepository)(nil)

// TransactionRepository implementación REST sobre transacoes, entradas, saidas y
// unified-transactions. Fechas y horas del backend se interpretan en loc.
type TransactionRepository struct {
	client *api.Client
	loc    *time.Location
}

// NewTransactionRepository construye el repositorio. loc nil equivale a UTC.
func NewTransactionRepository(c *api.Client, loc *time.Location) *TransactionRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &TransactionRepository{client: c, loc: loc}
}

type unifiedWire struct {
	ID              string          `json:"id"`
	IdTransacao     int64           `json:"idTransacao"`
	TransactionType string          `json:"transactionType"`
	Date            string          `json:"date"`
	Time            string          `json:"time"`
	Sku             flexString      `json:"sku"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnityMeasure    string          `json:"unityMeasure"`
	UnitCost        decimal.Decimal `json:"unitCost"`
	NotaFiscal      *string         `json:"notaFiscal"`
	Username        string          `json:"username"`
	CodFornecedor   *int64          `json:"codFornecedor"`
}

func (r *TransactionRepository) fromUnified(w unifiedWire) (entity.Transaction, error) {
	kind, detailID, err := entity.ParseTransactionID(w.ID)
	if err != nil {
		return entity.Transaction{}, err
	}
	at, err := entity.ParseOccurredAt(w.Date, w.Time, r.loc)
	if err != nil {
		return entity.Transaction{}, fmt.Errorf("transacción %s: %w", w.ID, err)
	}
	tx := entity.Transaction{
		ID:          w.IdTransacao,
		DetailID:    detailID,
		Type:        kind,
		SKU:         string(w.Sku),
		Quantity:    w.Quantity,
		UnitCost:    w.UnitCost,
		OccurredAt:  at,
		SupplierID:  w.CodFornecedor,
		Description: w.Description,
		UnitMeasure: w.UnityMeasure,
		Username:    w.Username,
	}
	if w.NotaFiscal != nil {
		tx.InvoiceCode = *w.NotaFiscal
	}
	return tx, nil
}

func (r *TransactionRepository) ListUnified(ctx context.Context, f repository.TransactionFilter) (*repository.Page[entity.Transaction], error) {
	var out wirePage[unifiedWire]
	if err := r.client.Get(ctx, pathUnified, f.Query(), &out); err != nil {
		return nil, fmt.Errorf("unified-transactions: %w", err)
	}
	return toPage(&out, f.Page, r.fromUnified)
}

// History trae todas las páginas de unified-transactions filtradas por SKU.
// El filtro del backend es exacto; se descarta cualquier otro SKU por seguridad.
func (r *TransactionRepository) History(ctx context.Context, sku string) ([]entity.Transaction, error) {
	rows, err := fetchAll[unifiedWire](ctx, r.client, pathUnified, url.Values{"sku": {sku}})
	if err != nil {
		return nil, fmt.Errorf("histórico de %s: %w", sku, err)
	}
	out := make([]entity.Transaction, 0, len(rows))
	for _, w := range rows {
		if string(w.Sku) != sku {
			continue
		}
		tx, err := r.fromUnified(w)
		if err != nil {
			return nil, fmt.Errorf("histórico de %s: %w", sku, err)
		}
		out = append(out, tx)
	}
	return out, nil
}

type transacaoWire struct {
	IdTransacao   int64           `json:"idTransacao,omitempty"`
	CodNf         *string         `json:"codNf"`
	CodSku        flexString      `json:"codSku"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	ValorUnit     decimal.Decimal `json:"valorUnit"`
	CodFornecedor *int64          `json:"codFornecedor"`
}

func (w transacaoWire) toEntity() entity.TransactionRecord {
	rec := entity.TransactionRecord{
		ID:         w.IdTransacao,
		SKU:        string(w.CodSku),
		Quantity:   w.Quantidade,
		UnitCost:   w.ValorUnit,
		SupplierID: w.CodFornecedor,
	}
	if w.CodNf != nil {
		rec.InvoiceCode = *w.CodNf
	}
	return rec
}

func transacaoBody(rec *entity.TransactionRecord) transacaoWire {
	w := transacaoWire{
		IdTransacao:   rec.ID,
		CodSku:        flexString(rec.SKU),
		Quantidade:    rec.Quantity,
		ValorUnit:     rec.UnitCost,
		CodFornecedor: rec.SupplierID,
	}
	if rec.InvoiceCode != "" {
		nf := rec.InvoiceCode
		w.CodNf = &nf
	}
	return w
}

func recordPath(id int64) string {
	return pathTransactions + strconv.FormatInt(id, 10) + "/"
}

func (r *TransactionRepository) GetRecord(ctx context.Context, id int64) (*entity.TransactionRecord, error) {
	var out transacaoWire
	if err := r.client.Get(ctx, recordPath(id), nil, &out); err != nil {
		return nil, fmt.Errorf("obtener transacao %d: %w", id, err)
	}
	rec := out.toEntity()
	return &rec, nil
}

func (r *TransactionRepository) CreateRecord(ctx context.Context, rec *entity.TransactionRecord) (*entity.TransactionRecord, error) {
	body := transacaoBody(rec)
	body.IdTransacao = 0
	var out transacaoWire
	if err := r.client.Post(ctx, pathTransactions, body, &out); err != nil {
		return nil, fmt.Errorf("crear transacao: %w", err)
	}
	created := out.toEntity()
	return &created, nil
}

func (r *TransactionRepository) UpdateRecord(ctx context.Context, rec *entity.TransactionRecord) (*entity.TransactionRecord, error) {
	var out transacaoWire
	if err := r.client.Put(ctx, recordPath(rec.ID), transacaoBody(rec), &out); err != nil {
		return nil, fmt.Errorf("actualizar transacao %d: %w", rec.ID, err)
	}
	updated := out.toEntity()
	return &updated, nil
}

func (r *TransactionRepository) DeleteRecord(ctx context.Context, id int64) error {
	if err := r.client.Delete(ctx, recordPath(id)); err != nil {
		return fmt.Errorf("eliminar transacao %d: %w", id, err)
	}
	return nil
}

// detailWire cubre entradas (codEntrada/dataEntrada/horaEntrada) y saidas
// (codPedido/dataSaida/horaSaida).
type detailWire struct {
	CodEntrada  int64  `json:"codEntrada,omitempty"`
	CodPedido   int64  `json:"codPedido,omitempty"`
	Transacao   int64  `json:"transacao"`
	MatUsuario  int64  `json:"matUsuario"`
	DataEntrada string `json:"dataEntrada,omitempty"`
	HoraEntrada string `json:"horaEntrada,omitempty"`
	DataSaida   string `json:"dataSaida,omitempty"`
	HoraSaida   string `json:"horaSaida,omitempty"`
}

func (r *TransactionRepository) fromDetail(kind entity.TransactionType, w detailWire) (*entity.TransactionDetail, error) {
	d := &entity.TransactionDetail{Type: kind, TransactionID: w.Transacao, UserID: w.MatUsuario}
	date, clock := w.DataEntrada, w.HoraEntrada
	d.ID = w.CodEntrada
	if kind == entity.TransactionExit {
		date, clock = w.DataSaida, w.HoraSaida
		d.ID = w.CodPedido
	}
	at, err := entity.ParseOccurredAt(date, clock, r.loc)
	if err != nil {
		return nil, err
	}
	d.OccurredAt = at
	return d, nil
}

func detailPath(kind entity.TransactionType, id int64) string {
	base := pathEntries
	if kind == entity.TransactionExit {
		base = pathExits
	}
	if id == 0 {
		return base
	}
	return base + strconv.FormatInt(id, 10) + "/"
}

func (r *TransactionRepository) GetDetail(ctx context.Context, kind entity.TransactionType, id int64) (*entity.TransactionDetail, error) {
	var out detailWire
	if err := r.client.Get(ctx, detailPath(kind, id), nil, &out); err != nil {
		return nil, fmt.Errorf("obtener %s %d: %w", kind, id, err)
	}
	return r.fromDetail(kind, out)
}

func (r *TransactionRepository) CreateDetail(ctx context.Context, d *entity.TransactionDetail) (*entity.TransactionDetail, error) {
	at := d.OccurredAt.In(r.loc)
	body := detailWire{Transacao: d.TransactionID, MatUsuario: d.UserID}
	if d.Type == entity.TransactionExit {
		body.DataSaida = at.Format(entity.DateLayout)
		body.HoraSaida = at.Format(entity.TimeLayout)
	} else {
		body.DataEntrada = at.Format(entity.DateLayout)
		body.HoraEntrada = at.Format(entity.TimeLayout)
	}
	var out detailWire
	if err := r.client.Post(ctx, detailPath(d.Type, 0), body, &out); err != nil {
		return nil, fmt.Errorf("crear %s: %w", d.Type, err)
	}
	return r.fromDetail(d.Type, out)
}

func (r *TransactionRepository) DeleteDetail(ctx context.Context, kind entity.TransactionType, id int64) error {
	if err := r.client.Delete(ctx, detailPath(kind, id)); err != nil {
		return fmt.Errorf("eliminar %s %d: %w", kind, id, err)
	}
	return nil
}

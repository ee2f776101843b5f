package inventory_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockcontrol-gateway/internal/application/dto"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var baseDay = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func entry(id int64, hour int, qty, cost string) entity.Transaction {
	return entity.Transaction{
		ID: id, DetailID: id * 10, Type: entity.TransactionEntry, SKU: "A",
		Quantity: d(qty), UnitCost: d(cost), OccurredAt: baseDay.Add(time.Duration(hour) * time.Hour),
	}
}

func exit(id int64, hour int, qty, cost string) entity.Transaction {
	tx := entry(id, hour, qty, cost)
	tx.Type = entity.TransactionExit
	return tx
}

// fakeTxRepo backend en memoria: cada transacción es cabecera + detalle.
type fakeTxRepo struct {
	mu        sync.Mutex
	txs       []entity.Transaction
	nextID    int64
	pending   map[int64]entity.TransactionRecord
	failOn    map[int64]error // UpdateRecord falla para estos ids
	detailErr error

	listCalls     int
	recordUpdates []int64
	deletedIDs    []int64
	mutations     int
}

func newFakeTxRepo(txs ...entity.Transaction) *fakeTxRepo {
	return &fakeTxRepo{txs: txs, nextID: 100, pending: map[int64]entity.TransactionRecord{}, failOn: map[int64]error{}}
}

func (r *fakeTxRepo) find(id int64) (int, bool) {
	for i, tx := range r.txs {
		if tx.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (r *fakeTxRepo) ListUnified(_ context.Context, f repository.TransactionFilter) (*repository.Page[entity.Transaction], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	out := append([]entity.Transaction{}, r.txs...)
	return &repository.Page[entity.Transaction]{Results: out, Count: len(out), Page: 1}, nil
}

func (r *fakeTxRepo) History(_ context.Context, sku string) ([]entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.Transaction{}
	for _, tx := range r.txs {
		if tx.SKU == sku {
			out = append(out, tx)
		}
	}
	// el backend no garantiza orden
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeTxRepo) GetRecord(_ context.Context, id int64) (*entity.TransactionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.find(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	tx := r.txs[i]
	return &entity.TransactionRecord{ID: tx.ID, SKU: tx.SKU, Quantity: tx.Quantity, UnitCost: tx.UnitCost, InvoiceCode: tx.InvoiceCode, SupplierID: tx.SupplierID}, nil
}

func (r *fakeTxRepo) CreateRecord(_ context.Context, rec *entity.TransactionRecord) (*entity.TransactionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mutations++
	r.nextID++
	out := *rec
	out.ID = r.nextID
	r.pending[out.ID] = out
	return &out, nil
}

func (r *fakeTxRepo) UpdateRecord(_ context.Context, rec *entity.TransactionRecord) (*entity.TransactionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failOn[rec.ID]; err != nil {
		return nil, err
	}
	i, ok := r.find(rec.ID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	r.mutations++
	r.recordUpdates = append(r.recordUpdates, rec.ID)
	r.txs[i].SKU = rec.SKU
	r.txs[i].Quantity = rec.Quantity
	r.txs[i].UnitCost = rec.UnitCost
	r.txs[i].InvoiceCode = rec.InvoiceCode
	r.txs[i].SupplierID = rec.SupplierID
	out := *rec
	return &out, nil
}

func (r *fakeTxRepo) DeleteRecord(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mutations++
	r.deletedIDs = append(r.deletedIDs, id)
	delete(r.pending, id)
	if i, ok := r.find(id); ok {
		r.txs = append(r.txs[:i], r.txs[i+1:]...)
	}
	return nil
}

func (r *fakeTxRepo) GetDetail(_ context.Context, kind entity.TransactionType, id int64) (*entity.TransactionDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tx := range r.txs {
		if tx.Type == kind && tx.DetailID == id {
			return &entity.TransactionDetail{ID: tx.DetailID, Type: kind, TransactionID: tx.ID, UserID: 8, OccurredAt: tx.OccurredAt}, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeTxRepo) CreateDetail(_ context.Context, det *entity.TransactionDetail) (*entity.TransactionDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.detailErr != nil {
		return nil, r.detailErr
	}
	rec, ok := r.pending[det.TransactionID]
	if !ok {
		return nil, errors.New("cabecera inexistente")
	}
	r.mutations++
	delete(r.pending, det.TransactionID)
	out := *det
	out.ID = det.TransactionID * 10
	r.txs = append(r.txs, entity.Transaction{
		ID: rec.ID, DetailID: out.ID, Type: det.Type, SKU: rec.SKU, Quantity: rec.Quantity,
		UnitCost: rec.UnitCost, OccurredAt: det.OccurredAt, SupplierID: rec.SupplierID, InvoiceCode: rec.InvoiceCode,
	})
	return &out, nil
}

func (r *fakeTxRepo) DeleteDetail(_ context.Context, kind entity.TransactionType, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mutations++
	return nil
}

func (r *fakeTxRepo) costOf(id int64) decimal.Decimal {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, _ := r.find(id)
	return r.txs[i].UnitCost
}

type fakeUsers struct {
	repository.UserRepository
	inventoryUser *entity.InventoryUser
}

func (f fakeUsers) InventoryUser(context.Context) (*entity.InventoryUser, error) {
	return f.inventoryUser, nil
}

type fakeCoster struct{ avg decimal.Decimal }

func (f fakeCoster) AverageCost(_ context.Context, sku string) (*dto.ItemCostResponse, error) {
	return &dto.ItemCostResponse{Sku: sku, AverageCost: f.avg}, nil
}

// fakeOps endpoints de corrección del backend.
type fakeOps struct {
	validation   repository.StockValidation
	recalc       repository.RecalculationResult
	operation    repository.OperationResult
	deleteCalls  int
	updateCalls  int
	recalcCalls  int
	validateArgs []repository.StockOperationType
}

func (f *fakeOps) RecalculateCosts(context.Context, int64, string) (*repository.RecalculationResult, error) {
	f.recalcCalls++
	out := f.recalc
	return &out, nil
}

func (f *fakeOps) ValidateStockOperation(_ context.Context, _ string, op repository.StockOperationType, _ *int64, _ *decimal.Decimal) (*repository.StockValidation, error) {
	f.validateArgs = append(f.validateArgs, op)
	out := f.validation
	return &out, nil
}

func (f *fakeOps) DeleteTransaction(context.Context, string) (*repository.OperationResult, error) {
	f.deleteCalls++
	out := f.operation
	return &out, nil
}

func (f *fakeOps) UpdateTransaction(context.Context, string, repository.TransactionUpdate) (*repository.OperationResult, error) {
	f.updateCalls++
	out := f.operation
	return &out, nil
}

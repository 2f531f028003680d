package production_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastano/costeo-api/internal/application/production"
	"github.com/jmcastano/costeo-api/internal/domain"
	"github.com/jmcastano/costeo-api/internal/domain/costing"
	"github.com/jmcastano/costeo-api/internal/domain/entity"
	"github.com/jmcastano/costeo-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un almacén compartido, repos que lo mutan y un runner que
// restaura un snapshot cuando fn falla, imitando el rollback transaccional.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	lotes     map[string]*entity.InsumoLote
	productos map[string]*entity.Producto
	records   []*entity.ProductionRecord
}

func newMemStore() *memStore {
	return &memStore{
		lotes:     make(map[string]*entity.InsumoLote),
		productos: make(map[string]*entity.Producto),
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for id, l := range s.lotes {
		cp := *l
		c.lotes[id] = &cp
	}
	for id, p := range s.productos {
		cp := *p
		cp.Recipe = append([]entity.RecipeItem(nil), p.Recipe...)
		c.productos[id] = &cp
	}
	for _, r := range s.records {
		cp := *r
		c.records = append(c.records, &cp)
	}
	return c
}

type memLoteRepo struct{ s *memStore }

func (r *memLoteRepo) Create(l *entity.InsumoLote) error {
	cp := *l
	r.s.lotes[l.ID] = &cp
	return nil
}

func (r *memLoteRepo) GetByID(userID, id string) (*entity.InsumoLote, error) {
	l, ok := r.s.lotes[id]
	if !ok || l.UserID != userID {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *memLoteRepo) ListAvailable(userID, insumoID string) ([]entity.InsumoLote, error) {
	var out []entity.InsumoLote
	for _, l := range r.s.lotes {
		if l.UserID == userID && l.InsumoID == insumoID && l.QuantityRemaining.IsPositive() {
			out = append(out, *l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PurchaseDate.Equal(out[j].PurchaseDate) {
			return out[i].PurchaseDate.After(out[j].PurchaseDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memLoteRepo) ListAvailableForUpdate(userID, insumoID string) ([]entity.InsumoLote, error) {
	return r.ListAvailable(userID, insumoID)
}

func (r *memLoteRepo) ListByInsumo(userID, insumoID string) ([]entity.InsumoLote, error) {
	var out []entity.InsumoLote
	for _, l := range r.s.lotes {
		if l.UserID == userID && l.InsumoID == insumoID {
			out = append(out, *l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PurchaseDate.Before(out[j].PurchaseDate)
	})
	return out, nil
}

func (r *memLoteRepo) DecrementRemaining(id string, amount decimal.Decimal) error {
	l, ok := r.s.lotes[id]
	if !ok || l.QuantityRemaining.LessThan(amount) {
		return domain.ErrStockConflict
	}
	l.QuantityRemaining = l.QuantityRemaining.Sub(amount)
	return nil
}

func (r *memLoteRepo) DeleteIfUntouched(userID, id string) error {
	l, ok := r.s.lotes[id]
	if !ok || l.UserID != userID {
		return domain.ErrNotFound
	}
	if !l.Untouched() {
		return domain.ErrLoteConsumed
	}
	delete(r.s.lotes, id)
	return nil
}

func (r *memLoteRepo) CurrentUnitCost(userID, insumoID string) (decimal.Decimal, error) {
	all, _ := r.ListByInsumo(userID, insumoID)
	if len(all) == 0 {
		return decimal.Zero, nil
	}
	sort.SliceStable(all, func(i, j int) bool {
		iAvail, jAvail := all[i].QuantityRemaining.IsPositive(), all[j].QuantityRemaining.IsPositive()
		if iAvail != jAvail {
			return iAvail
		}
		if !all[i].PurchaseDate.Equal(all[j].PurchaseDate) {
			return all[i].PurchaseDate.After(all[j].PurchaseDate)
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all[0].PricePerUnit, nil
}

type memProductoRepo struct{ s *memStore }

func (r *memProductoRepo) Create(p *entity.Producto) error {
	cp := *p
	r.s.productos[p.ID] = &cp
	return nil
}

func (r *memProductoRepo) GetByID(userID, id string) (*entity.Producto, error) {
	p, ok := r.s.productos[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	cp := *p
	cp.Recipe = append([]entity.RecipeItem(nil), p.Recipe...)
	return &cp, nil
}

func (r *memProductoRepo) GetForUpdate(userID, id string) (*entity.Producto, error) {
	return r.GetByID(userID, id)
}

func (r *memProductoRepo) ListRecipe(productoID string) ([]entity.RecipeItem, error) {
	p, ok := r.s.productos[productoID]
	if !ok {
		return nil, nil
	}
	return append([]entity.RecipeItem(nil), p.Recipe...), nil
}

func (r *memProductoRepo) ReplaceRecipe(productoID string, items []entity.RecipeItem) error {
	if p, ok := r.s.productos[productoID]; ok {
		p.Recipe = append([]entity.RecipeItem(nil), items...)
	}
	return nil
}

func (r *memProductoRepo) List(userID string, limit, offset int) ([]*entity.Producto, error) {
	var out []*entity.Producto
	for _, p := range r.s.productos {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memProductoRepo) Update(p *entity.Producto) error {
	if cur, ok := r.s.productos[p.ID]; ok {
		cur.Name, cur.PriceSale, cur.MarginGoal, cur.UpdatedAt = p.Name, p.PriceSale, p.MarginGoal, p.UpdatedAt
	}
	return nil
}

func (r *memProductoRepo) Delete(userID, id string) error {
	delete(r.s.productos, id)
	return nil
}

func (r *memProductoRepo) IncrementFinishedStock(userID, id string, qty int64) error {
	p, ok := r.s.productos[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.FinishedStock += qty
	return nil
}

func (r *memProductoRepo) DecrementFinishedStock(userID, id string, qty int64) error {
	p, ok := r.s.productos[id]
	if !ok || p.FinishedStock < qty {
		return domain.ErrStockConflict
	}
	p.FinishedStock -= qty
	return nil
}

func (r *memProductoRepo) SetFinishedStock(userID, id string, qty int64) error {
	p, ok := r.s.productos[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.FinishedStock = qty
	return nil
}

type memProductionRepo struct{ s *memStore }

func (r *memProductionRepo) Create(rec *entity.ProductionRecord) error {
	cp := *rec
	r.s.records = append(r.s.records, &cp)
	return nil
}

func (r *memProductionRepo) ListByProducto(userID, productoID string, limit int) ([]*entity.ProductionRecord, error) {
	var out []*entity.ProductionRecord
	for _, rec := range r.s.records {
		if rec.UserID == userID && rec.ProductoID == productoID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memProductionRepo) ListByUser(userID string, limit int) ([]*entity.ProductionRecord, error) {
	var out []*entity.ProductionRecord
	for _, rec := range r.s.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// conflictLoteRepo deja pasar la planificación y hace fallar el n-ésimo
// decremento con ErrStockConflict, como un UPDATE condicional que no afectó
// filas porque otra transacción consumió el lote entre el plan y el commit.
type conflictLoteRepo struct {
	memLoteRepo
	calls  int
	failAt int
}

func (r *conflictLoteRepo) DecrementRemaining(id string, amount decimal.Decimal) error {
	r.calls++
	if r.calls == r.failAt {
		return domain.ErrStockConflict
	}
	return r.memLoteRepo.DecrementRemaining(id, amount)
}

type conflictTxRunner struct {
	s      *memStore
	failAt int
}

func (t *conflictTxRunner) Run(ctx context.Context, fn func(
	loteRepo repository.LoteRepository,
	productoRepo repository.ProductoRepository,
	productionRepo repository.ProductionRepository,
) error) error {
	snapshot := t.s.clone()
	lotes := &conflictLoteRepo{memLoteRepo: memLoteRepo{t.s}, failAt: t.failAt}
	err := fn(lotes, &memProductoRepo{t.s}, &memProductionRepo{t.s})
	if err != nil {
		*t.s = *snapshot
	}
	return err
}

// staleProductoRepo devuelve en la lectura previa a la tx una receta vieja,
// simulando una edición concurrente entre la validación y el bloqueo de fila.
type staleProductoRepo struct {
	memProductoRepo
	stale []entity.RecipeItem
}

func (r *staleProductoRepo) GetByID(userID, id string) (*entity.Producto, error) {
	p, err := r.memProductoRepo.GetByID(userID, id)
	if p != nil {
		p.Recipe = append([]entity.RecipeItem(nil), r.stale...)
	}
	return p, err
}

// memTxRunner restaura el snapshot del almacén si fn devuelve error.
type memTxRunner struct{ s *memStore }

func (t *memTxRunner) Run(ctx context.Context, fn func(
	loteRepo repository.LoteRepository,
	productoRepo repository.ProductoRepository,
	productionRepo repository.ProductionRepository,
) error) error {
	snapshot := t.s.clone()
	err := fn(&memLoteRepo{t.s}, &memProductoRepo{t.s}, &memProductionRepo{t.s})
	if err != nil {
		*t.s = *snapshot
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: harina (2 lotes) y leche (1 lote) para un producto con receta
// 200 g de harina + 100 ml de leche por unidad.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testUser     = "user-1"
	testProducto = "prod-1"
	harinaID     = "insumo-harina"
	lecheID      = "insumo-leche"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedStore() *memStore {
	s := newMemStore()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// Harina: lote viejo barato (1000 g a $2/g) y lote nuevo caro (500 g a $3/g).
	s.lotes["lote-h1"] = &entity.InsumoLote{
		ID: "lote-h1", UserID: testUser, InsumoID: harinaID,
		PurchaseDate:      base,
		QuantityPurchased: dec("1000"), QuantityRemaining: dec("1000"),
		PricePerUnit: dec("2"), CreatedAt: base,
	}
	s.lotes["lote-h2"] = &entity.InsumoLote{
		ID: "lote-h2", UserID: testUser, InsumoID: harinaID,
		PurchaseDate:      base.AddDate(0, 0, 10),
		QuantityPurchased: dec("500"), QuantityRemaining: dec("500"),
		PricePerUnit: dec("3"), CreatedAt: base.AddDate(0, 0, 10),
	}
	// Leche: un lote de 1000 ml a $1/ml.
	s.lotes["lote-l1"] = &entity.InsumoLote{
		ID: "lote-l1", UserID: testUser, InsumoID: lecheID,
		PurchaseDate:      base,
		QuantityPurchased: dec("1000"), QuantityRemaining: dec("1000"),
		PricePerUnit: dec("1"), CreatedAt: base,
	}

	s.productos[testProducto] = &entity.Producto{
		ID: testProducto, UserID: testUser, Name: "Torta",
		PriceSale: dec("5000"), FinishedStock: 0,
		Recipe: []entity.RecipeItem{
			{ID: "ri-1", ProductoID: testProducto, InsumoID: harinaID, QuantityInBaseUnits: dec("200")},
			{ID: "ri-2", ProductoID: testProducto, InsumoID: lecheID, QuantityInBaseUnits: dec("100")},
		},
	}
	return s
}

func newProduceUC(s *memStore) *production.ProduceUseCase {
	return production.NewProduceUseCase(
		&memTxRunner{s},
		&memProductoRepo{s},
		&memProductionRepo{s},
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestProduce_CostoLIFODeterminista(t *testing.T) {
	s := seedStore()
	uc := newProduceUC(s)

	// 2 unidades: 400 g de harina salen del lote nuevo ($3) y 200 ml de leche ($1).
	// Costo = 400×3 + 200×1 = 1400; por unidad = 700.
	result, err := uc.Produce(context.Background(), testUser, testProducto, 2, nil)
	require.NoError(t, err)
	assert.True(t, dec("1400").Equal(result.TotalCost), "costo total esperado 1400, fue %s", result.TotalCost)
	assert.True(t, dec("700").Equal(result.CostPerUnit), "costo unitario esperado 700, fue %s", result.CostPerUnit)

	// El lote nuevo de harina quedó en 100 g; el viejo intacto.
	assert.True(t, dec("100").Equal(s.lotes["lote-h2"].QuantityRemaining))
	assert.True(t, dec("1000").Equal(s.lotes["lote-h1"].QuantityRemaining))
	assert.True(t, dec("800").Equal(s.lotes["lote-l1"].QuantityRemaining))

	// Stock terminado y registro de auditoría.
	assert.Equal(t, int64(2), s.productos[testProducto].FinishedStock)
	require.Len(t, s.records, 1)
	assert.Equal(t, int64(2), s.records[0].Quantity)
	assert.True(t, dec("1400").Equal(s.records[0].TotalCost))
}

func TestProduce_CruzaLotes(t *testing.T) {
	s := seedStore()
	uc := newProduceUC(s)

	// 5 unidades: 1000 g de harina = 500 del lote nuevo + 500 del viejo.
	// Costo harina = 500×3 + 500×2 = 2500; leche = 500×1. Total 3000, unitario 600.
	result, err := uc.Produce(context.Background(), testUser, testProducto, 5, nil)
	require.NoError(t, err)
	assert.True(t, dec("3000").Equal(result.TotalCost))
	assert.True(t, dec("600").Equal(result.CostPerUnit))
	assert.True(t, s.lotes["lote-h2"].QuantityRemaining.IsZero())
	assert.True(t, dec("500").Equal(s.lotes["lote-h1"].QuantityRemaining))
}

func TestProduce_OrdenManual(t *testing.T) {
	s := seedStore()
	uc := newProduceUC(s)

	// Orden manual: consumir primero el lote viejo barato de harina.
	manual := map[string][]string{harinaID: {"lote-h1"}}
	result, err := uc.Produce(context.Background(), testUser, testProducto, 2, manual)
	require.NoError(t, err)

	// Costo = 400×2 + 200×1 = 1000.
	assert.True(t, dec("1000").Equal(result.TotalCost))
	assert.True(t, dec("600").Equal(s.lotes["lote-h1"].QuantityRemaining))
	assert.True(t, dec("500").Equal(s.lotes["lote-h2"].QuantityRemaining), "el lote no listado no debe tocarse si el listado alcanza")
}

func TestProduce_InsuficienteNoDejaRastro(t *testing.T) {
	s := seedStore()
	uc := newProduceUC(s)

	// 8 unidades requieren 1600 g de harina; solo hay 1500. La leche sí alcanza
	// (800 ml de 1000) pero nada debe decrementarse.
	_, err := uc.Produce(context.Background(), testUser, testProducto, 8, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *costing.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, harinaID, insufficient.InsumoID)
	assert.True(t, dec("100").Equal(insufficient.Shortfall), "faltante esperado 100 g, fue %s", insufficient.Shortfall)

	// Todo-o-nada: ningún lote tocado, stock en cero, sin registros.
	assert.True(t, dec("1000").Equal(s.lotes["lote-h1"].QuantityRemaining))
	assert.True(t, dec("500").Equal(s.lotes["lote-h2"].QuantityRemaining))
	assert.True(t, dec("1000").Equal(s.lotes["lote-l1"].QuantityRemaining))
	assert.Equal(t, int64(0), s.productos[testProducto].FinishedStock)
	assert.Empty(t, s.records)
}

func TestProduce_CantidadInvalida(t *testing.T) {
	s := seedStore()
	uc := newProduceUC(s)

	_, err := uc.Produce(context.Background(), testUser, testProducto, 0, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Produce(context.Background(), testUser, testProducto, -3, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduce_ProductoInexistente(t *testing.T) {
	s := seedStore()
	uc := newProduceUC(s)

	_, err := uc.Produce(context.Background(), testUser, "no-existe", 1, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduce_SinReceta(t *testing.T) {
	s := seedStore()
	s.productos[testProducto].Recipe = nil
	uc := newProduceUC(s)

	_, err := uc.Produce(context.Background(), testUser, testProducto, 1, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduce_CorridasSucesivasAcumulanStock(t *testing.T) {
	s := seedStore()
	uc := newProduceUC(s)

	_, err := uc.Produce(context.Background(), testUser, testProducto, 1, nil)
	require.NoError(t, err)
	_, err = uc.Produce(context.Background(), testUser, testProducto, 2, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(3), s.productos[testProducto].FinishedStock)
	assert.Len(t, s.records, 2)
}

func TestProduce_ConflictoEnCommitRevierteTodo(t *testing.T) {
	s := seedStore()
	uc := production.NewProduceUseCase(
		&conflictTxRunner{s: s, failAt: 2},
		&memProductoRepo{s},
		&memProductionRepo{s},
	)

	// La planificación de ambas líneas pasa; el segundo decremento (leche) falla
	// como si otra transacción hubiera vaciado el lote. El decremento de harina
	// ya aplicado debe revertirse con el resto.
	_, err := uc.Produce(context.Background(), testUser, testProducto, 2, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStockConflict)

	assert.True(t, dec("1000").Equal(s.lotes["lote-h1"].QuantityRemaining))
	assert.True(t, dec("500").Equal(s.lotes["lote-h2"].QuantityRemaining), "el decremento previo al conflicto no queda visible")
	assert.True(t, dec("1000").Equal(s.lotes["lote-l1"].QuantityRemaining))
	assert.Equal(t, int64(0), s.productos[testProducto].FinishedStock)
	assert.Empty(t, s.records)
}

func TestProduce_UsaLaRecetaDeLaFilaBloqueada(t *testing.T) {
	s := seedStore()

	// La lectura previa a la tx ve una receta vieja con el quíntuple de harina;
	// el consumo debe seguir la receta vigente de la fila bloqueada.
	stale := &staleProductoRepo{
		memProductoRepo: memProductoRepo{s},
		stale: []entity.RecipeItem{
			{ID: "ri-viejo", ProductoID: testProducto, InsumoID: harinaID, QuantityInBaseUnits: dec("1000")},
		},
	}
	uc := production.NewProduceUseCase(&memTxRunner{s}, stale, &memProductionRepo{s})

	result, err := uc.Produce(context.Background(), testUser, testProducto, 1, nil)
	require.NoError(t, err)

	// 200 g de harina (lote nuevo a $3) + 100 ml de leche ($1) = 700.
	assert.True(t, dec("700").Equal(result.TotalCost), "costo esperado 700, fue %s", result.TotalCost)
	assert.True(t, dec("300").Equal(s.lotes["lote-h2"].QuantityRemaining))
	assert.True(t, dec("900").Equal(s.lotes["lote-l1"].QuantityRemaining))
}

func TestHistory_DevuelveCorridas(t *testing.T) {
	s := seedStore()
	uc := newProduceUC(s)

	_, err := uc.Produce(context.Background(), testUser, testProducto, 2, nil)
	require.NoError(t, err)

	historial, err := uc.History(testUser, testProducto, 10)
	require.NoError(t, err)
	require.Len(t, historial, 1)
	assert.Equal(t, int64(2), historial[0].Quantity)
	assert.True(t, dec("700").Equal(historial[0].CostPerUnit))
}

func TestHistory_SinProductoListaTodasLasCorridas(t *testing.T) {
	s := seedStore()

	// Segundo producto sin harina para no competir por los mismos lotes.
	s.productos["prod-2"] = &entity.Producto{
		ID: "prod-2", UserID: testUser, Name: "Flan",
		PriceSale: dec("3000"),
		Recipe: []entity.RecipeItem{
			{ID: "ri-3", ProductoID: "prod-2", InsumoID: lecheID, QuantityInBaseUnits: dec("50")},
		},
	}
	uc := newProduceUC(s)

	_, err := uc.Produce(context.Background(), testUser, testProducto, 1, nil)
	require.NoError(t, err)
	_, err = uc.Produce(context.Background(), testUser, "prod-2", 2, nil)
	require.NoError(t, err)

	// Sin filtro de producto devuelve las corridas de ambos.
	historial, err := uc.History(testUser, "", 50)
	require.NoError(t, err)
	assert.Len(t, historial, 2)

	// Con filtro sigue acotado a un producto.
	historial, err = uc.History(testUser, "prod-2", 50)
	require.NoError(t, err)
	require.Len(t, historial, 1)
	assert.Equal(t, int64(2), historial[0].Quantity)
}

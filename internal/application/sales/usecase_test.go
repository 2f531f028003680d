package sales_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcastano/costeo-api/internal/application/dto"
	"github.com/jmcastano/costeo-api/internal/application/production"
	"github.com/jmcastano/costeo-api/internal/application/sales"
	"github.com/jmcastano/costeo-api/internal/domain"
	"github.com/jmcastano/costeo-api/internal/domain/entity"
	"github.com/jmcastano/costeo-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El runner clona el almacén antes de fn y lo restaura si fn
// falla, para poder afirmar que una venta fallida no deja rastro alguno.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	lotes     map[string]*entity.InsumoLote
	productos map[string]*entity.Producto
	records   []*entity.ProductionRecord
	ventas    []*entity.Venta
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
	for _, v := range s.ventas {
		cp := *v
		c.ventas = append(c.ventas, &cp)
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

func (r *memProductoRepo) Update(p *entity.Producto) error { return nil }

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

type memVentaRepo struct{ s *memStore }

func (r *memVentaRepo) Create(v *entity.Venta) error {
	cp := *v
	r.s.ventas = append(r.s.ventas, &cp)
	return nil
}

func (r *memVentaRepo) GetByID(userID, id string) (*entity.Venta, error) {
	for _, v := range r.s.ventas {
		if v.UserID == userID && v.ID == id {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memVentaRepo) List(userID string, filter repository.VentaFilter) ([]*entity.Venta, error) {
	var out []*entity.Venta
	for _, v := range r.s.ventas {
		if v.UserID != userID {
			continue
		}
		if filter.From != nil && v.SaleDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && v.SaleDate.After(*filter.To) {
			continue
		}
		if filter.ProductoID != "" && (v.ProductoID == nil || *v.ProductoID != filter.ProductoID) {
			continue
		}
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memVentaRepo) UpdateQuantityAndPrice(v *entity.Venta) error {
	for _, cur := range r.s.ventas {
		if cur.UserID == v.UserID && cur.ID == v.ID {
			cur.Quantity = v.Quantity
			cur.PriceSold = v.PriceSold
			cur.TotalIncome = v.TotalIncome
			cur.TotalCost = v.TotalCost
			cur.Profit = v.Profit
			cur.ProfitMargin = v.ProfitMargin
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memVentaRepo) Delete(userID, id string) error {
	for i, v := range r.s.ventas {
		if v.UserID == userID && v.ID == id {
			r.s.ventas = append(r.s.ventas[:i], r.s.ventas[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type memTxRunner struct{ s *memStore }

func (t *memTxRunner) RunSale(ctx context.Context, fn func(
	loteRepo repository.LoteRepository,
	productoRepo repository.ProductoRepository,
	productionRepo repository.ProductionRepository,
	ventaRepo repository.VentaRepository,
) error) error {
	snapshot := t.s.clone()
	err := fn(&memLoteRepo{t.s}, &memProductoRepo{t.s}, &memProductionRepo{t.s}, &memVentaRepo{t.s})
	if err != nil {
		*t.s = *snapshot
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: producto con receta de 200 g de harina + 100 ml de leche. Harina en
// dos lotes (el más reciente a $3/g, el viejo a $2/g), leche a $1/ml.
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

func seedStore(finishedStock int64) *memStore {
	s := newMemStore()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

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
	s.lotes["lote-l1"] = &entity.InsumoLote{
		ID: "lote-l1", UserID: testUser, InsumoID: lecheID,
		PurchaseDate:      base,
		QuantityPurchased: dec("1000"), QuantityRemaining: dec("1000"),
		PricePerUnit: dec("1"), CreatedAt: base,
	}

	s.productos[testProducto] = &entity.Producto{
		ID: testProducto, UserID: testUser, Name: "Torta",
		PriceSale: dec("5000"), FinishedStock: finishedStock,
		Recipe: []entity.RecipeItem{
			{ID: "ri-1", ProductoID: testProducto, InsumoID: harinaID, QuantityInBaseUnits: dec("200")},
			{ID: "ri-2", ProductoID: testProducto, InsumoID: lecheID, QuantityInBaseUnits: dec("100")},
		},
	}
	return s
}

func newVentaUC(s *memStore) *sales.VentaUseCase {
	producer := production.NewProduceUseCase(nil, nil, nil)
	return sales.NewVentaUseCase(&memTxRunner{s}, &memVentaRepo{s}, producer)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestSell_DesdeStockTerminado(t *testing.T) {
	s := seedStore(5)
	uc := newVentaUC(s)

	resp, err := uc.Sell(context.Background(), testUser, dto.CreateVentaRequest{
		ProductoID: testProducto,
		Quantity:   3,
	})
	require.NoError(t, err)

	// Sin faltante no hay producción: ningún lote tocado y ningún registro.
	assert.Empty(t, s.records)
	assert.True(t, dec("1000").Equal(s.lotes["lote-h1"].QuantityRemaining))
	assert.True(t, dec("500").Equal(s.lotes["lote-h2"].QuantityRemaining))
	assert.Equal(t, int64(2), s.productos[testProducto].FinishedStock)

	// Costo vigente: receta × precio del próximo lote LIFO = 200×3 + 100×1 = 700.
	assert.True(t, dec("700").Equal(resp.CostUnit), "costo unitario esperado 700, fue %s", resp.CostUnit)
	assert.True(t, dec("5000").Equal(resp.PriceSold), "sin precio explícito usa el de lista")
	assert.True(t, dec("15000").Equal(resp.TotalIncome))
	assert.True(t, dec("2100").Equal(resp.TotalCost))
	assert.True(t, dec("12900").Equal(resp.Profit))
	assert.True(t, dec("0.86").Equal(resp.ProfitMargin), "margen esperado 0.86, fue %s", resp.ProfitMargin)
}

func TestSell_FabricaElFaltante(t *testing.T) {
	s := seedStore(1)
	uc := newVentaUC(s)

	// Vender 5 con 1 terminado: produce 4. Harina 800 g = 500×3 + 300×2 = 2100;
	// leche 400×1 = 400. Corrida: total 2500, unitario 625.
	resp, err := uc.Sell(context.Background(), testUser, dto.CreateVentaRequest{
		ProductoID: testProducto,
		Quantity:   5,
	})
	require.NoError(t, err)

	require.Len(t, s.records, 1)
	assert.Equal(t, int64(4), s.records[0].Quantity, "solo se fabrica el faltante")
	assert.True(t, dec("2500").Equal(s.records[0].TotalCost))

	// El costo congelado es el de la corrida, no el vigente previo.
	assert.True(t, dec("625").Equal(resp.CostUnit), "costo unitario esperado 625, fue %s", resp.CostUnit)
	assert.Equal(t, int64(0), s.productos[testProducto].FinishedStock, "1 existente + 4 fabricados - 5 vendidos")
	assert.True(t, s.lotes["lote-h2"].QuantityRemaining.IsZero())
	assert.True(t, dec("700").Equal(s.lotes["lote-h1"].QuantityRemaining))
	assert.True(t, dec("600").Equal(s.lotes["lote-l1"].QuantityRemaining))
}

func TestSell_ProduccionFallidaAbortaTodo(t *testing.T) {
	s := seedStore(0)
	uc := newVentaUC(s)

	// 10 unidades piden 2000 g de harina y solo hay 1500: la venta entera falla.
	_, err := uc.Sell(context.Background(), testUser, dto.CreateVentaRequest{
		ProductoID: testProducto,
		Quantity:   10,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Empty(t, s.ventas, "la venta no se registra")
	assert.Empty(t, s.records, "la corrida fallida no deja auditoría")
	assert.True(t, dec("1000").Equal(s.lotes["lote-h1"].QuantityRemaining))
	assert.True(t, dec("500").Equal(s.lotes["lote-h2"].QuantityRemaining))
	assert.Equal(t, int64(0), s.productos[testProducto].FinishedStock)
}

func TestSell_PrecioExplicitoYFecha(t *testing.T) {
	s := seedStore(2)
	uc := newVentaUC(s)

	price := dec("4500")
	saleDate := time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)
	resp, err := uc.Sell(context.Background(), testUser, dto.CreateVentaRequest{
		ProductoID: testProducto,
		Quantity:   1,
		PriceSold:  &price,
		SaleDate:   &saleDate,
	})
	require.NoError(t, err)
	assert.True(t, dec("4500").Equal(resp.PriceSold))
	assert.True(t, saleDate.Equal(resp.SaleDate))
}

func TestSell_EntradaInvalida(t *testing.T) {
	s := seedStore(5)
	uc := newVentaUC(s)

	_, err := uc.Sell(context.Background(), testUser, dto.CreateVentaRequest{ProductoID: testProducto, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	neg := dec("-10")
	_, err = uc.Sell(context.Background(), testUser, dto.CreateVentaRequest{ProductoID: testProducto, Quantity: 1, PriceSold: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Sell(context.Background(), testUser, dto.CreateVentaRequest{ProductoID: "no-existe", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEdit_RecalculaSinTocarSnapshotNiStock(t *testing.T) {
	s := seedStore(5)
	uc := newVentaUC(s)

	resp, err := uc.Sell(context.Background(), testUser, dto.CreateVentaRequest{
		ProductoID: testProducto,
		Quantity:   3,
	})
	require.NoError(t, err)
	require.True(t, dec("700").Equal(resp.CostUnit))

	// Agotar el lote caro de harina: el costo vigente cambiaría, pero la edición
	// debe seguir usando el snapshot congelado.
	s.lotes["lote-h2"].QuantityRemaining = decimal.Zero

	edited, err := uc.Edit(testUser, resp.ID, dto.UpdateVentaRequest{
		Quantity:  2,
		PriceSold: dec("6000"),
	})
	require.NoError(t, err)

	assert.True(t, dec("700").Equal(edited.CostUnit), "el snapshot de costo es inmutable")
	assert.True(t, dec("12000").Equal(edited.TotalIncome))
	assert.True(t, dec("1400").Equal(edited.TotalCost))
	assert.True(t, dec("10600").Equal(edited.Profit))
	assert.Equal(t, int64(2), s.productos[testProducto].FinishedStock, "editar jamás mueve stock")
	assert.Empty(t, s.records, "editar jamás vuelve a producir")
}

func TestEdit_EntradaInvalida(t *testing.T) {
	s := seedStore(5)
	uc := newVentaUC(s)

	_, err := uc.Edit(testUser, "cualquiera", dto.UpdateVentaRequest{Quantity: 0, PriceSold: dec("100")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Edit(testUser, "no-existe", dto.UpdateVentaRequest{Quantity: 1, PriceSold: dec("100")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_NoRestituyeStock(t *testing.T) {
	s := seedStore(5)
	uc := newVentaUC(s)

	resp, err := uc.Sell(context.Background(), testUser, dto.CreateVentaRequest{
		ProductoID: testProducto,
		Quantity:   3,
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), s.productos[testProducto].FinishedStock)

	require.NoError(t, uc.Delete(testUser, resp.ID))
	assert.Empty(t, s.ventas)
	assert.Equal(t, int64(2), s.productos[testProducto].FinishedStock, "borrar la venta es contable, no logístico")
}

func TestList_FiltraPorProducto(t *testing.T) {
	s := seedStore(10)
	uc := newVentaUC(s)

	_, err := uc.Sell(context.Background(), testUser, dto.CreateVentaRequest{ProductoID: testProducto, Quantity: 1})
	require.NoError(t, err)
	_, err = uc.Sell(context.Background(), testUser, dto.CreateVentaRequest{ProductoID: testProducto, Quantity: 2})
	require.NoError(t, err)

	ventas, err := uc.List(testUser, repository.VentaFilter{ProductoID: testProducto})
	require.NoError(t, err)
	assert.Len(t, ventas, 2)

	ventas, err = uc.List(testUser, repository.VentaFilter{ProductoID: "otro"})
	require.NoError(t, err)
	assert.Empty(t, ventas)
}

// Package testsupport provee implementaciones en memoria de los puertos de
// persistencia para pruebas de casos de uso y de la capa HTTP sin PostgreSQL.
package testsupport

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tea-coop-api/internal/domain"
	"github.com/jhoicas/tea-coop-api/internal/domain/entity"
	"github.com/jhoicas/tea-coop-api/internal/domain/repository"
)

// MemStore guarda todas las tablas en mapas bajo un solo mutex. Los
// repositorios que entrega comparten el mismo almacenamiento, igual que los
// repos reales comparten el pool.
type MemStore struct {
	mu           sync.Mutex
	teaTypes     map[string]entity.TeaType
	stockEntries map[string]entity.StockEntry
	lots         map[int64]entity.Lot
	valuations   map[string]entity.BrokerValuation
	soldLots     map[string]entity.SoldLot
	brokers      map[string]entity.Broker
	lotSeq       int64
}

// NewMemStore construye el almacén vacío.
func NewMemStore() *MemStore {
	return &MemStore{
		teaTypes:     make(map[string]entity.TeaType),
		stockEntries: make(map[string]entity.StockEntry),
		lots:         make(map[int64]entity.Lot),
		valuations:   make(map[string]entity.BrokerValuation),
		soldLots:     make(map[string]entity.SoldLot),
		brokers:      make(map[string]entity.Broker),
	}
}

// TeaTypes devuelve el repositorio de tipos de té.
func (s *MemStore) TeaTypes() repository.TeaTypeRepository { return &memTeaTypeRepo{s: s} }

// StockEntries devuelve el repositorio de registros de stock.
func (s *MemStore) StockEntries() repository.StockEntryRepository { return &memStockRepo{s: s} }

// Lots devuelve el repositorio de lotes.
func (s *MemStore) Lots() repository.LotRepository { return &memLotRepo{s: s} }

// Valuations devuelve el repositorio de valoraciones.
func (s *MemStore) Valuations() repository.ValuationRepository { return &memValuationRepo{s: s} }

// SoldLots devuelve el repositorio de ventas.
func (s *MemStore) SoldLots() repository.SoldLotRepository { return &memSoldLotRepo{s: s} }

// Brokers devuelve el repositorio de corredores.
func (s *MemStore) Brokers() repository.BrokerRepository { return &memBrokerRepo{s: s} }

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner: en memoria no hay transacción real; las funciones corren contra el
// mismo almacén. Suficiente para probar la lógica de los casos de uso.
// ──────────────────────────────────────────────────────────────────────────────

// MemTxRunner satisface los TxRunner de lot, valuation y sale.
type MemTxRunner struct {
	Store *MemStore
}

// NewMemTxRunner construye el runner sobre el almacén dado.
func NewMemTxRunner(s *MemStore) *MemTxRunner { return &MemTxRunner{Store: s} }

// Run ejecuta fn con repos de stock y lotes.
func (r *MemTxRunner) Run(_ context.Context, fn func(
	stockRepo repository.StockEntryRepository,
	lotRepo repository.LotRepository,
) error) error {
	return fn(r.Store.StockEntries(), r.Store.Lots())
}

// RunValuation ejecuta fn con repos de valoraciones y lotes.
func (r *MemTxRunner) RunValuation(_ context.Context, fn func(
	valRepo repository.ValuationRepository,
	lotRepo repository.LotRepository,
) error) error {
	return fn(r.Store.Valuations(), r.Store.Lots())
}

// RunSale ejecuta fn con repos de ventas y lotes.
func (r *MemTxRunner) RunSale(_ context.Context, fn func(
	saleRepo repository.SoldLotRepository,
	lotRepo repository.LotRepository,
) error) error {
	return fn(r.Store.SoldLots(), r.Store.Lots())
}

// ──────────────────────────────────────────────────────────────────────────────
// TeaType
// ──────────────────────────────────────────────────────────────────────────────

type memTeaTypeRepo struct{ s *MemStore }

func (r *memTeaTypeRepo) Create(t *entity.TeaType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.teaTypes {
		if existing.Name == t.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.teaTypes[t.ID] = *t
	return nil
}

func (r *memTeaTypeRepo) GetByID(id string) (*entity.TeaType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.teaTypes[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *memTeaTypeRepo) List() ([]*entity.TeaType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.TeaType, 0, len(r.s.teaTypes))
	for id := range r.s.teaTypes {
		t := r.s.teaTypes[id]
		list = append(list, &t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *memTeaTypeRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.teaTypes, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// StockEntry
// ──────────────────────────────────────────────────────────────────────────────

type memStockRepo struct{ s *MemStore }

func (r *memStockRepo) Create(e *entity.StockEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stockEntries[e.ID] = *e
	return nil
}

func (r *memStockRepo) GetByID(id string) (*entity.StockEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.stockEntries[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *memStockRepo) ListByTeaType(teaTypeID string) ([]*entity.StockEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.StockEntry
	for id := range r.s.stockEntries {
		e := r.s.stockEntries[id]
		if e.TeaTypeID == teaTypeID {
			list = append(list, &e)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (r *memStockRepo) Adjust(id string, deltaKg decimal.Decimal) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.stockEntries[id]
	if !ok {
		return false, nil
	}
	e.WeightKg = e.WeightKg.Add(deltaKg)
	r.s.stockEntries[id] = e
	return true, nil
}

func (r *memStockRepo) Delete(id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.stockEntries[id]; !ok {
		return false, nil
	}
	delete(r.s.stockEntries, id)
	return true, nil
}

func (r *memStockRepo) SumWeightByTeaType(teaTypeID string) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, e := range r.s.stockEntries {
		if e.TeaTypeID == teaTypeID {
			sum = sum.Add(e.WeightKg)
		}
	}
	return sum, nil
}

func (r *memStockRepo) LockTeaType(string) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Lot
// ──────────────────────────────────────────────────────────────────────────────

type memLotRepo struct{ s *MemStore }

func (r *memLotRepo) NextNumber() (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lotSeq++
	return r.s.lotSeq, nil
}

func (r *memLotRepo) Create(l *entity.Lot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lots[l.LotNumber] = *l
	return nil
}

func (r *memLotRepo) GetByNumber(lotNumber int64) (*entity.Lot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lots[lotNumber]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *memLotRepo) Update(l *entity.Lot) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.lots[l.LotNumber]; !ok {
		return false, nil
	}
	r.s.lots[l.LotNumber] = *l
	return true, nil
}

func (r *memLotRepo) UpdateStatus(lotNumber int64, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lots[lotNumber]
	if !ok {
		return nil
	}
	l.Status = status
	l.UpdatedAt = time.Now()
	r.s.lots[lotNumber] = l
	return nil
}

func (r *memLotRepo) Delete(lotNumber int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.lots[lotNumber]; !ok {
		return false, nil
	}
	delete(r.s.lots, lotNumber)
	return true, nil
}

func (r *memLotRepo) List() ([]*entity.Lot, error) {
	return r.listWhere(func(entity.Lot) bool { return true })
}

func (r *memLotRepo) ListByStatus(status string) ([]*entity.Lot, error) {
	return r.listWhere(func(l entity.Lot) bool { return l.Status == status })
}

func (r *memLotRepo) listWhere(keep func(entity.Lot) bool) ([]*entity.Lot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Lot
	for n := range r.s.lots {
		l := r.s.lots[n]
		if keep(l) {
			list = append(list, &l)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].LotNumber > list[j].LotNumber })
	return list, nil
}

func (r *memLotRepo) SumAllocatedByTeaType(teaTypeID string) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, l := range r.s.lots {
		if l.TeaTypeID == teaTypeID {
			sum = sum.Add(l.TotalNetWeight)
		}
	}
	return sum, nil
}

func (r *memLotRepo) HasDependents(lotNumber int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.valuations {
		if v.LotNumber == lotNumber {
			return true, nil
		}
	}
	for _, sl := range r.s.soldLots {
		if sl.LotNumber == lotNumber {
			return true, nil
		}
	}
	return false, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// BrokerValuation
// ──────────────────────────────────────────────────────────────────────────────

type memValuationRepo struct{ s *MemStore }

func (r *memValuationRepo) Create(v *entity.BrokerValuation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.valuations[v.ValuationID] = *v
	return nil
}

func (r *memValuationRepo) GetByID(valuationID string) (*entity.BrokerValuation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.valuations[valuationID]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *memValuationRepo) joined(v entity.BrokerValuation) *entity.ValuationWithBroker {
	out := &entity.ValuationWithBroker{BrokerValuation: v}
	if b, ok := r.s.brokers[v.BrokerID]; ok {
		out.BrokerName = b.Name
		out.BrokerCompany = b.CompanyName
	}
	return out
}

func (r *memValuationRepo) listWhere(keep func(entity.BrokerValuation) bool) []*entity.ValuationWithBroker {
	var list []*entity.ValuationWithBroker
	for id := range r.s.valuations {
		v := r.s.valuations[id]
		if keep(v) {
			list = append(list, r.joined(v))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ValuationDate.After(list[j].ValuationDate) })
	return list
}

func (r *memValuationRepo) ListByLot(lotNumber int64) ([]*entity.ValuationWithBroker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.listWhere(func(v entity.BrokerValuation) bool { return v.LotNumber == lotNumber }), nil
}

func (r *memValuationRepo) Confirm(valuationID, employeeID string, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.valuations[valuationID]
	if !ok {
		return false, nil
	}
	v.IsConfirmed = true
	v.ConfirmedBy = &employeeID
	v.ConfirmedAt = &at
	r.s.valuations[valuationID] = v
	return true, nil
}

func (r *memValuationRepo) DemoteSiblings(lotNumber int64, keepValuationID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, v := range r.s.valuations {
		if v.LotNumber == lotNumber && id != keepValuationID {
			v.IsConfirmed = false
			v.ConfirmedBy = nil
			v.ConfirmedAt = nil
			r.s.valuations[id] = v
		}
	}
	return nil
}

func (r *memValuationRepo) UpdatePrice(valuationID string, price decimal.Decimal) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.valuations[valuationID]
	if !ok || v.IsConfirmed {
		return false, nil
	}
	v.ValuationPrice = price
	v.ValuationDate = time.Now()
	r.s.valuations[valuationID] = v
	return true, nil
}

func (r *memValuationRepo) Delete(valuationID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.valuations[valuationID]
	if !ok || v.IsConfirmed {
		return false, nil
	}
	delete(r.s.valuations, valuationID)
	return true, nil
}

func (r *memValuationRepo) ListConfirmed() ([]*entity.ValuationWithBroker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.listWhere(func(v entity.BrokerValuation) bool { return v.IsConfirmed }), nil
}

func (r *memValuationRepo) ListConfirmedByBroker(brokerID string) ([]*entity.ValuationWithBroker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.listWhere(func(v entity.BrokerValuation) bool {
		return v.IsConfirmed && v.BrokerID == brokerID
	}), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// SoldLot
// ──────────────────────────────────────────────────────────────────────────────

type memSoldLotRepo struct{ s *MemStore }

func (r *memSoldLotRepo) GetByLotAndBrokerForUpdate(lotNumber int64, brokerID string) (*entity.SoldLot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id := range r.s.soldLots {
		sl := r.s.soldLots[id]
		if sl.LotNumber == lotNumber && sl.BrokerID == brokerID {
			return &sl, nil
		}
	}
	return nil, nil
}

func (r *memSoldLotRepo) Create(sl *entity.SoldLot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.soldLots {
		if existing.LotNumber == sl.LotNumber && existing.BrokerID == sl.BrokerID {
			return domain.ErrDuplicate
		}
	}
	r.s.soldLots[sl.SaleID] = *sl
	return nil
}

func (r *memSoldLotRepo) Update(sl *entity.SoldLot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.soldLots[sl.SaleID]; ok {
		r.s.soldLots[sl.SaleID] = *sl
	}
	return nil
}

func (r *memSoldLotRepo) GetBySaleID(saleID string) (*entity.SoldLot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sl, ok := r.s.soldLots[saleID]
	if !ok {
		return nil, nil
	}
	return &sl, nil
}

func (r *memSoldLotRepo) Delete(saleID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.soldLots[saleID]; !ok {
		return false, nil
	}
	delete(r.s.soldLots, saleID)
	return true, nil
}

func (r *memSoldLotRepo) UpdatePaymentStatus(saleID, status string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sl, ok := r.s.soldLots[saleID]
	if !ok {
		return false, nil
	}
	sl.PaymentStatus = status
	r.s.soldLots[saleID] = sl
	return true, nil
}

func (r *memSoldLotRepo) detail(sl entity.SoldLot) *entity.SoldLotDetail {
	d := &entity.SoldLotDetail{SoldLot: sl}
	if l, ok := r.s.lots[sl.LotNumber]; ok {
		d.NoOfBags = l.NoOfBags
		d.TotalNetWeight = l.TotalNetWeight
		if t, ok := r.s.teaTypes[l.TeaTypeID]; ok {
			d.TeaTypeName = t.Name
		}
	}
	if b, ok := r.s.brokers[sl.BrokerID]; ok {
		d.BrokerName = b.Name
		d.BrokerCompany = b.CompanyName
	}
	for _, v := range r.s.valuations {
		if v.LotNumber == sl.LotNumber && v.IsConfirmed {
			price := v.ValuationPrice
			d.ConfirmedPrice = &price
			break
		}
	}
	return d
}

func (r *memSoldLotRepo) listWhere(keep func(entity.SoldLot) bool) []*entity.SoldLotDetail {
	var list []*entity.SoldLotDetail
	for id := range r.s.soldLots {
		sl := r.s.soldLots[id]
		if keep(sl) {
			list = append(list, r.detail(sl))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SoldDate.After(list[j].SoldDate) })
	return list
}

func (r *memSoldLotRepo) ListByBroker(brokerID string) ([]*entity.SoldLotDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.listWhere(func(sl entity.SoldLot) bool { return sl.BrokerID == brokerID }), nil
}

func (r *memSoldLotRepo) ListAll() ([]*entity.SoldLotDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.listWhere(func(entity.SoldLot) bool { return true }), nil
}

func (r *memSoldLotRepo) GetDetailBySaleID(saleID string) (*entity.SoldLotDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sl, ok := r.s.soldLots[saleID]
	if !ok {
		return nil, nil
	}
	return r.detail(sl), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Broker
// ──────────────────────────────────────────────────────────────────────────────

type memBrokerRepo struct{ s *MemStore }

func (r *memBrokerRepo) Create(b *entity.Broker) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.brokers {
		if existing.Email != "" && existing.Email == b.Email {
			return domain.ErrDuplicate
		}
	}
	r.s.brokers[b.ID] = *b
	return nil
}

func (r *memBrokerRepo) GetByID(id string) (*entity.Broker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.brokers[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *memBrokerRepo) List() ([]*entity.Broker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.Broker, 0, len(r.s.brokers))
	for id := range r.s.brokers {
		b := r.s.brokers[id]
		list = append(list, &b)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

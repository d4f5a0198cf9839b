package repository

import "github.com/jhoicas/tea-coop-api/internal/domain/entity"

// SoldLotRepository define el puerto de persistencia para ventas liquidadas.
type SoldLotRepository interface {
	// GetByLotAndBrokerForUpdate busca la venta por su llave natural y bloquea
	// la fila (SELECT FOR UPDATE) para el upsert transaccional.
	GetByLotAndBrokerForUpdate(lotNumber int64, brokerID string) (*entity.SoldLot, error)
	Create(sale *entity.SoldLot) error
	Update(sale *entity.SoldLot) error
	GetBySaleID(saleID string) (*entity.SoldLot, error)
	Delete(saleID string) (bool, error)
	UpdatePaymentStatus(saleID, status string) (bool, error)
	ListByBroker(brokerID string) ([]*entity.SoldLotDetail, error)
	ListAll() ([]*entity.SoldLotDetail, error)
	GetDetailBySaleID(saleID string) (*entity.SoldLotDetail, error)
}

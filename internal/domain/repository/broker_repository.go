package repository

import "github.com/jhoicas/tea-coop-api/internal/domain/entity"

// BrokerRepository define el puerto de persistencia para corredores.
type BrokerRepository interface {
	Create(broker *entity.Broker) error
	GetByID(id string) (*entity.Broker, error)
	List() ([]*entity.Broker, error)
}

package repository

import "github.com/jhoicas/tea-coop-api/internal/domain/entity"

// TeaTypeRepository define el puerto de persistencia para TeaType (DIP).
type TeaTypeRepository interface {
	Create(teaType *entity.TeaType) error
	GetByID(id string) (*entity.TeaType, error)
	List() ([]*entity.TeaType, error)
	Delete(id string) error
}

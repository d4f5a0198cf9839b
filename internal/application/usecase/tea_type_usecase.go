package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tea-coop-api/internal/application/dto"
	"github.com/jhoicas/tea-coop-api/internal/domain"
	"github.com/jhoicas/tea-coop-api/internal/domain/entity"
	"github.com/jhoicas/tea-coop-api/internal/domain/repository"
)

// TeaTypeUseCase casos de uso para el catálogo de tipos de té (entidad de
// referencia: se crea y elimina, no se edita).
type TeaTypeUseCase struct {
	repo repository.TeaTypeRepository
}

// NewTeaTypeUseCase construye el caso de uso.
func NewTeaTypeUseCase(repo repository.TeaTypeRepository) *TeaTypeUseCase {
	return &TeaTypeUseCase{repo: repo}
}

// Create registra un tipo de té.
func (uc *TeaTypeUseCase) Create(in dto.CreateTeaTypeRequest) (*dto.TeaTypeResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	t := &entity.TeaType{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(t); err != nil {
		return nil, err
	}
	return toTeaTypeResponse(t), nil
}

// GetByID obtiene un tipo de té.
func (uc *TeaTypeUseCase) GetByID(id string) (*dto.TeaTypeResponse, error) {
	t, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toTeaTypeResponse(t), nil
}

// List devuelve todos los tipos de té.
func (uc *TeaTypeUseCase) List() ([]dto.TeaTypeResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.TeaTypeResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTeaTypeResponse(t))
	}
	return items, nil
}

// Delete elimina un tipo de té.
func (uc *TeaTypeUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toTeaTypeResponse(t *entity.TeaType) *dto.TeaTypeResponse {
	return &dto.TeaTypeResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

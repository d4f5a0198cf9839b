package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tea-coop-api/internal/application/dto"
	"github.com/jhoicas/tea-coop-api/internal/domain"
	"github.com/jhoicas/tea-coop-api/internal/domain/entity"
	"github.com/jhoicas/tea-coop-api/internal/domain/repository"
)

// BrokerUseCase casos de uso para la identidad de corredores que respalda los
// joins de valoraciones y ventas.
type BrokerUseCase struct {
	repo repository.BrokerRepository
}

// NewBrokerUseCase construye el caso de uso.
func NewBrokerUseCase(repo repository.BrokerRepository) *BrokerUseCase {
	return &BrokerUseCase{repo: repo}
}

// Create registra un corredor.
func (uc *BrokerUseCase) Create(in dto.CreateBrokerRequest) (*dto.BrokerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	b := &entity.Broker{
		ID:          uuid.New().String(),
		Name:        in.Name,
		CompanyName: in.CompanyName,
		Email:       in.Email,
		Phone:       in.Phone,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(b); err != nil {
		return nil, err
	}
	return toBrokerResponse(b), nil
}

// GetByID obtiene un corredor.
func (uc *BrokerUseCase) GetByID(id string) (*dto.BrokerResponse, error) {
	b, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return toBrokerResponse(b), nil
}

// List devuelve todos los corredores.
func (uc *BrokerUseCase) List() ([]dto.BrokerResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.BrokerResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBrokerResponse(b))
	}
	return items, nil
}

func toBrokerResponse(b *entity.Broker) *dto.BrokerResponse {
	return &dto.BrokerResponse{
		ID:          b.ID,
		Name:        b.Name,
		CompanyName: b.CompanyName,
		Email:       b.Email,
		Phone:       b.Phone,
		CreatedAt:   b.CreatedAt,
	}
}

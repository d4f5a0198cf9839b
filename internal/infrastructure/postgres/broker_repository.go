package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tea-coop-api/internal/domain"
	"github.com/jhoicas/tea-coop-api/internal/domain/entity"
	"github.com/jhoicas/tea-coop-api/internal/domain/repository"
)

var _ repository.BrokerRepository = (*BrokerRepo)(nil)

// BrokerRepo implementación de BrokerRepository sobre PostgreSQL (usable con pool o tx).
type BrokerRepo struct {
	q Querier
}

// NewBrokerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBrokerRepository(q Querier) *BrokerRepo {
	return &BrokerRepo{q: q}
}

// Create persiste un corredor. El email es único.
func (r *BrokerRepo) Create(b *entity.Broker) error {
	query := `
		INSERT INTO brokers (id, name, company_name, email, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.Name, b.CompanyName, b.Email, b.Phone, b.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create broker: %w", err)
	}
	return nil
}

// GetByID obtiene un corredor por ID.
func (r *BrokerRepo) GetByID(id string) (*entity.Broker, error) {
	query := `
		SELECT id, name, COALESCE(company_name, ''), COALESCE(email, ''), COALESCE(phone, ''), created_at
		FROM brokers WHERE id = $1`
	var b entity.Broker
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.Name, &b.CompanyName, &b.Email, &b.Phone, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get broker: %w", err)
	}
	return &b, nil
}

// List devuelve todos los corredores ordenados por nombre.
func (r *BrokerRepo) List() ([]*entity.Broker, error) {
	query := `
		SELECT id, name, COALESCE(company_name, ''), COALESCE(email, ''), COALESCE(phone, ''), created_at
		FROM brokers ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list brokers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Broker
	for rows.Next() {
		var b entity.Broker
		if err := rows.Scan(&b.ID, &b.Name, &b.CompanyName, &b.Email, &b.Phone, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan broker: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

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

var _ repository.TeaTypeRepository = (*TeaTypeRepo)(nil)

// TeaTypeRepo implementación de TeaTypeRepository sobre PostgreSQL (usable con pool o tx).
type TeaTypeRepo struct {
	q Querier
}

// NewTeaTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTeaTypeRepository(q Querier) *TeaTypeRepo {
	return &TeaTypeRepo{q: q}
}

// Create persiste un tipo de té. El nombre es único.
func (r *TeaTypeRepo) Create(t *entity.TeaType) error {
	query := `
		INSERT INTO tea_types (id, name, description, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, t.ID, t.Name, t.Description, t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create tea type: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo de té por ID.
func (r *TeaTypeRepo) GetByID(id string) (*entity.TeaType, error) {
	query := `
		SELECT id, name, description, created_at
		FROM tea_types WHERE id = $1`
	var t entity.TeaType
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Name, &t.Description, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tea type: %w", err)
	}
	return &t, nil
}

// List devuelve todos los tipos de té ordenados por nombre.
func (r *TeaTypeRepo) List() ([]*entity.TeaType, error) {
	query := `
		SELECT id, name, description, created_at
		FROM tea_types ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list tea types: %w", err)
	}
	defer rows.Close()
	var list []*entity.TeaType
	for rows.Next() {
		var t entity.TeaType
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tea type: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Delete elimina un tipo de té por ID.
func (r *TeaTypeRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM tea_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tea type: %w", err)
	}
	return nil
}

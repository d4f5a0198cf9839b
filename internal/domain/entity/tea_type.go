package entity

import "time"

// TeaType representa un tipo de té manufacturado (entidad de referencia inmutable).
// Los registros de stock y los lotes lo referencian por ID.
type TeaType struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

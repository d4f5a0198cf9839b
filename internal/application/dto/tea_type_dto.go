package dto

import "time"

// CreateTeaTypeRequest entrada para registrar un tipo de té.
type CreateTeaTypeRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
}

// TeaTypeResponse salida de un tipo de té.
type TeaTypeResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

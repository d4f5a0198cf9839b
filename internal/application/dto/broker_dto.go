package dto

import "time"

// CreateBrokerRequest entrada para registrar un corredor.
type CreateBrokerRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	CompanyName string `json:"company_name"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
}

// BrokerResponse salida de un corredor.
type BrokerResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CompanyName string    `json:"company_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
}

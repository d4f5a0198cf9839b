package entity

import "time"

// Broker representa un corredor de té registrado en la cooperativa. Aquí solo
// se mantiene la identidad que necesitan los joins de valoraciones y ventas;
// credenciales y acceso viven en la capa de identidad externa.
type Broker struct {
	ID          string
	Name        string
	CompanyName string
	Email       string
	Phone       string
	CreatedAt   time.Time
}

package entity

import "time"

// User es la cuenta dueña de un conjunto de datos (insumos, productos, ventas).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

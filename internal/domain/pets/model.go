package pets

import (
	"errors"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
)

// Pet pertenece a exactamente un User. Toda lectura/escritura no-admin
// va filtrada por UserID.
type Pet struct {
	ID     string
	UserID string

	Name    string
	Species string
	Breed   string

	Age         *int
	Weight      *float64
	Color       string
	DateOfBirth *time.Time
	Gender      string
	Notes       string

	CreatedAt time.Time
}

// AdminRow es la vista de admin: mascota + datos del dueño.
type AdminRow struct {
	Pet
	OwnerFirstName string
	OwnerLastName  string
	OwnerEmail     string
}

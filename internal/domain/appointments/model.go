package appointments

import (
	"errors"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("appointment not found")
	ErrPetNotOwned  = errors.New("pet not found")
)

type Status string

const (
	StatusScheduled Status = "Scheduled"
	StatusCancelled Status = "Cancelled"
	StatusCompleted Status = "Completed"
)

// Appointment pertenece a un User y referencia una de sus mascotas.
// Cancelar es una transición de estado, nunca un borrado.
type Appointment struct {
	ID     string
	UserID string
	PetID  string

	Date         time.Time
	Type         string
	Veterinarian string
	ClinicName   string
	Phone        string
	Notes        string
	Status       Status

	CreatedAt time.Time
}

// Row agrega el nombre de la mascota para los listados del dueño.
type Row struct {
	Appointment
	PetName string
}

// AdminRow agrega además los datos del dueño.
type AdminRow struct {
	Appointment
	PetName        string
	OwnerFirstName string
	OwnerLastName  string
}

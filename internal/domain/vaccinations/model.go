package vaccinations

import (
	"errors"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("vaccination not found")
	ErrPetNotOwned  = errors.New("pet not found")
)

// Vaccination pertenece a una mascota; el dueño se resuelve transitivamente
// vía Pets, no se duplica acá.
type Vaccination struct {
	ID    string
	PetID string

	VaccineName     string
	VaccinationDate time.Time
	NextDueDate     *time.Time
	Veterinarian    string
	ClinicName      string
	Status          string

	CreatedAt time.Time
}

// AdminRow agrega mascota y dueño para la vista admin.
type AdminRow struct {
	Vaccination
	PetName        string
	OwnerFirstName string
	OwnerLastName  string
}

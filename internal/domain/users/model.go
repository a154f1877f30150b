package users

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already exists")
)

// User es el dueño de las mascotas; principal tipo "user".
// PasswordHash es siempre bcrypt salvo datos seed heredados, que se migran
// en el primer login exitoso.
type User struct {
	ID           string
	Email        string
	PasswordHash string

	FirstName string
	LastName  string
	Phone     string

	Address    string
	City       string
	State      string
	PostalCode string
	Country    string

	CreatedAt time.Time
}

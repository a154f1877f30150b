package admins

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("admin not found")

// Admin es el principal de back-office. Independiente de User: no comparten
// tabla ni credenciales.
type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	FullName     string
	Email        string
	CreatedAt    time.Time
}

package auth

// Role distingue el tipo de principal detrás de un token.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Claims representa la información extraída del token.
// Para role=user se llenan UserID/Email; para role=admin, AdminID/Username.
type Claims struct {
	UserID   string
	AdminID  string
	Email    string
	Username string
	Role     Role
}

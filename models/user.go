package models

// User is the descriptor returned to the client after login. The only
// account is the configured admin, so there is no users table.
type User struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

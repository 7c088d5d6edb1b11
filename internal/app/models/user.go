package models

// DefaultUserRole is assigned when registration does not specify a role.
const DefaultUserRole = "user"

// User defines the user model based on the 'users' table
type User struct {
	ID             int64  `json:"id" db:"id"`
	Email          string `json:"email" db:"email"`
	HashedPassword string `json:"-" db:"hashed_password"` // Excluded from JSON
	Role           string `json:"role" db:"role"`
}

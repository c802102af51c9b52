package user

// User represents a user entity in the system.
type User struct {
	ID    string // ID is the unique identifier for the user (UUID)
	Name  string // Name is the full name of the user
	Email string // Email is the unique email address of the user
}

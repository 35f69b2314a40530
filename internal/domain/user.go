package domain

// Role is the free-form role string a user registers with.
type Role string

// User is a registered credential holder. Records are created once and never updated.
type User struct {
	Username     string
	PasswordHash string
	Role         Role
}

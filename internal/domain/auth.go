package domain

import "time"

// Identity is the verified caller extracted from a token.
type Identity struct {
	Subject string
	Role    Role
}

// Token is an issued bearer credential. It is never persisted.
type Token struct {
	Value     string
	Subject   string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

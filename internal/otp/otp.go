package otp

import "time"

// Purposes an OTP can be issued for. Each (email, purpose) pair has at most
// one active code.
const (
	PurposeVerification = "verification"
	PurposeLogin        = "login"
	PurposeReset        = "reset"
)

var Purposes = []string{PurposeVerification, PurposeLogin, PurposeReset}

const (
	// TTL is how long a code stays valid after being sent.
	TTL = 10 * time.Minute
	// MaxAttempts caps wrong guesses before the code is invalidated.
	MaxAttempts = 5
)

// Code is a stored one-time password. Only the bcrypt hash of the six digit
// code is persisted.
type Code struct {
	ID        int
	Email     string
	Phone     string
	CodeHash  string
	Purpose   string
	Attempts  int
	ExpiresAt string
	CreatedAt string
}

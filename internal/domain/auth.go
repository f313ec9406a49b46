package domain

import "time"

// Identity is the subject presented to the token issuer: the user's
// email plus the role snapshot taken from the credential record at
// issuance time. It is never persisted by the trust layer.
type Identity struct {
	Subject string
	Roles   []Role
}

// TokenPair is the result of issuance: both tokens share the same
// subject and role snapshot but carry independent TTLs.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Credential is the auth-service record backing login. The profile
// itself lives in user-service; only what login needs is stored here.
type Credential struct {
	UserID       int64
	Email        string
	PasswordHash string
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/commerce-mesh/internal/domain"
)

// Verification failures form a closed set; middleware maps them to HTTP
// statuses, they never escape into business logic as panics.
var (
	ErrMalformed        = errors.New("token malformed")
	ErrSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired     = errors.New("token expired")
	ErrWrongTokenType   = errors.New("wrong token type")
)

// timeNow is swapped out by tests that need a fixed clock.
var timeNow = time.Now

// TokenType discriminates the two credentials the issuer produces.
type TokenType string

const (
	TokenTypeAccess  TokenType = "ACCESS"
	TokenTypeRefresh TokenType = "REFRESH"
)

// Claims is the JWT payload shared across the mesh: subject (email),
// role authorities in insertion order, and the type discriminator.
type Claims struct {
	Roles     []string  `json:"roles"`
	TokenType TokenType `json:"type"`
	jwt.RegisteredClaims
}

// Identity converts the claims back to the domain identity.
func (c *Claims) Identity() domain.Identity {
	return domain.Identity{
		Subject: c.Subject,
		Roles:   domain.RolesFromAuthorities(c.Roles),
	}
}

// ExpiredAt reports whether the token is expired at the given instant.
// Tokens without an exp claim are treated as expired.
func (c *Claims) ExpiredAt(now time.Time) bool {
	if c.ExpiresAt == nil {
		return true
	}
	return !c.ExpiresAt.After(now)
}

// TokenManager issues and verifies the signed tokens carried between
// services. The secret is fixed at construction and never mutated.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager builds a manager from the shared HMAC secret and the
// two configured lifetimes.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Issue produces a fresh access+refresh pair for the identity. Both
// tokens carry the same subject and role snapshot; only type and TTL
// differ. No state is touched.
func (tm *TokenManager) Issue(identity domain.Identity) (domain.TokenPair, error) {
	access, err := tm.sign(identity, TokenTypeAccess, tm.accessTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := tm.sign(identity, TokenTypeRefresh, tm.refreshTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (tm *TokenManager) sign(identity domain.Identity, typ TokenType, ttl time.Duration) (string, error) {
	now := timeNow()
	claims := &Claims{
		Roles:     domain.Authorities(identity.Roles),
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

// Decode verifies signature and structure only. Expiry is deliberately
// NOT checked here: some callers need claims out of an expired token
// (e.g. the subject for logging), while Validate and the middleware
// enforce expiry themselves.
func (tm *TokenManager) Decode(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrSignatureInvalid
		}
		return tm.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, ErrSignatureInvalid) {
			return nil, ErrSignatureInvalid
		}
		return nil, ErrMalformed
	}
	if !parsed.Valid {
		return nil, ErrSignatureInvalid
	}
	return claims, nil
}

// Validate is the single predicate gating request access: false for
// malformed, badly signed or expired tokens, true otherwise. It never
// returns an error and holds no state, so repeated calls agree.
func (tm *TokenManager) Validate(tokenStr string) bool {
	claims, err := tm.Decode(tokenStr)
	if err != nil {
		return false
	}
	return !claims.ExpiredAt(timeNow())
}

// IsAccessToken reports whether the token carries the ACCESS type claim.
func (tm *TokenManager) IsAccessToken(tokenStr string) bool {
	claims, err := tm.Decode(tokenStr)
	if err != nil {
		return false
	}
	return claims.TokenType == TokenTypeAccess
}

// IsRefreshToken reports whether the token carries the REFRESH type claim.
func (tm *TokenManager) IsRefreshToken(tokenStr string) bool {
	claims, err := tm.Decode(tokenStr)
	if err != nil {
		return false
	}
	return claims.TokenType == TokenTypeRefresh
}

// ExtractSubject returns the subject claim without checking expiry;
// callers are expected to have run Validate first.
func (tm *TokenManager) ExtractSubject(tokenStr string) (string, error) {
	claims, err := tm.Decode(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

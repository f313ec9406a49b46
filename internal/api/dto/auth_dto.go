package dto

// LoginRequest carries credentials for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries registration data; the profile fields are
// forwarded to user-service, the credentials stay in auth-service.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	BirthDate string `json:"birth_date,omitempty"`
}

// TokenRequest carries a single token (refresh and validate endpoints).
type TokenRequest struct {
	Token string `json:"token"`
}

// AuthResponse returns the issued pair.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ValidateResponse reports the verdict for the validate endpoint.
type ValidateResponse struct {
	Valid bool `json:"valid"`
}

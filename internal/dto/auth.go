package dto

// Auth Request DTOs

// RegisterRequest contains user registration data
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required,min=1,max=100"`
}

// LoginRequest contains login credentials
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CurrencyUpdateRequest changes the user's preferred display currency
type CurrencyUpdateRequest struct {
	Currency string `json:"currency" validate:"required,len=3"`
}

// Auth Response DTOs

// UserProfile is the server-owned view of the authenticated user. The client
// treats it as an immutable snapshot replaced wholesale on every
// login/validate response.
type UserProfile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Currency string `json:"currency"`
}

// AuthResponse is returned by login and validate: the bearer token plus the
// profile fields, flattened into one JSON object.
type AuthResponse struct {
	Token string `json:"token"`
	UserProfile
}

// Profile returns the profile snapshot with the credential stripped out.
func (r *AuthResponse) Profile() UserProfile {
	return r.UserProfile
}

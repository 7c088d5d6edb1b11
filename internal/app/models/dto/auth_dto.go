package dto

// RegisterRequest represents a user registration request.
// Fields bind from query or form parameters.
type RegisterRequest struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
	Role     string `form:"role"`
}

// RegisterResponse is the non-secret public view of a registered user
type RegisterResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// TokenResponse represents an issued bearer token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

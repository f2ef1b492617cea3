package dto

// ErrorResponse is the body of every failed auth request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of a successful signup.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is the body of a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

package models

// Identity is the authenticated user's profile as returned by the backend.
type Identity struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResponse is the payload returned by the login and register endpoints:
// the issued credential token plus the user's identity fields.
type AuthResponse struct {
	Token string `json:"token"`
	Identity
}

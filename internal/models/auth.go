package models

// AuthRequest is the authenticate request body.
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the authenticate response body. Only AccessToken is
// consumed by this client; the remaining fields are decoded for completeness.
type AuthResponse struct {
	Message      string `json:"message,omitempty"`
	Code         string `json:"code"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// User describes the authenticated account as returned by the server.
type User struct {
	FirstName     string `json:"firstname"`
	LastName      string `json:"lastname"`
	Email         string `json:"email"`
	ProfilePicURL string `json:"profilePicURL,omitempty"`
}

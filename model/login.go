package model

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the body of the login endpoint. Some firmwares answer
// HTTP 200 with a non-zero Error code instead of a 4xx status, so both
// signals mean the router rejected the login.
type LoginResponse struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
}

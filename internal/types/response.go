package types

// Error codes used in the API envelope. The client switches on these, so they
// are part of the wire contract.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeAuth       = "AUTH_ERROR"
	CodeSuspended  = "ACCOUNT_SUSPENDED"
	CodeForbidden  = "FORBIDDEN"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeInternal   = "INTERNAL_ERROR"
)

// APIError is the error half of the response envelope.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// UserResponse is the public shape of a user. Roles mirrors the single Role
// string as a list for display consumers.
type UserResponse struct {
	ID     uint     `json:"id"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Role   string   `json:"role"`
	Roles  []string `json:"roles"`
	Status string   `json:"status,omitempty"`
}

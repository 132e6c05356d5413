package dto

// ErrorResponse is the error envelope the backend returns on non-2xx
// statuses: {"detail": "..."}.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// DeleteResponse is the body of successful delete operations.
type DeleteResponse struct {
	Message string `json:"message"`
}

package dto

// SuccessResponse is the envelope for successful mutations.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Data    any    `json:"data,omitempty"`
}

type ErrorResponse struct {
	Errors []string `json:"errors"`
	Codes  []string `json:"codes"`
}

package errors

// ErrorResponse represents the uniform failure envelope: a non-zero code plus a
// human-readable message and optional structured details.
type ErrorResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

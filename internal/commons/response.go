package commons

// Response is the envelope every ledger endpoint returns. Data is a
// pointer so an error envelope omits it entirely instead of sending a
// zero-valued account.
type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

// ErrorResponse builds a failure envelope. The details are shown to the
// caller verbatim, so handlers must not pass raw internal errors here.
func ErrorResponse[T any](message string, details ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  details,
	}
}

package tool

// Status of a tool invocation.
type Status string

// Status values.
const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Result is the uniform envelope tools return so that a caller orchestrating
// several tools in parallel can proceed with partial information instead of
// aborting on the first failure.
type Result[T any] struct {
	Status       Status `json:"status"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	Data         T      `json:"data"`
}

// Success wraps data in a success result.
func Success[T any](data T) Result[T] {
	return Result[T]{Status: StatusSuccess, Data: data}
}

// Failure wraps an error message in a failure result with zero data.
func Failure[T any](message string) Result[T] {
	return Result[T]{Status: StatusFailure, ErrorMessage: message}
}

// OK reports whether the invocation succeeded.
func (r Result[T]) OK() bool {
	return r.Status == StatusSuccess
}

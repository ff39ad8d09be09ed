package fixture

import "fmt"

// MethodNotFoundError reports a method the fixture does not expose.
type MethodNotFoundError struct {
	Method string
	Class  string
}

func (e *MethodNotFoundError) Error() string {
	return fmt.Sprintf("NO_METHOD_IN_CLASS %s %s", e.Method, e.Class)
}

// ArgumentError reports a positional argument that could not be converted.
type ArgumentError struct {
	Index int
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("NO_CONVERTER_FOR_ARGUMENT_NUMBER %d", e.Index)
}

// ExecutionError reports a failure inside the method itself. Its text is
// passed through to the exception result verbatim.
type ExecutionError struct {
	Text string
}

func (e *ExecutionError) Error() string {
	return e.Text
}

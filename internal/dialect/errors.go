package dialect

import "fmt"

// Error taxonomy shared by every dialect and the data-source layer. Callers
// branch on the category with errors.As; messages are written for direct
// display in CLI output.

// NotFoundError indicates a table, file or data source the operation needs
// does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ConnectivityError indicates a connection could not be opened or verified.
type ConnectivityError struct {
	Message string
}

func (e *ConnectivityError) Error() string { return e.Message }

// ErrConnectivity creates a ConnectivityError with a formatted message.
func ErrConnectivity(format string, args ...interface{}) *ConnectivityError {
	return &ConnectivityError{Message: fmt.Sprintf(format, args...)}
}

// ExecutionError indicates a SQL statement failed to execute.
type ExecutionError struct {
	Message string
}

func (e *ExecutionError) Error() string { return e.Message }

// ErrExecution creates an ExecutionError with a formatted message.
func ErrExecution(format string, args ...interface{}) *ExecutionError {
	return &ExecutionError{Message: fmt.Sprintf(format, args...)}
}

// UnsupportedOperationError indicates a capability the dialect set does not
// provide, e.g. an unknown driver name.
type UnsupportedOperationError struct {
	Message string
}

func (e *UnsupportedOperationError) Error() string { return e.Message }

// ErrUnsupported creates an UnsupportedOperationError with a formatted message.
func ErrUnsupported(format string, args ...interface{}) *UnsupportedOperationError {
	return &UnsupportedOperationError{Message: fmt.Sprintf(format, args...)}
}

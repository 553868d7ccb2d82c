package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// NotFound is returned when a requested item is not found.
	NotFound        = ErrorKind("Not Found")
	InvalidArgument = ErrorKind("Invalid Argument")
	Unsupported     = ErrorKind("Unsupported")
	InternalError   = ErrorKind("Internal Error")
	Timeout         = ErrorKind("Timeout")
	ConflictSetting = ErrorKind("Conflict Setting")

	// ReorgTooDeep is returned when a chain reorganization exceeds the
	// configured maximum rewind depth. Requires operator intervention.
	ReorgTooDeep = ErrorKind("Reorg Too Deep")

	// ConsistencyViolation is returned when an arithmetic or storage
	// invariant fails. The indexer must abort instead of serving bad data.
	ConsistencyViolation = ErrorKind("Consistency Violation")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

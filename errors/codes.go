package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E1xxx: Compile errors (raised before any instruction executes)
//   - E2xxx: Runtime errors
type ErrorCode string

const (
	// Compile errors (E1xxx)
	E1001 ErrorCode = "E1001" // Unbalanced brackets

	// Runtime errors (E2xxx)
	E2001 ErrorCode = "E2001" // Unexpected character
	E2002 ErrorCode = "E2002" // Pointer underflow
	E2003 ErrorCode = "E2003" // Execution halted
	E2004 ErrorCode = "E2004" // I/O failure
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "unbalanced brackets",

	E2001: "unexpected character",
	E2002: "pointer underflow",
	E2003: "execution halted",
	E2004: "i/o failure",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch c[1] {
	case '1':
		return "compile"
	case '2':
		return "runtime"
	default:
		return "unknown"
	}
}

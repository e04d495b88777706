package validation

import "fmt"

// Error describes the first structural mismatch found in a document.
type Error struct {
	Path     string
	Expected string
	Received string
}

func (e *Error) Error() string {
	path := e.Path
	if path == "" {
		path = "document"
	}
	if e.Received == kindMissing {
		return fmt.Sprintf("%s: required %s is missing", path, e.Expected)
	}
	return fmt.Sprintf("%s: expected %s, received %s", path, e.Expected, e.Received)
}

const (
	kindString  = "string"
	kindNumber  = "number"
	kindBoolean = "boolean"
	kindArray   = "array"
	kindObject  = "object"
	kindNull    = "null"
	kindMissing = "missing"
)

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return kindNull
	case string:
		return kindString
	case float64:
		return kindNumber
	case bool:
		return kindBoolean
	case []any:
		return kindArray
	case *Object:
		return kindObject
	}
	return fmt.Sprintf("%T", v)
}

func mismatch(path, expected string, got any) *Error {
	return &Error{Path: path, Expected: expected, Received: kindOf(got)}
}

func missing(path, expected string) *Error {
	return &Error{Path: path, Expected: expected, Received: kindMissing}
}

package wire

import "fmt"

// EncodingError reports a native value that cannot satisfy the requested
// shape. It is always raised before any network I/O.
type EncodingError struct {
	// Path locates the offending value inside a composite, e.g.
	// "linked_accounts[1].platform". Empty for top-level values.
	Path   string
	Reason string
	Err    error
}

func (e *EncodingError) Error() string {
	msg := "encoding error"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *EncodingError) Unwrap() error { return e.Err }

// DecodingError reports an unexpected or unsupported wire value.
type DecodingError struct {
	Tag    Tag
	Reason string
	Err    error
}

func (e *DecodingError) Error() string {
	msg := fmt.Sprintf("decoding error (%s): %s", e.Tag, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodingError) Unwrap() error { return e.Err }

func encodingErrorf(path string, format string, args ...any) *EncodingError {
	return &EncodingError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

func decodingErrorf(tag Tag, format string, args ...any) *DecodingError {
	return &DecodingError{Tag: tag, Reason: fmt.Sprintf(format, args...)}
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	if len(child) > 0 && child[0] == '[' {
		return parent + child
	}
	return parent + "." + child
}

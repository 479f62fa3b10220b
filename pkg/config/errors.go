package config

import "fmt"

// NotFoundError reports a dotted path that does not resolve.
// StoppedAt is the deepest namespace that was reached ("" for the root).
type NotFoundError struct {
	Path      string
	StoppedAt string
}

func (e *NotFoundError) Error() string {
	if e.StoppedAt == "" {
		return fmt.Sprintf("config path %q not found", e.Path)
	}
	return fmt.Sprintf("config path %q not found (resolution stopped at %q)", e.Path, e.StoppedAt)
}

// WrongTypeError reports a resolved value whose kind does not match the
// caller's expectation.
type WrongTypeError struct {
	Path string
	Want string
	Got  any
}

func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("config path %q: expected %s, got %T", e.Path, e.Want, e.Got)
}

package zerror

import (
	"errors"
	"fmt"
)

// ZError represents the error structure.
type ZError struct {
	parent error
	kind   Kind
	code   string
	msg    string
}

// NewZError initializes a ZError instance.
//
// code example: STORE_UNAVAILABLE
func NewZError(parent error, kind Kind, code, msg string) ZError {
	return ZError{
		parent: parent,
		kind:   kind,
		code:   code,
		msg:    msg,
	}
}

// Error returns the error message for the ZError.
func (e ZError) Error() string {
	if e.parent != nil {
		return fmt.Sprintf("Code=%s, Msg=%s, Parent=(%v)", e.code, e.msg, e.parent)
	}
	return fmt.Sprintf("Code=%s, Msg=%s", e.code, e.msg)
}

// WrapParent attaches an underlying error to an existing predefined ZError.
func (e ZError) WrapParent(parent error) ZError {
	if parent == nil {
		return e
	}
	e.parent = parent
	return e
}

// Unwrap returns the underlying error for the ZError.
func (e ZError) Unwrap() error {
	return e.parent
}

// Is reports whether target is a ZError with the same code, so a wrapped
// predefined error still matches its sentinel.
func (e ZError) Is(target error) bool {
	t, ok := target.(ZError)
	if !ok {
		return false
	}
	return e.code == t.code
}

// Kind returns the kind of the ZError.
func (e ZError) Kind() Kind {
	return e.kind
}

// Code returns the code of the ZError.
func (e ZError) Code() string {
	return e.code
}

// Msg returns the message of the ZError.
func (e ZError) Msg() string {
	return e.msg
}

// Parent returns the underlying error for the ZError.
func (e ZError) Parent() error {
	return e.parent
}

// KindOf returns the kind of the first ZError in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var zErr ZError
	if errors.As(err, &zErr) {
		return zErr.kind
	}
	return KindUnknown
}

func NewConnection(code, msg string) ZError {
	return NewZError(nil, KindConnection, code, msg)
}

func NewTransform(code, msg string) ZError {
	return NewZError(nil, KindTransform, code, msg)
}

func NewPublish(code, msg string) ZError {
	return NewZError(nil, KindPublish, code, msg)
}

func NewValidationFailed(code, msg string) ZError {
	return NewZError(nil, KindValidationFailed, code, msg)
}

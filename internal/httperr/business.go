package httperr

import "errors"

// Kind places a business error in the taxonomy the handlers map
// onto HTTP statuses.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindStorage    Kind = "storage"
	KindEncryption Kind = "encryption"
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
	Detail  map[string]string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *BusinessError) Unwrap() error { return e.Err }

// WithDetail attaches an identifying key/value pair (store, step,
// orphaned id) that is safe to return to the caller.
func (e *BusinessError) WithDetail(key, value string) *BusinessError {
	if e.Detail == nil {
		e.Detail = map[string]string{}
	}
	e.Detail[key] = value
	return e
}

func ErrValidation(code, message string) *BusinessError {
	return &BusinessError{Kind: KindValidation, Code: code, Message: message}
}

func ErrNotFound(code, message string) *BusinessError {
	return &BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func ErrConflict(code, message string) *BusinessError {
	return &BusinessError{Kind: KindConflict, Code: code, Message: message}
}

// ErrStorage wraps a driver-level failure. The wrapped error is kept
// for logs; handlers never serialize it.
func ErrStorage(code, message string, err error) *BusinessError {
	return &BusinessError{Kind: KindStorage, Code: code, Message: message, Err: err}
}

func ErrEncryption(code string, err error) *BusinessError {
	return &BusinessError{Kind: KindEncryption, Code: code, Message: "encryption failure", Err: err}
}

func IsKind(err error, kind Kind) bool {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

func AsBusiness(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

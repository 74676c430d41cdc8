package apperrors

import "errors"

// Kind классифицирует ошибки доменного слоя. Контроллеры отображают
// каждый вид в свой HTTP-статус.
type Kind int

const (
	KindValidation    Kind = iota + 1 // malformed input
	KindConflict                      // uniqueness violation
	KindAuthorization                 // role/ownership check failed
	KindNotFound                      // referenced entity does not exist
)

type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string // per-field detail for validation errors
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func ValidationFields(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

func IsValidation(err error) bool    { return IsKind(err, KindValidation) }
func IsConflict(err error) bool      { return IsKind(err, KindConflict) }
func IsAuthorization(err error) bool { return IsKind(err, KindAuthorization) }
func IsNotFound(err error) bool      { return IsKind(err, KindNotFound) }

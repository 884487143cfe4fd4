package domain

import "fmt"

type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Это позволяет использовать errors.Is()
func (e *DomainError) Is(target error) bool {
	if t, ok := target.(*DomainError); ok {
		return e.Code == t.Code
	}
	return false
}

const (
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeIOFailure          = "IO_FAILURE"
	CodeBackendUnavailable = "BACKEND_UNAVAILABLE"
	CodeTruncationLoss     = "TRUNCATION_LOSS"
	CodeBadRequest         = "BAD_REQUEST"
)

var (
	// ErrNotFound - ресурс не найден
	ErrNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "resource not found",
	}

	// ErrConflict - операция противоречит текущему состоянию
	ErrConflict = &DomainError{
		Code:    CodeConflict,
		Message: "conflicting state",
	}

	// ErrGroupExists - группа уже существует
	ErrGroupExists = &DomainError{
		Code:    CodeConflict,
		Message: "group already exists",
	}

	// ErrDefaultGroupReserved - группу default нельзя удалить
	ErrDefaultGroupReserved = &DomainError{
		Code:    CodeConflict,
		Message: "default group cannot be deleted",
	}

	// ErrIOFailure - ошибка чтения или записи файла
	ErrIOFailure = &DomainError{
		Code:    CodeIOFailure,
		Message: "storage i/o failure",
	}

	// ErrBackendUnavailable - операция во внешнем бэкенде прав не удалась
	ErrBackendUnavailable = &DomainError{
		Code:    CodeBackendUnavailable,
		Message: "permission backend unavailable",
	}

	// ErrTruncationLoss - текст обрезан сильнее, чем ожидает шаблон
	ErrTruncationLoss = &DomainError{
		Code:    CodeTruncationLoss,
		Message: "text truncated",
	}
)

// NewNotFoundError создает ошибку NOT_FOUND с дополнительным контекстом
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewBadRequestError создает ошибку BAD_REQUEST
func NewBadRequestError(message string) *DomainError {
	return &DomainError{
		Code:    CodeBadRequest,
		Message: message,
	}
}

// NewIOFailure оборачивает ошибку хранилища
func NewIOFailure(op string, err error) *DomainError {
	return &DomainError{
		Code:    CodeIOFailure,
		Message: op,
		Err:     err,
	}
}

// NewBackendUnavailable оборачивает ошибку бэкенда прав
func NewBackendUnavailable(op string, err error) *DomainError {
	return &DomainError{
		Code:    CodeBackendUnavailable,
		Message: op,
		Err:     err,
	}
}

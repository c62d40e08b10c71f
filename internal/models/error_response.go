package models

import "net/http"

// ErrorKind - машиночитаемый класс ошибки.
type ErrorKind string

const (
	ValidationError         ErrorKind = "ValidationError"
	NotFoundError           ErrorKind = "NotFoundError"
	ConflictError           ErrorKind = "ConflictError"
	NoActiveLotError        ErrorKind = "NoActiveLotError"
	InvalidBidError         ErrorKind = "InvalidBidError"
	BudgetExceededError     ErrorKind = "BudgetExceededError"
	RosterConstraintError   ErrorKind = "RosterConstraintError"
	ImmutableStateError     ErrorKind = "ImmutableStateError"
	StorageUnavailableError ErrorKind = "StorageUnavailableError"
)

// ErrorResponse описывает ошибку с кодом, классом и сообщением.
type ErrorResponse struct {
	StatusCode int       `json:"-"`
	Kind       ErrorKind `json:"kind"`
	Message    string    `json:"reason"`
}

// NewErrorResponse создает новую ошибку с кодом, классом и сообщением.
func NewErrorResponse(statusCode int, kind ErrorKind, message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: statusCode,
		Kind:       kind,
		Message:    message}
}

// Реализация метода Error() для удовлетворения интерфейса error.
func (e *ErrorResponse) Error() string {
	return e.Message
}

// NewValidationError - отсутствующие или некорректные поля запроса.
func NewValidationError(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusBadRequest, ValidationError, message)
}

// NewNotFoundError - сущность не найдена.
func NewNotFoundError(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusNotFound, NotFoundError, message)
}

// NewConflictError - недопустимый переход состояния.
func NewConflictError(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusConflict, ConflictError, message)
}

// NewNoActiveLotError - игрок сейчас не на торгах.
func NewNoActiveLotError(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusConflict, NoActiveLotError, message)
}

// NewInvalidBidError - ставка ниже минимального шага.
func NewInvalidBidError(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusUnprocessableEntity, InvalidBidError, message)
}

// NewBudgetExceededError - превышен остаток бюджета команды.
func NewBudgetExceededError(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusUnprocessableEntity, BudgetExceededError, message)
}

// NewRosterConstraintError - нарушены ограничения состава по категории.
func NewRosterConstraintError(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusConflict, RosterConstraintError, message)
}

// NewImmutableStateError - аукцион после своей даты больше не изменяется.
func NewImmutableStateError(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusConflict, ImmutableStateError, message)
}

// NewStorageUnavailableError - хранилище недоступно, запрос можно повторить.
func NewStorageUnavailableError(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusServiceUnavailable, StorageUnavailableError, message)
}

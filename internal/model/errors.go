package model

// Сообщения для клиента при ошибках валидации.
const (
	MsgBadURL     = "URL is not in correct format!"
	MsgMissingURL = "Missing URL!"

	MsgBadEncoding = "Unable to decompress request"
)

// ValidationError описывает ошибку пользовательского ввода.
// Message отдаётся клиенту как есть.
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string {
	return e.Message
}

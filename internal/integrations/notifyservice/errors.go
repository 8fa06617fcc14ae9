package notifyservice

import "errors"

var (
	// ErrInternal внутренняя ошибка клиента
	ErrInternal = errors.New("notifyservice: internal error")
	// ErrInvalidResponse неожиданный ответ webhook-приемника
	ErrInvalidResponse = errors.New("notifyservice: invalid response")
)

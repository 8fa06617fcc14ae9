package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Машиночитаемые коды ошибок API
const (
	CodeInvalidInput  = "invalid_input"
	CodeInvalidEmail  = "invalid_email"
	CodeInvalidDate   = "invalid_date"
	CodeInvalidTime   = "invalid_time"
	CodeDateInPast    = "date_in_past"
	CodeDateTooFar    = "date_too_far"
	CodeOutsideHours  = "outside_hours"
	CodeSlotTaken     = "slot_taken"
	CodeNotFound      = "not_found"
	CodeConflict      = "conflict"
	CodeRateLimited   = "rate_limited"
	CodeInternalError = "internal_error"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`          // человекочитаемое сообщение
	Code  string `json:"code,omitempty"` // машиночитаемый код
}

// RateLimitedResponse тело ответа 429
type RateLimitedResponse struct {
	Error      string `json:"error"`
	Code       string `json:"code"`
	RetryAfter int    `json:"retryAfter"` // секунды до начала следующего окна
}

// DecodeJSON декодирует тело запроса в dst, отклоняя неизвестные поля
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("handlers: failed to decode request body: %w", err)
	}
	return nil
}

// RespondJSON отправляет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	// Статус уже ушел клиенту, ошибку кодирования остается только проглотить
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondErrorCode отправляет ошибку с машиночитаемым кодом
func RespondErrorCode(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// RespondError отправляет ошибку без кода
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondBadRequest отправляет 400 с кодом invalid_input
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondErrorCode(w, http.StatusBadRequest, CodeInvalidInput, message)
}

// RespondNotFound отправляет 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondErrorCode(w, http.StatusNotFound, CodeNotFound, message)
}

// RespondConflict отправляет 409
func RespondConflict(w http.ResponseWriter, code, message string) {
	RespondErrorCode(w, http.StatusConflict, code, message)
}

// RespondInternalError отправляет 500
func RespondInternalError(w http.ResponseWriter) {
	RespondErrorCode(w, http.StatusInternalServerError, CodeInternalError, "внутренняя ошибка сервера")
}

// RespondRateLimited отправляет 429 с Retry-After
func RespondRateLimited(w http.ResponseWriter, retryAfter time.Duration, message string) {
	seconds := int(retryAfter.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(seconds))
	RespondJSON(w, http.StatusTooManyRequests, RateLimitedResponse{
		Error:      message,
		Code:       CodeRateLimited,
		RetryAfter: seconds,
	})
}

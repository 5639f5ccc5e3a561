// Package handlers содержит общие функции HTTP слоя: разбор тела запроса и формирование ответов.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// Виды ошибок в теле ответа
const (
	KindValidation       = "ValidationError"
	KindNotFound         = "NotFoundError"
	KindConflict         = "ConflictError"
	KindOverlap          = "Overlap"
	KindBanned           = "Banned"
	KindTooLate          = "TooLate"
	KindForbidden        = "Forbidden"
	KindCapacityExceeded = "CapacityExceeded"
	KindUnauthorized     = "Unauthorized"
	KindBadRequest       = "BadRequest"
	KindTooManyRequests  = "TooManyRequests"
	KindInternal         = "InternalError"
)

const msgInternalError = "внутренняя ошибка сервера"

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type errorMapping struct {
	kind   error
	status int
	name   string
}

// порядок важен: ошибка может оборачивать только один вид
var errorMappings = []errorMapping{
	{domain.ErrValidation, http.StatusUnprocessableEntity, KindValidation},
	{domain.ErrNotFound, http.StatusNotFound, KindNotFound},
	{domain.ErrConflict, http.StatusConflict, KindConflict},
	{domain.ErrOverlap, http.StatusConflict, KindOverlap},
	{domain.ErrBanned, http.StatusForbidden, KindBanned},
	{domain.ErrTooLate, http.StatusBadRequest, KindTooLate},
	{domain.ErrForbidden, http.StatusForbidden, KindForbidden},
	{domain.ErrCapacityExceeded, http.StatusConflict, KindCapacityExceeded},
}

// DecodeJSON декодирует тело запроса в v
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return err
	}
	return nil
}

// PathInt64 извлекает числовой параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, fmt.Errorf("path parameter %s is missing", name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("path parameter %s must be a positive integer", name)
	}
	return id, nil
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	if data == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// RespondNoContent отправляет 204
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondError отправляет ошибку с видом и сообщением
func RespondError(w http.ResponseWriter, status int, kind, message string) {
	RespondJSON(w, status, ErrorResponse{Error: kind, Message: message})
}

// RespondBadRequest 400 для неразбираемого запроса
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, KindBadRequest, message)
}

// RespondUnauthorized 401 при отсутствии заголовков идентификации
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, KindUnauthorized, message)
}

// RespondForbidden 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, KindForbidden, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, KindNotFound, message)
}

// RespondInternalError 500 без подробностей
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, KindInternal, msgInternalError)
}

// StatusOf возвращает HTTP статус и вид для ошибки usecase или сервиса
func StatusOf(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.kind) {
			return m.status, m.name
		}
	}
	return http.StatusInternalServerError, KindInternal
}

// RespondDomainError отправляет ответ по виду доменной ошибки.
// Внутренние ошибки не раскрывают текст клиенту.
func RespondDomainError(w http.ResponseWriter, err error) {
	status, kind := StatusOf(err)
	if status == http.StatusInternalServerError {
		RespondInternalError(w)
		return
	}
	RespondError(w, status, kind, err.Error())
}

package response

import (
	"encoding/json"
	"net/http"

	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/logger"
)

type Data[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    *T     `json:"data,omitempty"`
}

type Error struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

type Message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WithMessage sends a successful response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Success: true, Message: message})
}

// WithJSON sends a successful response carrying payload under data
func WithJSON(writer http.ResponseWriter, code int, message string, payload any) {
	response(writer, code, Data[any]{Success: true, Message: message, Data: &payload})
}

// WithError sends a failed response. Failures without a code are reported as internal errors
// and their message is not exposed.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	message := err.Error()

	if code == http.StatusInternalServerError {
		logger.ErrorWithStack(err)

		message = constant.ResponseErrorInternal
	}

	response(writer, code, Error{Message: message, Reason: failure.GetReason(err)})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	response(writer, http.StatusTooManyRequests, Error{Message: constant.ResponseErrorRequestLimitExceeded})
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	response(writer, http.StatusServiceUnavailable, Error{Message: constant.ResponseErrorPrepareShutdown})
}

func WithRouteNotFound(writer http.ResponseWriter) {
	WithError(writer, failure.NotFound(constant.ResponseErrorRouteNotFound))
}

func WithMethodNotAllowed(writer http.ResponseWriter) {
	response(writer, http.StatusMethodNotAllowed, Error{Message: constant.ResponseErrorMethodNotAllowed})
}

func response(writer http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}

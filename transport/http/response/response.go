package response

import (
	"encoding/json"
	"mytodos/shared/constant"
	"mytodos/shared/failure"
	"mytodos/shared/logger"
	"net/http"
)

// Error is the body of every failed request.
type Error struct {
	ErrorMsg string `json:"errorMsg"`
}

// WithJSON sends payload as the whole response body
func WithJSON(writer http.ResponseWriter, code int, payload any) {
	response(writer, code, payload)
}

// WithError sends the error message with the status carried by a failure, 500 otherwise
func WithError(writer http.ResponseWriter, err error) {
	response(writer, failure.GetCode(err), Error{ErrorMsg: err.Error()})
}

// WithErrorMessage sends an error body with an explicit status
func WithErrorMessage(writer http.ResponseWriter, code int, msg string) {
	response(writer, code, Error{ErrorMsg: msg})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithErrorMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithErrorMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithErrorMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}

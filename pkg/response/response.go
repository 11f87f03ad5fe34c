package response

import (
	"encoding/json"
	"net/http"

	"kaamsaathi-backend/pkg/apperror"
	"kaamsaathi-backend/pkg/logger"

	"go.uber.org/zap"
)

// Response is the standard API envelope. Callers must check Success before
// trusting Data.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo - client-visible error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success sends a 200 envelope
func Success(w http.ResponseWriter, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a 201 envelope
func Created(w http.ResponseWriter, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	json.NewEncoder(w).Encode(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends a failure envelope and logs the underlying cause
func Error(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperror.FromError(err)

	if appErr.Internal != nil {
		logger.Error("Request error",
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
			zap.String("error_code", appErr.Code),
			zap.Error(appErr.Internal),
			zap.String("remote_addr", r.RemoteAddr),
		)
	} else {
		logger.Warn("Client error",
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
			zap.String("error_code", appErr.Code),
			zap.String("message", appErr.Message),
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.HTTPStatus)

	json.NewEncoder(w).Encode(Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    appErr.Code,
			Message: appErr.Message,
		},
	})
}

// MethodNotAllowed sends a 405 envelope
func MethodNotAllowed(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)

	json.NewEncoder(w).Encode(Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    "METHOD_NOT_ALLOWED",
			Message: "This method is not supported on this endpoint",
		},
	})
}

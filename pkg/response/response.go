package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/decarvalhoe/umbra-payment-service/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SuccessResponse is the envelope for every 2xx payload.
type SuccessResponse struct {
	Data      interface{} `json:"data"`
	RequestID string      `json:"request_id"`
	Timestamp string      `json:"timestamp"`
}

// ErrorResponse is the envelope for every error payload.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

// OK sends a 200 with data wrapped in the success envelope.
func OK(c *gin.Context, data interface{}) {
	send(c, http.StatusOK, data)
}

// Created sends a 201 with data wrapped in the success envelope.
func Created(c *gin.Context, data interface{}) {
	send(c, http.StatusCreated, data)
}

func send(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{
		Data:      data,
		RequestID: getRequestID(c),
		Timestamp: now(),
	})
}

// Error maps err onto the error envelope. An *apperror.AppError anywhere
// in the chain supplies the status and code; anything else becomes an
// opaque 500 so internal causes never reach the client.
func Error(c *gin.Context, err error) {
	code, message, status := "SYS_000", "Internal server error", http.StatusInternalServerError

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		code, message, status = appErr.Code, appErr.Message, appErr.HTTPStatus
	}

	c.JSON(status, ErrorResponse{
		ErrorCode: code,
		Message:   message,
		RequestID: getRequestID(c),
		Timestamp: now(),
	})
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// getRequestID reads the id the middleware stored, generating one for
// responses written outside the middleware chain.
func getRequestID(c *gin.Context) string {
	if id, exists := c.Get("request_id"); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return uuid.New().String()
}

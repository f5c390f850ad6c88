package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/curriculum-api/pkg/errors"
)

// Envelope represents the common success contract.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	ID      interface{} `json:"id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

// ErrorBody is returned for every failed request.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// JSON sends a raw JSON payload with caching disabled.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, payload)
}

// OK responds with a success envelope carrying data.
func OK(c *gin.Context, data interface{}, message string) {
	JSON(c, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// List responds with data plus its element count.
func List(c *gin.Context, data interface{}, count int) {
	JSON(c, http.StatusOK, Envelope{Success: true, Data: data, Count: &count})
}

// Created responds with HTTP 201 Created exposing the generated id.
func Created(c *gin.Context, id interface{}, data interface{}, message string) {
	JSON(c, http.StatusCreated, Envelope{Success: true, Message: message, ID: id, Data: data})
}

// Success confirms an operation that has no body beyond a message.
func Success(c *gin.Context, message string) {
	JSON(c, http.StatusOK, Envelope{Success: true, Message: message})
}

// Error sends an error response converting the error to the common structure.
// Wrapped causes are never serialised.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr.Err != nil {
		_ = c.Error(appErr.Err)
	}
	JSON(c, appErr.Status, ErrorBody{Error: appErr.Message, Code: appErr.Code})
}

// Abort writes the error and stops the middleware chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

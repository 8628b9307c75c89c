package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cuidarpet/cuidarpet-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// OK writes a 200 success envelope.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, NewSuccessResponse(data))
}

// Created writes a 201 success envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, NewSuccessResponse(data))
}

// NoContent writes an empty 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error maps a service error onto its HTTP status and writes the error
// envelope. Internal errors are also pushed onto the gin error list so the
// error middleware logs them with request context.
func Error(c *gin.Context, err error) {
	appErr := errors.From(err)
	if appErr.StatusCode() >= http.StatusInternalServerError {
		_ = c.Error(err)
		c.Abort()
		return
	}
	c.JSON(appErr.StatusCode(), NewErrorResponse(appErr.Message))
}

// BadRequest writes a 400 with a binding or parse failure message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, NewErrorResponse(message))
}

package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response shape for every endpoint, success or failure.
type Envelope struct {
	Message string `json:"message"`
	Body    any    `json:"body"`
}

// JSON writes an envelope with the given status.
func JSON(c *gin.Context, status int, message string, body any) {
	if body == nil {
		body = gin.H{}
	}
	c.JSON(status, Envelope{Message: message, Body: body})
}

// Success writes a 200 envelope.
func Success(c *gin.Context, message string, body any) {
	JSON(c, http.StatusOK, message, body)
}

// Created writes a 201 envelope.
func Created(c *gin.Context, message string, body any) {
	JSON(c, http.StatusCreated, message, body)
}

package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorBody struct {
	Message string `json:"message"`
}

// Response is the JSON error envelope. Status travels with it so ErrorHandler can
// re-render the body after the handler chain.
type Response struct {
	Status int       `json:"-"`
	Error  ErrorBody `json:"error"`
	Detail any       `json:"detail,omitempty"`
}

func NewResponse(status int, msg string, detail any) Response {
	return Response{Status: status, Error: ErrorBody{Message: msg}, Detail: detail}
}

func Internal() Response {
	return NewResponse(http.StatusInternalServerError, "Internal server error", nil)
}

// AbortWithError records err on the context for logging and writes the public response.
// The underlying err is never serialized.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("httperr: AbortWithError called with nil error")
	}

	resp := NewResponse(status, msg, detail)
	_ = c.Error(err).SetType(gin.ErrorTypePublic).SetMeta(resp)
	c.AbortWithStatusJSON(status, resp)
}

package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status     bool        `json:"status"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type errorBody struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

// RespondList is RespondJSON plus pagination metadata for collection
// endpoints.
func RespondList(c *gin.Context, message string, data interface{}, p Pagination) {
	c.JSON(http.StatusOK, JSONResponse{
		Status:     true,
		Message:    message,
		Data:       data,
		Pagination: &p,
	})
}

// RespondError is the single boundary translator: every failure leaves
// the API as {"error":{"status":N,"message":...}}. AppError kinds choose
// their own status; anything else is an internal error with the concrete
// message logged rather than exposed.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		writeError(c, appErr.HTTPStatus(), appErr.Message)
		return
	}
	ErrorLogger.Printf("unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	writeError(c, http.StatusInternalServerError, "Internal Server Error")
}

// RespondErrorStatus reports a failure with an explicit status code, for
// the transport-level cases (bad JSON, missing token) that never reach a
// service.
func RespondErrorStatus(c *gin.Context, code int, err error) {
	writeError(c, code, err.Error())
}

func writeError(c *gin.Context, code int, message string) {
	var body errorBody
	body.Error.Status = code
	body.Error.Message = message
	c.JSON(code, body)
}

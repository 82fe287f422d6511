package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/hireflow/internal/utils"
)

// errorBody is the failure envelope every endpoint shares.
type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeError answers with the safe message of an AppError. The full error is
// attached to the context for the request logger and never sent to clients.
func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)
	_ = c.Error(err)

	msg := http.StatusText(status)
	var ae *utils.AppError
	if errors.As(err, &ae) && ae.Message != "" {
		msg = ae.Message
	}

	c.AbortWithStatusJSON(status, errorBody{Success: false, Error: msg})
}

func badRequest(c *gin.Context, op, msg string, err error) {
	writeError(c, utils.E(utils.CodeInvalidArgument, op, msg, err))
}

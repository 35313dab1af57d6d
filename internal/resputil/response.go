package resputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/raids-lab/projecthub/pkg/apperror"
	"github.com/raids-lab/projecthub/pkg/logutils"
)

// Response is the single envelope of every JSON reply. Successful replies
// carry ok=true and data; failures carry ok=false, kind and message.
type Response[T any] struct {
	OK      bool          `json:"ok"`
	Data    T             `json:"data,omitempty"`
	Kind    apperror.Kind `json:"kind,omitempty"`
	Message string        `json:"message,omitempty"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response[any]{OK: true, Data: data})
}

// SuccessWithMessage replies with status and a human readable message
// alongside data.
func SuccessWithMessage(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Response[any]{OK: true, Data: data, Message: message})
}

func Created(c *gin.Context, data any, message string) {
	SuccessWithMessage(c, http.StatusCreated, data, message)
}

// Error renders err with the status of its kind. Internal errors are logged
// with their cause and reach the client only as a generic message.
func Error(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	message := err.Error()
	if kind == apperror.KindInternal {
		logutils.Log.WithFields(logutils.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Errorf("internal error: %v", err)
		message = apperror.ErrInternal.Message
	} else if appErr := apperror.As(err); appErr != nil {
		message = appErr.Message
	}
	HTTPError(c, kind.HTTPStatus(), message, kind)
}

func HTTPError(c *gin.Context, httpCode int, message string, kind apperror.Kind) {
	c.JSON(httpCode, Response[any]{OK: false, Kind: kind, Message: message})
}

func BadRequestError(c *gin.Context, message string) {
	HTTPError(c, http.StatusBadRequest, message, apperror.KindValidation)
}

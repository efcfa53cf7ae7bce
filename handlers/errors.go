package handlers

import (
	"errors"
	"net/http"

	"barberqueue/services/queue"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps a coordinator error kind to an HTTP status.
func statusFor(err error) int {
	var qe *queue.Error
	if !errors.As(err, &qe) {
		return http.StatusInternalServerError
	}
	switch qe.Kind {
	case queue.KindNotFound:
		return http.StatusNotFound
	case queue.KindConflict:
		return http.StatusConflict
	case queue.KindValidation:
		return http.StatusBadRequest
	case queue.KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": ...} plus any conflict context the caller can act on.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{"error": err.Error()}

	var qe *queue.Error
	if errors.As(err, &qe) {
		body["error"] = qe.Message
		body["kind"] = qe.Kind
		if qe.Position != nil {
			body["position"] = *qe.Position
		}
		if qe.ProviderName != "" {
			body["providerId"] = qe.ProviderID
			body["providerName"] = qe.ProviderName
		}
	}

	logger := getLogger(c)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		logger.Debug("Request rejected", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, body)
}

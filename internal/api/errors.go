package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spotlog/spotlog/internal/errs"
	"github.com/spotlog/spotlog/pkg/logging"
)

// statusOf maps an error category to its HTTP status. This is the only
// place transport semantics attach to the taxonomy.
func statusOf(category errs.Category) int {
	switch category {
	case errs.CategoryNotFound:
		return http.StatusNotFound
	case errs.CategoryNotAllowed, errs.CategoryAccessDenied:
		return http.StatusForbidden
	case errs.CategoryConflict:
		return http.StatusConflict
	case errs.CategoryInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse is the stable error body: (code, category, message)
type errorResponse struct {
	Code     int           `json:"code"`
	Category errs.Category `json:"category"`
	Message  string        `json:"message"`
}

// writeError renders err as the stable error triple. Errors outside
// the taxonomy are logged in full and surfaced opaquely.
func writeError(c *gin.Context, err error) {
	var e *errs.Error
	if !errors.As(err, &e) {
		logging.WithComponent("api").Error("Unhandled error", zap.Error(err))
		e = &errs.Error{Code: errs.CodeInternal, Category: errs.CategoryInternal, Message: "internal error"}
	} else if e.Category == errs.CategoryInternal {
		logging.WithComponent("api").Error("Internal error", zap.Error(err))
		e = &errs.Error{Code: errs.CodeInternal, Category: errs.CategoryInternal, Message: "internal error"}
	}

	c.JSON(statusOf(e.Category), errorResponse{Code: e.Code, Category: e.Category, Message: e.Message})
}

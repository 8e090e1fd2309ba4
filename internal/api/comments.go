package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spotlog/spotlog/internal/errs"
	"github.com/spotlog/spotlog/internal/social"
	"github.com/spotlog/spotlog/internal/visibility"
	"github.com/spotlog/spotlog/pkg/logging"
	"github.com/spotlog/spotlog/pkg/telemetry"
)

// CommentAPI provides comment mutation endpoints
type CommentAPI struct {
	social *social.Service
	policy *visibility.Policy
	logger *zap.Logger
}

// NewCommentAPI creates a new comment API
func NewCommentAPI(socialSvc *social.Service, policy *visibility.Policy) *CommentAPI {
	return &CommentAPI{
		social: socialSvc,
		policy: policy,
		logger: logging.GetLogger().With(zap.String("component", "api-comments")),
	}
}

// Patch handles PATCH /comments/:id
func (a *CommentAPI) Patch(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.patch_comment")
	defer span.End()

	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errs.InvalidRequest("invalid request body"))
		return
	}

	caller := callerOf(c)
	comment, err := a.social.PatchComment(ctx, caller, id, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}

	view, err := a.policy.RevealComment(ctx, comment, caller)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Delete handles DELETE /comments/:id
func (a *CommentAPI) Delete(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.delete_comment")
	defer span.End()

	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := a.social.DeleteComment(ctx, callerOf(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

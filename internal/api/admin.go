package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spotlog/spotlog/internal/errs"
	"github.com/spotlog/spotlog/internal/social"
	"github.com/spotlog/spotlog/pkg/logging"
	"github.com/spotlog/spotlog/pkg/telemetry"
)

// AdminAPI provides moderation endpoints: blocking, unblocking and the
// administrative purge. Role checks live in the social service; these
// handlers only shape the transport.
type AdminAPI struct {
	social *social.Service
	logger *zap.Logger
}

// NewAdminAPI creates a new admin API
func NewAdminAPI(socialSvc *social.Service) *AdminAPI {
	return &AdminAPI{
		social: socialSvc,
		logger: logging.GetLogger().With(zap.String("component", "api-admin")),
	}
}

type blockRequest struct {
	Reason string `json:"reason"`
}

// BlockUser handles POST /admin/users/:id/block
func (a *AdminAPI) BlockUser(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.block_user")
	defer span.End()

	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	var req blockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errs.InvalidRequest("invalid request body"))
		return
	}

	if err := a.social.BlockUser(ctx, callerOf(c), id, req.Reason); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UnblockUser handles DELETE /admin/users/:id/block
func (a *AdminAPI) UnblockUser(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.unblock_user")
	defer span.End()

	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := a.social.UnblockUser(ctx, callerOf(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BlockReview handles POST /admin/reviews/:id/block
func (a *AdminAPI) BlockReview(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.block_review")
	defer span.End()

	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	var req blockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errs.InvalidRequest("invalid request body"))
		return
	}

	if err := a.social.BlockReview(ctx, callerOf(c), id, req.Reason); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UnblockReview handles DELETE /admin/reviews/:id/block
func (a *AdminAPI) UnblockReview(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.unblock_review")
	defer span.End()

	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := a.social.UnblockReview(ctx, callerOf(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PurgeUser handles DELETE /admin/users/:id
func (a *AdminAPI) PurgeUser(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.purge_user")
	defer span.End()

	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := a.social.PurgeUser(ctx, callerOf(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

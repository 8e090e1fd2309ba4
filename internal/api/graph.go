package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spotlog/spotlog/internal/db"
	"github.com/spotlog/spotlog/internal/errs"
	"github.com/spotlog/spotlog/internal/social"
	"github.com/spotlog/spotlog/internal/visibility"
	"github.com/spotlog/spotlog/pkg/logging"
	"github.com/spotlog/spotlog/pkg/telemetry"
)

// GraphAPI provides follow, heart and scrap mutation endpoints.
// Mutations return the refreshed view of the affected entity so the
// caller sees updated counts and flags without a second request.
type GraphAPI struct {
	repo   *db.Repository
	social *social.Service
	policy *visibility.Policy
	logger *zap.Logger
}

// NewGraphAPI creates a new social graph API
func NewGraphAPI(repo *db.Repository, socialSvc *social.Service, policy *visibility.Policy) *GraphAPI {
	return &GraphAPI{
		repo:   repo,
		social: socialSvc,
		policy: policy,
		logger: logging.GetLogger().With(zap.String("component", "api-graph")),
	}
}

func (a *GraphAPI) requireCaller(c *gin.Context) (visibility.Caller, bool) {
	caller := callerOf(c)
	if caller.IsAnonymous() {
		writeError(c, errs.AccessDenied("sign in required"))
		return caller, false
	}
	return caller, true
}

// respondUser renders the target user after a follow-graph mutation
func (a *GraphAPI) respondUser(c *gin.Context, userID int64, caller visibility.Caller) {
	user, err := db.NewUserRepository(a.repo).GetByID(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	if user == nil {
		writeError(c, errs.NotFound("user %d not found", userID))
		return
	}
	view, err := a.policy.RevealUser(c.Request.Context(), user, caller)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// respondReview renders the target review after a reaction mutation
func (a *GraphAPI) respondReview(c *gin.Context, reviewID int64, caller visibility.Caller) {
	review, err := db.NewReviewRepository(a.repo).GetByID(c.Request.Context(), reviewID)
	if err != nil {
		writeError(c, err)
		return
	}
	if review == nil {
		writeError(c, errs.NotFound("review %d not found", reviewID))
		return
	}
	view, err := a.policy.RevealReview(c.Request.Context(), review, caller)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Follow handles POST /users/:id/follow
func (a *GraphAPI) Follow(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.follow")
	defer span.End()

	caller, ok := a.requireCaller(c)
	if !ok {
		return
	}
	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := a.social.Follow(ctx, caller, id); err != nil {
		writeError(c, err)
		return
	}
	a.respondUser(c, id, caller)
}

// Unfollow handles DELETE /users/:id/follow
func (a *GraphAPI) Unfollow(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.unfollow")
	defer span.End()

	caller, ok := a.requireCaller(c)
	if !ok {
		return
	}
	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := a.social.Unfollow(ctx, caller, id); err != nil {
		writeError(c, err)
		return
	}
	a.respondUser(c, id, caller)
}

// Heart handles POST /reviews/:id/heart
func (a *GraphAPI) Heart(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.heart")
	defer span.End()

	caller, ok := a.requireCaller(c)
	if !ok {
		return
	}
	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := a.social.Heart(ctx, caller, id); err != nil {
		writeError(c, err)
		return
	}
	a.respondReview(c, id, caller)
}

// Unheart handles DELETE /reviews/:id/heart
func (a *GraphAPI) Unheart(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.unheart")
	defer span.End()

	caller, ok := a.requireCaller(c)
	if !ok {
		return
	}
	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := a.social.Unheart(ctx, caller, id); err != nil {
		writeError(c, err)
		return
	}
	a.respondReview(c, id, caller)
}

type scrapRequest struct {
	Description string `json:"description"`
}

// Scrap handles POST /reviews/:id/scrap
func (a *GraphAPI) Scrap(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.scrap")
	defer span.End()

	caller, ok := a.requireCaller(c)
	if !ok {
		return
	}
	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	var req scrapRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, errs.InvalidRequest("invalid request body"))
			return
		}
	}

	if err := a.social.Scrap(ctx, caller, id, req.Description); err != nil {
		writeError(c, err)
		return
	}
	a.respondReview(c, id, caller)
}

// Unscrap handles DELETE /reviews/:id/scrap
func (a *GraphAPI) Unscrap(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.unscrap")
	defer span.End()

	caller, ok := a.requireCaller(c)
	if !ok {
		return
	}
	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := a.social.Unscrap(ctx, caller, id); err != nil {
		writeError(c, err)
		return
	}
	a.respondReview(c, id, caller)
}

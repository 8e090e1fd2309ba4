package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spotlog/spotlog/internal/cache"
	"github.com/spotlog/spotlog/internal/db"
	"github.com/spotlog/spotlog/internal/errs"
	"github.com/spotlog/spotlog/internal/ranking"
	"github.com/spotlog/spotlog/internal/social"
	"github.com/spotlog/spotlog/internal/visibility"
	"github.com/spotlog/spotlog/pkg/config"
	"github.com/spotlog/spotlog/pkg/logging"
	"github.com/spotlog/spotlog/pkg/telemetry"
)

// ReviewAPI provides review-related endpoints
type ReviewAPI struct {
	repo   *db.Repository
	engine *ranking.Engine
	policy *visibility.Policy
	social *social.Service
	cache  *cache.Cache
	limits config.PaginationConfig
	logger *zap.Logger
}

// NewReviewAPI creates a new review API
func NewReviewAPI(repo *db.Repository, engine *ranking.Engine, policy *visibility.Policy,
	socialSvc *social.Service, redisCache *cache.Cache, limits config.PaginationConfig) *ReviewAPI {
	return &ReviewAPI{
		repo:   repo,
		engine: engine,
		policy: policy,
		social: socialSvc,
		cache:  redisCache,
		limits: limits,
		logger: logging.GetLogger().With(zap.String("component", "api-reviews")),
	}
}

// List handles GET /reviews
func (a *ReviewAPI) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.list_reviews")
	defer span.End()

	q, err := parsePageQuery(c, a.limits)
	if err != nil {
		writeError(c, err)
		return
	}
	caller := callerOf(c)

	cacheKey := cache.HashKey("list_reviews",
		fmt.Sprintf("%d", q.Page), fmt.Sprintf("%d", q.Size),
		string(q.Sort), fmt.Sprintf("%t", q.Ascending),
		q.Keyword, string(q.SearchBy),
		fmt.Sprintf("%d", caller.ID))
	if a.cache != nil {
		var cached sliceResponse
		if err := a.cache.GetJSON(cacheKey, &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	reviews, hasNext, err := a.engine.PageReviews(ctx, q)
	if err != nil {
		writeError(c, err)
		return
	}

	views := make([]*visibility.ReviewView, 0, len(reviews))
	for _, review := range reviews {
		view, err := a.policy.RevealReview(ctx, review, caller)
		if err != nil {
			writeError(c, err)
			return
		}
		views = append(views, view)
	}

	resp := newSlice(views, len(views), q, hasNext)
	if a.cache != nil {
		if err := a.cache.SetJSON(cacheKey, resp, cache.ListTTL(string(q.Sort))); err != nil && err != cache.ErrCacheDisabled {
			a.logger.Warn("Failed to cache review list", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /reviews/:id
func (a *ReviewAPI) Get(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.get_review")
	defer span.End()

	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	review, err := db.NewReviewRepository(a.repo).GetByID(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	if review == nil {
		writeError(c, errs.NotFound("review %d not found", id))
		return
	}

	view, err := a.policy.RevealReviewStrict(ctx, review, callerOf(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type createReviewRequest struct {
	Content  string   `json:"content"`
	Rating   int16    `json:"rating"`
	Location string   `json:"location"`
	Images   []string `json:"images"`
}

// Create handles POST /reviews
func (a *ReviewAPI) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.create_review")
	defer span.End()

	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errs.InvalidRequest("invalid request body"))
		return
	}

	caller := callerOf(c)
	review, err := a.social.CreateReview(ctx, caller, social.ReviewInput{
		Content:  req.Content,
		Rating:   req.Rating,
		Location: req.Location,
		Images:   req.Images,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	view, err := a.policy.RevealReview(ctx, review, caller)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// Delete handles DELETE /reviews/:id
func (a *ReviewAPI) Delete(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.delete_review")
	defer span.End()

	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := a.social.DeleteReview(ctx, callerOf(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListComments handles GET /reviews/:id/comments
func (a *ReviewAPI) ListComments(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.list_comments")
	defer span.End()

	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	q, err := parsePageQuery(c, a.limits)
	if err != nil {
		writeError(c, err)
		return
	}

	caller := callerOf(c)

	// The owning review gates the whole thread: direct-fetch rules
	// apply before any comment is rendered.
	review, err := db.NewReviewRepository(a.repo).GetByID(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	if review == nil {
		writeError(c, errs.NotFound("review %d not found", id))
		return
	}
	if _, err := a.policy.RevealReviewStrict(ctx, review, caller); err != nil {
		writeError(c, err)
		return
	}

	comments, hasNext, err := a.engine.PageComments(ctx, id, q)
	if err != nil {
		writeError(c, err)
		return
	}

	views := make([]*visibility.CommentView, 0, len(comments))
	for _, comment := range comments {
		view, err := a.policy.RevealComment(ctx, comment, caller)
		if err != nil {
			writeError(c, err)
			return
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, newSlice(views, len(views), q, hasNext))
}

type commentRequest struct {
	Content string `json:"content"`
}

// CreateComment handles POST /reviews/:id/comments
func (a *ReviewAPI) CreateComment(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.create_comment")
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
	comment, err := a.social.CreateComment(ctx, caller, id, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}

	view, err := a.policy.RevealComment(ctx, comment, caller)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spotlog/spotlog/internal/cache"
	"github.com/spotlog/spotlog/internal/db"
	"github.com/spotlog/spotlog/internal/errs"
	"github.com/spotlog/spotlog/internal/models"
	"github.com/spotlog/spotlog/internal/ranking"
	"github.com/spotlog/spotlog/internal/social"
	"github.com/spotlog/spotlog/internal/visibility"
	"github.com/spotlog/spotlog/pkg/config"
	"github.com/spotlog/spotlog/pkg/logging"
	"github.com/spotlog/spotlog/pkg/telemetry"
)

// UserAPI provides user-related endpoints
type UserAPI struct {
	repo   *db.Repository
	engine *ranking.Engine
	policy *visibility.Policy
	social *social.Service
	cache  *cache.Cache
	limits config.PaginationConfig
	logger *zap.Logger
}

// NewUserAPI creates a new user API
func NewUserAPI(repo *db.Repository, engine *ranking.Engine, policy *visibility.Policy,
	socialSvc *social.Service, redisCache *cache.Cache, limits config.PaginationConfig) *UserAPI {
	return &UserAPI{
		repo:   repo,
		engine: engine,
		policy: policy,
		social: socialSvc,
		cache:  redisCache,
		limits: limits,
		logger: logging.GetLogger().With(zap.String("component", "api-users")),
	}
}

// paramID parses a numeric path parameter
func paramID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, errs.InvalidRequest("invalid %s", name)
	}
	return id, nil
}

// List handles GET /users
func (a *UserAPI) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.list_users")
	defer span.End()

	q, err := parsePageQuery(c, a.limits)
	if err != nil {
		writeError(c, err)
		return
	}
	caller := callerOf(c)

	// Views carry caller-relative flags, so the cache key is
	// caller-scoped.
	cacheKey := cache.HashKey("list_users",
		fmt.Sprintf("%d", q.Page), fmt.Sprintf("%d", q.Size),
		string(q.Sort), fmt.Sprintf("%t", q.Ascending), q.Keyword,
		fmt.Sprintf("%d", caller.ID))
	if a.cache != nil {
		var cached sliceResponse
		if err := a.cache.GetJSON(cacheKey, &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	users, hasNext, err := a.engine.PageUsers(ctx, q)
	if err != nil {
		writeError(c, err)
		return
	}

	views := make([]*visibility.UserView, 0, len(users))
	for _, user := range users {
		view, err := a.policy.RevealUser(ctx, user, caller)
		if err != nil {
			writeError(c, err)
			return
		}
		views = append(views, view)
	}

	resp := newSlice(views, len(views), q, hasNext)
	if a.cache != nil {
		if err := a.cache.SetJSON(cacheKey, resp, cache.ListTTL(string(q.Sort))); err != nil && err != cache.ErrCacheDisabled {
			a.logger.Warn("Failed to cache user list", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /users/:id
func (a *UserAPI) Get(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.get_user")
	defer span.End()

	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	user, err := db.NewUserRepository(a.repo).GetByID(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	if user == nil {
		writeError(c, errs.NotFound("user %d not found", id))
		return
	}

	view, err := a.policy.RevealUserStrict(ctx, user, callerOf(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type signUpRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignUp handles POST /users
func (a *UserAPI) SignUp(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.sign_up")
	defer span.End()

	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errs.InvalidRequest("invalid request body"))
		return
	}

	user, err := a.social.SignUp(ctx, req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	view, err := a.policy.RevealUser(ctx, user, visibility.Caller{ID: user.ID, Role: user.Role})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// Delete handles DELETE /users/:id (self-service soft delete)
func (a *UserAPI) Delete(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.delete_user")
	defer span.End()

	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := a.social.DeleteUser(ctx, callerOf(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListFollowers handles GET /users/:id/followers
func (a *UserAPI) ListFollowers(c *gin.Context) {
	a.listEdgeUsers(c, "api.list_followers", a.engine.PageFollowers)
}

// ListFollowing handles GET /users/:id/following
func (a *UserAPI) ListFollowing(c *gin.Context) {
	a.listEdgeUsers(c, "api.list_following", a.engine.PageFollowing)
}

func (a *UserAPI) listEdgeUsers(c *gin.Context, spanName string,
	page func(ctx context.Context, userID int64, q ranking.Query) ([]*models.User, bool, error)) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), spanName)
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

	users, hasNext, err := page(ctx, id, q)
	if err != nil {
		writeError(c, err)
		return
	}

	caller := callerOf(c)
	views := make([]*visibility.UserView, 0, len(users))
	for _, user := range users {
		view, err := a.policy.RevealUser(ctx, user, caller)
		if err != nil {
			writeError(c, err)
			return
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, newSlice(views, len(views), q, hasNext))
}

// ListScraps handles GET /users/:id/scraps. A user's bookmarks are
// private; only their owner may list them. Embedded reviews pass the
// same visibility policy as every other read path.
func (a *UserAPI) ListScraps(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "api.list_scraps")
	defer span.End()

	id, err := paramID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	caller := callerOf(c)
	if caller.ID != id {
		writeError(c, errs.AccessDenied("scraps are visible to their owner only"))
		return
	}

	q, err := parsePageQuery(c, a.limits)
	if err != nil {
		writeError(c, err)
		return
	}

	scraps, err := db.NewScrapRepository(a.repo).ListByUser(ctx, id, q.Page*q.Size, q.Size+1)
	if err != nil {
		writeError(c, err)
		return
	}
	hasNext := len(scraps) > q.Size
	if hasNext {
		scraps = scraps[:q.Size]
	}

	reviews := db.NewReviewRepository(a.repo)
	views := make([]*visibility.ScrapView, 0, len(scraps))
	for _, scrap := range scraps {
		review, err := reviews.GetByID(ctx, scrap.ReviewID)
		if err != nil {
			writeError(c, err)
			return
		}
		var reviewView *visibility.ReviewView
		if review != nil {
			if reviewView, err = a.policy.RevealReview(ctx, review, caller); err != nil {
				writeError(c, err)
				return
			}
		}
		views = append(views, &visibility.ScrapView{
			ReviewID:    scrap.ReviewID,
			Description: scrap.Description,
			CreatedAt:   scrap.CreatedAt,
			Review:      reviewView,
		})
	}

	c.JSON(http.StatusOK, newSlice(views, len(views), q, hasNext))
}

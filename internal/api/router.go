package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spotlog/spotlog/internal/cache"
	"github.com/spotlog/spotlog/internal/counters"
	"github.com/spotlog/spotlog/internal/db"
	"github.com/spotlog/spotlog/internal/ranking"
	"github.com/spotlog/spotlog/internal/social"
	"github.com/spotlog/spotlog/internal/visibility"
	"github.com/spotlog/spotlog/pkg/config"
	"github.com/spotlog/spotlog/pkg/logging"
)

// Router sets up API routes
type Router struct {
	db       *db.DB
	cache    *cache.Cache
	users    *UserAPI
	reviews  *ReviewAPI
	comments *CommentAPI
	graph    *GraphAPI
	admin    *AdminAPI
	logger   *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(database *db.DB, redisCache *cache.Cache, cfg *config.Config) *Router {
	repo := db.NewRepository(database.DB)
	counts := counters.New(database.DB)
	engine := ranking.NewEngine(database.DB)
	socialSvc := social.NewService(database)

	policy := visibility.NewPolicy(
		db.NewHeartRepository(repo),
		db.NewScrapRepository(repo),
		db.NewFollowRepository(repo),
		counts,
	)

	return &Router{
		db:       database,
		cache:    redisCache,
		users:    NewUserAPI(repo, engine, policy, socialSvc, redisCache, cfg.Pagination),
		reviews:  NewReviewAPI(repo, engine, policy, socialSvc, redisCache, cfg.Pagination),
		comments: NewCommentAPI(socialSvc, policy),
		graph:    NewGraphAPI(repo, socialSvc, policy),
		admin:    NewAdminAPI(socialSvc),
		logger:   logging.GetLogger().With(zap.String("component", "api-router")),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.Use(CallerMiddleware())

	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	// Users
	engine.GET("/users", r.users.List)
	engine.POST("/users", r.users.SignUp)
	engine.GET("/users/:id", r.users.Get)
	engine.DELETE("/users/:id", r.users.Delete)
	engine.GET("/users/:id/followers", r.users.ListFollowers)
	engine.GET("/users/:id/following", r.users.ListFollowing)
	engine.GET("/users/:id/scraps", r.users.ListScraps)
	engine.POST("/users/:id/follow", r.graph.Follow)
	engine.DELETE("/users/:id/follow", r.graph.Unfollow)

	// Reviews
	engine.GET("/reviews", r.reviews.List)
	engine.POST("/reviews", r.reviews.Create)
	engine.GET("/reviews/:id", r.reviews.Get)
	engine.DELETE("/reviews/:id", r.reviews.Delete)
	engine.GET("/reviews/:id/comments", r.reviews.ListComments)
	engine.POST("/reviews/:id/comments", r.reviews.CreateComment)
	engine.POST("/reviews/:id/heart", r.graph.Heart)
	engine.DELETE("/reviews/:id/heart", r.graph.Unheart)
	engine.POST("/reviews/:id/scrap", r.graph.Scrap)
	engine.DELETE("/reviews/:id/scrap", r.graph.Unscrap)

	// Comments
	engine.PATCH("/comments/:id", r.comments.Patch)
	engine.DELETE("/comments/:id", r.comments.Delete)

	// Moderation
	engine.POST("/admin/users/:id/block", r.admin.BlockUser)
	engine.DELETE("/admin/users/:id/block", r.admin.UnblockUser)
	engine.POST("/admin/reviews/:id/block", r.admin.BlockReview)
	engine.DELETE("/admin/reviews/:id/block", r.admin.UnblockReview)
	engine.DELETE("/admin/users/:id", r.admin.PurgeUser)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	if err := r.db.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"service": "spotlog-api",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": "spotlog-api",
	})
}

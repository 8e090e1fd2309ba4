package social

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/spotlog/spotlog/internal/db"
	"github.com/spotlog/spotlog/internal/errs"
	"github.com/spotlog/spotlog/internal/models"
	"github.com/spotlog/spotlog/internal/visibility"
	"github.com/spotlog/spotlog/pkg/logging"
)

// Service enforces the social-graph consistency rules. Every mutation
// runs inside one transaction; a domain error rolls the whole unit
// back, so no partial graph mutation is ever observable.
type Service struct {
	store  store
	logger *zap.Logger
}

// NewService creates a new social graph service
func NewService(database *db.DB) *Service {
	return newService(newGormStore(database.DB))
}

func newService(st store) *Service {
	return &Service{
		store:  st,
		logger: logging.GetLogger().With(zap.String("component", "social")),
	}
}

// SignUp creates a new user. Usernames are unique and case-sensitive;
// a duplicate fails with Conflict.
func (s *Service) SignUp(ctx context.Context, username, password string) (*models.User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if len(password) < 8 {
		return nil, errs.InvalidRequest("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Level:        1,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	err = s.store.Transact(ctx, func(st store) error {
		existing, err := st.GetUserByUsername(ctx, username)
		if err != nil {
			return err
		}
		if existing != nil {
			return errs.Conflict("username already taken: %s", username)
		}

		if err := st.CreateUser(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errs.Conflict("username already taken: %s", username)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User created", zap.Int64("user_id", user.ID), zap.String("username", username))
	return user, nil
}

// DeleteUser soft-deletes a user at their own request. Their reviews
// and comments are soft-deleted with them; their reaction edges and
// follow edges in both directions are removed outright.
func (s *Service) DeleteUser(ctx context.Context, caller visibility.Caller, userID int64) error {
	if caller.ID != userID && !caller.IsModerator() {
		return errs.AccessDenied("only the account owner may delete it")
	}

	return s.store.Transact(ctx, func(st store) error {
		user, err := st.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil || user.Deleted {
			return errs.NotFound("user %d not found", userID)
		}

		now := time.Now().UTC()

		// Edges carry no audit value once the anchor is gone.
		if err := st.DeleteHeartsByUser(ctx, userID); err != nil {
			return err
		}
		if err := st.DeleteScrapsByUser(ctx, userID); err != nil {
			return err
		}
		if err := st.DeleteFollowsOf(ctx, userID); err != nil {
			return err
		}

		// Authored content stays for audit, rendered as placeholders.
		if err := st.SoftDeleteReviewsByAuthor(ctx, userID, now); err != nil {
			return err
		}
		if err := st.SoftDeleteCommentsByAuthor(ctx, userID, now); err != nil {
			return err
		}

		return st.SoftDeleteUser(ctx, userID, now)
	})
}

func validateUsername(username string) error {
	if username == "" {
		return errs.InvalidRequest("username is required")
	}
	if len(username) > 30 {
		return errs.InvalidRequest("username must be at most 30 characters")
	}
	return nil
}

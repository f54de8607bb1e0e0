package auth

import (
	"context"
	stdErrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/surveyops/surveyops-backend/internal/roles"
	"github.com/surveyops/surveyops-backend/internal/users"
	"github.com/surveyops/surveyops-backend/pkg/auth"
	"github.com/surveyops/surveyops-backend/pkg/config"
	"github.com/surveyops/surveyops-backend/pkg/db"
	"github.com/surveyops/surveyops-backend/pkg/db/models"
	"github.com/surveyops/surveyops-backend/pkg/errors"
	"github.com/surveyops/surveyops-backend/pkg/logger"
	"github.com/surveyops/surveyops-backend/pkg/security"
)

// UserRepo is the user persistence surface the service depends on.
// *users.Repository satisfies it; tests substitute stubs.
type UserRepo interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// Service handles registration, credential checks and token issuance.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*SessionResponse, error)
	Login(ctx context.Context, req LoginRequest) (*SessionResponse, error)
	RefreshToken(ctx context.Context, userID uuid.UUID) (*RefreshResponse, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error)
}

// ServiceParams wires the service dependencies. Clock defaults to
// time.Now and exists so tests can pin token timestamps.
type ServiceParams struct {
	TxRunner        db.TxRunner
	Users           UserRepo
	UserRepoFactory func(tx *gorm.DB) UserRepo
	RoleRepoFactory func(tx *gorm.DB) roles.Repo
	JWT             config.JWTConfig
	Password        config.PasswordConfig
	Logger          *logger.Logger
	Clock           func() time.Time
}

type service struct {
	txRunner        db.TxRunner
	users           UserRepo
	userRepoFactory func(tx *gorm.DB) UserRepo
	roleRepoFactory func(tx *gorm.DB) roles.Repo
	jwt             config.JWTConfig
	password        config.PasswordConfig
	logger          *logger.Logger
	clock           func() time.Time
}

// NewService constructs the auth service.
func NewService(params ServiceParams) Service {
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{
		txRunner:        params.TxRunner,
		users:           params.Users,
		userRepoFactory: params.UserRepoFactory,
		roleRepoFactory: params.RoleRepoFactory,
		jwt:             params.JWT,
		password:        params.Password,
		logger:          params.Logger,
		clock:           clock,
	}
}

// Login verifies credentials and issues a session token. Unknown email
// and wrong password produce the same response so the endpoint cannot
// be used to probe for accounts.
func (s *service) Login(ctx context.Context, req LoginRequest) (*SessionResponse, error) {
	email := normalizeEmail(req.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeUnauthorized, "Invalid credentials")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "Failed to load user")
	}

	ok, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		return nil, errors.New(errors.CodeUnauthorized, "Invalid credentials")
	}

	now := s.clock()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil && s.logger != nil {
		s.logger.Warn(s.logger.WithUserID(ctx, user.ID.String()), "failed to record last login")
	}
	lastLogin := now
	user.LastLoginAt = &lastLogin

	token, err := s.mintToken(now, user)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info(s.logger.WithUserID(ctx, user.ID.String()), "user logged in")
	}
	return &SessionResponse{User: users.FromModel(user), Token: token}, nil
}

// RefreshToken reloads the user and mints a new token. The reload is
// what makes a role change visible on the next refresh instead of only
// after re-login.
func (s *service) RefreshToken(ctx context.Context, userID uuid.UUID) (*RefreshResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "User not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "Failed to load user")
	}

	token, err := s.mintToken(s.clock(), user)
	if err != nil {
		return nil, err
	}
	return &RefreshResponse{Token: token}, nil
}

// CurrentUser returns the profile for the authenticated user.
func (s *service) CurrentUser(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "User not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "Failed to load user")
	}
	return users.FromModel(user), nil
}

func (s *service) mintToken(now time.Time, user *models.User) (string, error) {
	token, err := auth.MintAccessToken(s.jwt, now, auth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		RoleID: user.RoleID,
	})
	if err != nil {
		return "", errors.Wrap(errors.CodeInternal, err, "Failed to issue token")
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

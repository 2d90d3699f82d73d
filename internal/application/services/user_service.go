package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/DavLiendoProgramming/blog-api/internal/application/command"
	"github.com/DavLiendoProgramming/blog-api/internal/application/interfaces"
	"github.com/DavLiendoProgramming/blog-api/internal/application/mapper"
	"github.com/DavLiendoProgramming/blog-api/internal/application/query"
	"github.com/DavLiendoProgramming/blog-api/internal/domain/entities"
	"github.com/DavLiendoProgramming/blog-api/internal/domain/repositories"
	messaging "github.com/DavLiendoProgramming/blog-api/libs/go/messaging/nats"
	"golang.org/x/crypto/bcrypt"
)

// ErrAccountGone is returned for a valid token whose user was deleted.
var ErrAccountGone = fmt.Errorf("%w: account no longer exists", entities.ErrInvalidToken)

type UserService struct {
	userRepo     repositories.UserRepository
	idempotency  *IdempotencyStore
	tokens       interfaces.TokenService
	profileCache interfaces.ProfileCache
	mailer       interfaces.Mailer
	events       repositories.EventPublisher
	profileTTL   time.Duration
	logger       *slog.Logger
}

func NewUserService(
	userRepo repositories.UserRepository,
	idempotency *IdempotencyStore,
	tokens interfaces.TokenService,
	profileCache interfaces.ProfileCache,
	mailer interfaces.Mailer,
	events repositories.EventPublisher,
	profileTTL time.Duration,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		idempotency:  idempotency,
		tokens:       tokens,
		profileCache: profileCache,
		mailer:       mailer,
		events:       events,
		profileTTL:   profileTTL,
		logger:       logger,
	}
}

var (
	_ interfaces.AuthService = (*UserService)(nil)
	_ interfaces.UserService = (*UserService)(nil)
)

func (s *UserService) CreateUser(ctx context.Context, createCommand *command.CreateUserCommand) (*command.CreateUserCommandResult, error) {
	idempotencyKey := ""
	if createCommand.IdempotencyKey != "" {
		idempotencyKey = "register:" + createCommand.IdempotencyKey
	}

	replayed, err := replayIdempotent[command.CreateUserCommandResult](ctx, s.idempotency, idempotencyKey, createCommand)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		replayed.Replayed = true
		return replayed, nil
	}

	newUser := entities.NewUser(createCommand.Name, createCommand.Email, createCommand.Password)
	validatedUser, err := entities.NewValidatedUser(newUser)
	if err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, newUser.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, entities.ErrDuplicateEmail
	}

	createdUser, err := s.userRepo.Create(ctx, validatedUser)
	if err != nil {
		return nil, err
	}

	result := command.CreateUserCommandResult{
		Result: mapper.NewUserResultFromEntity(createdUser),
	}
	rememberIdempotent(ctx, s.idempotency, s.logger, idempotencyKey, createCommand, result, http.StatusCreated)

	if err := s.mailer.SendWelcome(ctx, createdUser.Name, createdUser.Email); err != nil {
		s.logger.WarnContext(ctx, "welcome email failed", "user_id", createdUser.Id, "error", err)
	}
	s.publish(ctx, messaging.SubjectUserRegistered, result.Result)

	return &result, nil
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// burnPasswordCheck spends the same bcrypt work as a real comparison so an
// unknown email is not distinguishable by response time.
func burnPasswordCheck(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

func (s *UserService) LoginUser(ctx context.Context, loginCommand *command.LoginUserCommand) (*command.LoginUserCommandResult, error) {
	if err := entities.ValidateCredentials(loginCommand.Email, loginCommand.Password); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, loginCommand.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		burnPasswordCheck(loginCommand.Password)
		return nil, entities.ErrInvalidCredentials
	}

	if err := user.CheckPassword(loginCommand.Password); err != nil {
		return nil, entities.ErrInvalidCredentials
	}

	issued, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &command.LoginUserCommandResult{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		User:      mapper.NewUserResultFromEntity(user),
	}, nil
}

func (s *UserService) Logout(ctx context.Context, rawToken string) error {
	return s.tokens.Invalidate(ctx, rawToken)
}

func (s *UserService) Refresh(ctx context.Context, rawToken string) (*command.RefreshTokenCommandResult, error) {
	issued, err := s.tokens.Refresh(ctx, rawToken)
	if err != nil {
		return nil, err
	}
	return &command.RefreshTokenCommandResult{Token: issued.Token, ExpiresAt: issued.ExpiresAt}, nil
}

func (s *UserService) GetProfile(ctx context.Context, identity entities.Identity) (*query.UserQueryResult, error) {
	userID := identity.UserID.String()

	cached, err := s.profileCache.GetProfile(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "profile cache read failed", "user_id", userID, "error", err)
	}
	if cached != nil {
		return &query.UserQueryResult{Result: cached}, nil
	}

	user, err := s.userRepo.FindById(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrAccountGone
	}

	profile := mapper.NewUserResultFromEntity(user)
	if err := s.profileCache.SetProfile(ctx, userID, profile, s.profileTTL); err != nil {
		s.logger.WarnContext(ctx, "failed to cache user profile", "user_id", userID, "error", err)
	}

	return &query.UserQueryResult{Result: profile}, nil
}

func (s *UserService) ListUsers(ctx context.Context, identity entities.Identity, page int) (*query.UserQueryListResult, error) {
	users, err := s.userRepo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return &query.UserQueryListResult{Result: mapper.NewUserPageResult(users)}, nil
}

// DeleteSelf removes the caller's account and posts, then revokes the token
// the request was made with.
func (s *UserService) DeleteSelf(ctx context.Context, identity entities.Identity, rawToken string) (*query.UserQueryResult, error) {
	user, err := s.userRepo.FindById(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrAccountGone
	}

	if err := s.userRepo.Delete(ctx, identity.UserID); err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return nil, ErrAccountGone
		}
		return nil, err
	}

	if err := s.tokens.Invalidate(ctx, rawToken); err != nil {
		s.logger.WarnContext(ctx, "failed to revoke token of deleted user", "user_id", user.Id, "error", err)
	}
	if err := s.profileCache.DeleteProfile(ctx, identity.UserID.String()); err != nil {
		s.logger.WarnContext(ctx, "failed to evict user profile", "user_id", user.Id, "error", err)
	}

	result := mapper.NewUserResultFromEntity(user)
	s.publish(ctx, messaging.SubjectUserDeleted, result)
	return &query.UserQueryResult{Result: result}, nil
}

func (s *UserService) publish(ctx context.Context, subject string, payload any) {
	publish(ctx, s.events, s.logger, subject, payload)
}

func publish(ctx context.Context, events repositories.EventPublisher, logger *slog.Logger, subject string, payload any) {
	if err := events.Publish(ctx, subject, payload); err != nil {
		logger.WarnContext(ctx, "failed to publish event", "subject", subject, "error", err)
	}
}

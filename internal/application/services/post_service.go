package services

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/DavLiendoProgramming/blog-api/internal/application/command"
	"github.com/DavLiendoProgramming/blog-api/internal/application/interfaces"
	"github.com/DavLiendoProgramming/blog-api/internal/application/mapper"
	"github.com/DavLiendoProgramming/blog-api/internal/application/query"
	"github.com/DavLiendoProgramming/blog-api/internal/domain/entities"
	"github.com/DavLiendoProgramming/blog-api/internal/domain/repositories"
	messaging "github.com/DavLiendoProgramming/blog-api/libs/go/messaging/nats"
	"github.com/google/uuid"
)

// publishedAtLayouts are tried in order when parsing published_at.
var publishedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// PostService gates every mutation on the acting identity owning the post.
// A live post owned by someone else yields ErrForbidden; unknown or deleted
// posts yield ErrNotFound.
type PostService struct {
	postRepo    repositories.PostRepository
	userRepo    repositories.UserRepository
	idempotency *IdempotencyStore
	events      repositories.EventPublisher
	logger      *slog.Logger
}

func NewPostService(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	idempotency *IdempotencyStore,
	events repositories.EventPublisher,
	logger *slog.Logger,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		userRepo:    userRepo,
		idempotency: idempotency,
		events:      events,
		logger:      logger,
	}
}

var _ interfaces.PostService = (*PostService)(nil)

func (s *PostService) CreatePost(ctx context.Context, identity entities.Identity, createCommand *command.CreatePostCommand) (*command.CreatePostCommandResult, error) {
	// Keys are scoped per user so one caller cannot replay another's response.
	idempotencyKey := ""
	if createCommand.IdempotencyKey != "" {
		idempotencyKey = "post:" + identity.UserID.String() + ":" + createCommand.IdempotencyKey
	}

	replayed, err := replayIdempotent[command.CreatePostCommandResult](ctx, s.idempotency, idempotencyKey, createCommand)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		replayed.Replayed = true
		return replayed, nil
	}

	creator, err := s.userRepo.FindById(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, ErrAccountGone
	}

	publishedAt, verr := parsePublishedAt(createCommand.PublishedAt)
	post, err := entities.NewPost(creator.Id, createCommand.Title, createCommand.Body, publishedAt)
	if err := mergeValidation(verr, err); err != nil {
		return nil, err
	}

	createdPost, err := s.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	result := command.CreatePostCommandResult{Result: mapper.NewPostResultFromEntity(createdPost)}
	rememberIdempotent(ctx, s.idempotency, s.logger, idempotencyKey, createCommand, result, http.StatusOK)
	publish(ctx, s.events, s.logger, messaging.SubjectPostCreated, result.Result)

	return &result, nil
}

func (s *PostService) ListPosts(ctx context.Context, page int) (*query.PostQueryListResult, error) {
	posts, err := s.postRepo.ListAll(ctx, page)
	if err != nil {
		return nil, err
	}
	return &query.PostQueryListResult{Result: mapper.NewPostPageResult(posts)}, nil
}

func (s *PostService) FindBySlug(ctx context.Context, slug string) (*query.PostQueryResult, error) {
	post, err := s.postRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, entities.ErrNotFound
	}
	return &query.PostQueryResult{Result: mapper.NewPostResultFromEntity(post)}, nil
}

func (s *PostService) ListOwned(ctx context.Context, identity entities.Identity, page int) (*query.PostQueryListResult, error) {
	posts, err := s.postRepo.ListByCreator(ctx, identity.UserID, page)
	if err != nil {
		return nil, err
	}
	return &query.PostQueryListResult{Result: mapper.NewPostPageResult(posts)}, nil
}

func (s *PostService) UpdateOwned(ctx context.Context, identity entities.Identity, postId string, updateCommand *command.UpdatePostCommand) (*query.PostQueryResult, error) {
	post, err := s.loadOwned(ctx, identity, postId)
	if err != nil {
		return nil, err
	}

	publishedAt, verr := parsePublishedAt(updateCommand.PublishedAt)
	if err := mergeValidation(verr, post.Revise(updateCommand.Title, updateCommand.Body, publishedAt)); err != nil {
		return nil, err
	}

	updatedPost, err := s.postRepo.Update(ctx, post)
	if err != nil {
		return nil, err
	}

	result := mapper.NewPostResultFromEntity(updatedPost)
	publish(ctx, s.events, s.logger, messaging.SubjectPostUpdated, result)
	return &query.PostQueryResult{Result: result}, nil
}

func (s *PostService) DeleteOwned(ctx context.Context, identity entities.Identity, postId string) error {
	post, err := s.loadOwned(ctx, identity, postId)
	if err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, post.Id); err != nil {
		return err
	}

	publish(ctx, s.events, s.logger, messaging.SubjectPostDeleted, mapper.NewPostResultFromEntity(post))
	return nil
}

func (s *PostService) loadOwned(ctx context.Context, identity entities.Identity, postId string) (*entities.Post, error) {
	id, err := uuid.Parse(postId)
	if err != nil {
		return nil, entities.ErrNotFound
	}

	post, err := s.postRepo.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, entities.ErrNotFound
	}
	if !identity.Owns(post) {
		return nil, entities.ErrForbidden
	}
	return post, nil
}

// parsePublishedAt accepts an empty value (reported later as required) and
// returns a field error for anything it cannot parse.
func parsePublishedAt(raw string) (time.Time, *entities.ValidationError) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range publishedAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	verr := entities.NewValidationError()
	verr.Add("published_at", "The published at is not a valid date.")
	return time.Time{}, verr
}

// mergeValidation folds the field errors of err into verr. Errors that are
// not validation errors are returned unchanged.
func mergeValidation(verr *entities.ValidationError, err error) error {
	if err == nil {
		if verr == nil {
			return nil
		}
		return verr.OrNil()
	}

	var fieldErr *entities.ValidationError
	if !errors.As(err, &fieldErr) {
		return err
	}
	if verr == nil {
		return fieldErr
	}
	for field, msg := range fieldErr.Fields {
		verr.Add(field, msg)
	}
	return verr
}

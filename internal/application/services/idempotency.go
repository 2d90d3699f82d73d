package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/DavLiendoProgramming/blog-api/internal/domain/entities"
	"github.com/DavLiendoProgramming/blog-api/internal/domain/repositories"
)

// IdempotencyStore keeps replayable responses keyed by Idempotency-Key.
// Requests are fingerprinted with a server secret so a stored row cannot be
// used to guess the body it was made from.
type IdempotencyStore struct {
	repo   repositories.IdempotencyRepository
	secret []byte
}

func NewIdempotencyStore(repo repositories.IdempotencyRepository, secret []byte) *IdempotencyStore {
	return &IdempotencyStore{repo: repo, secret: secret}
}

func (s *IdempotencyStore) fingerprint(request any) string {
	requestJSON, _ := json.Marshal(request)
	return entities.HashRequest(s.secret, string(requestJSON))
}

// replayIdempotent returns the stored result for key, if any. A key reused
// with a different request body is rejected.
func replayIdempotent[T any](ctx context.Context, store *IdempotencyStore, key string, request any) (*T, error) {
	if key == "" || store == nil {
		return nil, nil
	}

	existingRecord, err := store.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if existingRecord == nil {
		return nil, nil
	}

	if !existingRecord.Matches(store.fingerprint(request)) {
		return nil, entities.ErrIdempotencyConflict
	}

	var result T
	if err := json.Unmarshal([]byte(existingRecord.Response), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// rememberIdempotent stores result under key. Failures are logged only: the
// request already succeeded.
func rememberIdempotent(ctx context.Context, store *IdempotencyStore, logger *slog.Logger, key string, request, result any, statusCode int) {
	if key == "" || store == nil {
		return
	}

	responseJSON, err := json.Marshal(result)
	if err != nil {
		logger.ErrorContext(ctx, "encode idempotent response", "error", err)
		return
	}

	record := entities.NewIdempotencyRecord(key, store.fingerprint(request))
	record.SetResponse(string(responseJSON), statusCode)
	if _, err := store.repo.Create(ctx, record); err != nil {
		logger.WarnContext(ctx, "failed to store idempotency record", "key", key, "error", err)
	}
}

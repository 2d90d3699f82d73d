package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/DavLiendoProgramming/blog-api/internal/domain/entities"
	"github.com/DavLiendoProgramming/blog-api/internal/domain/repositories"
	"github.com/DavLiendoProgramming/blog-api/internal/infrastructure"
	"github.com/DavLiendoProgramming/blog-api/internal/infrastructure/db/postgres"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

type recordedEvent struct {
	subject string
	payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{subject: subject, payload: payload})
	return nil
}

func (p *recordingPublisher) subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.subject)
	}
	return out
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *recordingMailer) SendWelcome(_ context.Context, _, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, email)
	return nil
}

var idempotencySecret = []byte("service-test-idempotency-secret")

type fixture struct {
	users       *UserService
	posts       *PostService
	guard       *SessionGuard
	events      *recordingPublisher
	mailer      *recordingMailer
	idempotency repositories.IdempotencyRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := postgres.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared", logger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	userRepo := postgres.NewUserRepository(db)
	idempotencyRepo := postgres.NewIdempotencyRepository(db)
	idempotency := NewIdempotencyStore(idempotencyRepo, idempotencySecret)
	tokens := infrastructure.NewJWTService([]byte("service-test-secret-0123456789ab"), postgres.NewRevokedTokenRepository(db))
	events := &recordingPublisher{}
	mailer := &recordingMailer{}

	return &fixture{
		users:       NewUserService(userRepo, idempotency, tokens, infrastructure.NewRedisService(nil), mailer, events, 0, log),
		posts:       NewPostService(postgres.NewPostRepository(db), userRepo, idempotency, events, log),
		guard:       NewSessionGuard(tokens, userRepo),
		events:      events,
		mailer:      mailer,
		idempotency: idempotencyRepo,
	}
}

// login registers a user and returns its identity and bearer token.
func (f *fixture) login(t *testing.T, name, email string) (entities.Identity, string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.users.CreateUser(ctx, newRegistration(name, email))
	require.NoError(t, err)

	result, err := f.users.LoginUser(ctx, newLogin(email, "secret1"))
	require.NoError(t, err)

	identity, err := f.guard.Resolve(ctx, result.Token)
	require.NoError(t, err)
	return identity, result.Token
}

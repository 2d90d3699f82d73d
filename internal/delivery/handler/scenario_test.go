package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DavLiendoProgramming/blog-api/internal/application/services"
	"github.com/DavLiendoProgramming/blog-api/internal/infrastructure"
	"github.com/DavLiendoProgramming/blog-api/internal/infrastructure/db/postgres"
	messaging "github.com/DavLiendoProgramming/blog-api/libs/go/messaging/nats"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

type apiResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Token   string            `json:"token"`
	User    map[string]any    `json:"user"`
	Users   map[string]any    `json:"users"`
	Posts   map[string]any    `json:"posts"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

type testAPI struct {
	t *testing.T
	e *echo.Echo
}

func newTestAPI(t *testing.T, limiter KeyedLimiter) *testAPI {
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
	idempotency := services.NewIdempotencyStore(postgres.NewIdempotencyRepository(db), []byte("handler-test-idempotency-secret"))
	tokens := infrastructure.NewJWTService([]byte("handler-test-secret-0123456789ab"), postgres.NewRevokedTokenRepository(db))
	events := messaging.NewPublisher(nil)
	mailer := infrastructure.NewSendGridMailer("", "no-reply@example.com", log)

	userService := services.NewUserService(userRepo, idempotency, tokens, infrastructure.NewRedisService(nil), mailer, events, 0, log)
	postService := services.NewPostService(postgres.NewPostRepository(db), userRepo, idempotency, events, log)

	if limiter == nil {
		limiter = infrastructure.NewRateLimiter(1000, 1000)
	}
	h := NewHandler(userService, userService, postService, services.NewSessionGuard(tokens, userRepo), limiter)
	return &testAPI{t: t, e: NewServer(h, ServerOptions{}, log)}
}

func (a *testAPI) do(method, path, token, body string, headers ...string) (int, apiResponse) {
	a.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	var resp apiResponse
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec.Code, resp
}

func (a *testAPI) register(name, email string) {
	a.t.Helper()
	status, resp := a.do(http.MethodPost, "/register", "", `{"name":"`+name+`","email":"`+email+`","password":"secret1"}`)
	require.Equal(a.t, http.StatusCreated, status, resp.Message)
}

func (a *testAPI) login(email string) string {
	a.t.Helper()
	status, resp := a.do(http.MethodPost, "/login", "", `{"email":"`+email+`","password":"secret1"}`)
	require.Equal(a.t, http.StatusOK, status, resp.Message)
	require.NotEmpty(a.t, resp.Token)
	return resp.Token
}

func (a *testAPI) createPost(token, title string) map[string]any {
	a.t.Helper()
	status, resp := a.do(http.MethodPost, "/create", token, `{"title":"`+title+`","body":"text","published_at":"2024-01-01 10:00:00"}`)
	require.Equal(a.t, http.StatusOK, status, resp.Message)
	var post map[string]any
	require.NoError(a.t, json.Unmarshal(resp.Data, &post))
	return post
}

func TestScenario_PostLifecycle(t *testing.T) {
	api := newTestAPI(t, nil)
	api.register("Ada", "ada@example.com")
	token := api.login("ada@example.com")

	post := api.createPost(token, "Hello World!")
	assert.Equal(t, "hello-world", post["slug"])
	id := post["id"].(string)

	status, resp := api.do(http.MethodGet, "/posts/hello-world", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, resp.Success)

	status, resp = api.do(http.MethodPut, "/user/posts/"+id, token, `{"title":"Bye World","body":"new","published_at":"2024-02-01"}`)
	require.Equal(t, http.StatusOK, status, resp.Message)

	status, _ = api.do(http.MethodGet, "/posts/bye-world", "", "")
	assert.Equal(t, http.StatusOK, status)
	status, resp = api.do(http.MethodGet, "/posts/hello-world", "", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, resp.Success)

	status, resp = api.do(http.MethodGet, "/posts", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, resp.Posts["total"])

	status, _ = api.do(http.MethodDelete, "/user/posts/"+id, token, "")
	assert.Equal(t, http.StatusOK, status)
	status, _ = api.do(http.MethodGet, "/posts/bye-world", "", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestScenario_OwnershipEnforced(t *testing.T) {
	api := newTestAPI(t, nil)
	api.register("Ada", "ada@example.com")
	api.register("Bob", "bob@example.com")
	ada := api.login("ada@example.com")
	bob := api.login("bob@example.com")

	id := api.createPost(ada, "Ada's post")["id"].(string)

	status, _ := api.do(http.MethodPut, "/user/posts/"+id, bob, `{"title":"Hijacked","body":"x","published_at":"2024-01-01"}`)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = api.do(http.MethodDelete, "/user/posts/"+id, bob, "")
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = api.do(http.MethodDelete, "/user/posts/"+uuid.NewString(), ada, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, resp := api.do(http.MethodGet, "/user/posts", bob, "")
	assert.Equal(t, http.StatusOK, status)
	var page map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	assert.EqualValues(t, 0, page["total"])
}

func TestScenario_LogoutRevokesToken(t *testing.T) {
	api := newTestAPI(t, nil)
	api.register("Ada", "ada@example.com")
	token := api.login("ada@example.com")

	status, resp := api.do(http.MethodGet, "/user", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ada@example.com", resp.User["email"])

	status, resp = api.do(http.MethodPost, "/logout", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User has been logged out", resp.Message)

	status, resp = api.do(http.MethodGet, "/user", token, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, codeTokenInvalid, resp.Code)
}

func TestScenario_RefreshAndDeleteAccount(t *testing.T) {
	api := newTestAPI(t, nil)
	api.register("Ada", "ada@example.com")
	token := api.login("ada@example.com")
	api.createPost(token, "Hello World")

	status, resp := api.do(http.MethodPost, "/refresh", token, "")
	require.Equal(t, http.StatusOK, status)
	fresh := resp.Token

	status, _ = api.do(http.MethodGet, "/user", token, "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, resp = api.do(http.MethodDelete, "/user", fresh, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ada@example.com", resp.User["email"])

	status, _ = api.do(http.MethodGet, "/user", fresh, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = api.do(http.MethodGet, "/posts/hello-world", "", "")
	assert.Equal(t, http.StatusNotFound, status)

	// The email can be registered again.
	api.register("Ada", "ada@example.com")
}

func TestScenario_AuthErrors(t *testing.T) {
	api := newTestAPI(t, nil)

	status, resp := api.do(http.MethodGet, "/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, codeTokenInvalid, resp.Code)

	status, _ = api.do(http.MethodGet, "/users", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	api.register("Ada", "ada@example.com")
	status, resp = api.do(http.MethodPost, "/register", "", `{"name":"Ada","email":"ada@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, resp.Errors, "email")

	status, _ = api.do(http.MethodPost, "/login", "", `{"email":"ada@example.com","password":"wrong-one"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, resp = api.do(http.MethodPost, "/register", "", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, resp.Success)
}

func TestScenario_RegisterIdempotencyKey(t *testing.T) {
	api := newTestAPI(t, nil)
	body := `{"name":"Ada","email":"ada@example.com","password":"secret1"}`

	status, first := api.do(http.MethodPost, "/register", "", body, headerIdempotencyKey, "k1")
	require.Equal(t, http.StatusCreated, status)
	status, second := api.do(http.MethodPost, "/register", "", body, headerIdempotencyKey, "k1")
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, first.User["id"], second.User["id"])

	status, _ = api.do(http.MethodPost, "/register", "", `{"name":"Bob","email":"bob@example.com","password":"secret1"}`, headerIdempotencyKey, "k1")
	assert.Equal(t, http.StatusConflict, status)
}

func TestScenario_LoginRateLimited(t *testing.T) {
	api := newTestAPI(t, infrastructure.NewRateLimiter(0.001, 2))
	body := `{"email":"ada@example.com","password":"secret1"}`

	for i := 0; i < 2; i++ {
		status, _ := api.do(http.MethodPost, "/login", "", body)
		assert.Equal(t, http.StatusBadRequest, status)
	}
	status, resp := api.do(http.MethodPost, "/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.False(t, resp.Success)
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t, nil)
	status, resp := api.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", resp.Message)
}

func TestScenario_DeletedAccountLocksOutOtherSessions(t *testing.T) {
	api := newTestAPI(t, nil)
	api.register("Ada", "ada@example.com")
	first := api.login("ada@example.com")
	second := api.login("ada@example.com")

	status, _ := api.do(http.MethodDelete, "/user", first, "")
	require.Equal(t, http.StatusOK, status)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/users"},
		{http.MethodGet, "/user/posts"},
		{http.MethodPost, "/logout"},
		{http.MethodPost, "/refresh"},
	} {
		status, resp := api.do(route.method, route.path, second, "")
		assert.Equal(t, http.StatusUnauthorized, status, route.path)
		assert.Equal(t, codeTokenInvalid, resp.Code, route.path)
	}
}

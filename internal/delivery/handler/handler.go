package handler

import (
	"net/http"
	"strconv"

	"github.com/DavLiendoProgramming/blog-api/internal/application/interfaces"
	"github.com/labstack/echo/v4"
)

const headerIdempotencyKey = "Idempotency-Key"

type Handler struct {
	auth    interfaces.AuthService
	users   interfaces.UserService
	posts   interfaces.PostService
	guard   SessionResolver
	limiter KeyedLimiter
}

func NewHandler(
	auth interfaces.AuthService,
	users interfaces.UserService,
	posts interfaces.PostService,
	guard SessionResolver,
	limiter KeyedLimiter,
) *Handler {
	return &Handler{auth: auth, users: users, posts: posts, guard: guard, limiter: limiter}
}

// Register mounts every route on e.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)

	throttled := RateLimit(h.limiter)
	e.POST("/login", h.Login, throttled)
	e.POST("/register", h.RegisterUser, throttled)
	e.GET("/posts", h.ListPosts)
	e.GET("/posts/:slug", h.GetPostBySlug)

	protected := e.Group("", RequireSession(h.guard))
	protected.POST("/logout", h.Logout)
	protected.POST("/refresh", h.Refresh)
	protected.GET("/user", h.GetUser)
	protected.GET("/users", h.ListUsers)
	protected.DELETE("/user", h.DeleteUser)

	protected.POST("/create", h.CreatePost)
	protected.GET("/user/posts", h.ListUserPosts)
	protected.PUT("/user/posts/:id", h.UpdatePost)
	protected.DELETE("/user/posts/:id", h.DeletePost)
}

func (h *Handler) Health(c echo.Context) error {
	return sendJSONResponse(c, http.StatusOK, Response{Message: "ok"})
}

// pageParam reads ?page=N; anything unparsable means the first page.
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func bindBody(c echo.Context, dst interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed request body.")
	}
	return nil
}

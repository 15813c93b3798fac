package api

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/flow"
	"github.com/taskdeck/taskdeck/identity"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/session"
	"github.com/taskdeck/taskdeck/todo"
)

type Handler struct {
	registration *flow.RegistrationManager
	login        *flow.LoginManager
	recovery     *flow.RecoveryManager
	todos        *todo.Manager
	sessions     *session.JWTStrategy
	logs         domain.LogStorage
	frontendURL  string
}

func NewHandler(reg *flow.RegistrationManager, login *flow.LoginManager, rec *flow.RecoveryManager, todos *todo.Manager, sessions *session.JWTStrategy, logs domain.LogStorage, frontendURL string) *Handler {
	return &Handler{
		registration: reg,
		login:        login,
		recovery:     rec,
		todos:        todos,
		sessions:     sessions,
		logs:         logs,
		frontendURL:  frontendURL,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	auth := e.Group("/api/auth")
	auth.POST("/signup", h.HandleSignup)
	auth.POST("/login", h.HandleLogin)
	auth.POST("/forgot-password", h.HandleForgotPassword)
	auth.POST("/reset-password/:token", h.HandleResetPassword)

	todos := e.Group("/api/todos", h.AuthMiddleware)
	todos.GET("", h.HandleListTodos)
	todos.POST("", h.HandleCreateTodo)
	todos.PUT("/:id", h.HandleUpdateTodo)
	todos.DELETE("/:id", h.HandleDeleteTodo)

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "API is running...")
	})
}

func (h *Handler) HandleSignup(c echo.Context) error {
	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil || body.Username == "" || body.Email == "" || body.Password == "" {
		return h.Error(c, http.StatusBadRequest, "All fields are required", nil)
	}

	_, err := h.registration.Register(c.Request().Context(), body.Username, body.Email, body.Password)
	if dup, ok := domain.IsDuplicateKey(err); ok {
		return h.Error(c, http.StatusConflict, fmt.Sprintf("%s already exists", dup.Field), nil)
	}
	if err != nil {
		return h.Error(c, http.StatusInternalServerError, "Server error during signup", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "User created successfully"})
}

func (h *Handler) HandleLogin(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid request body", nil)
	}

	user, err := h.login.Authenticate(c.Request().Context(), body.Email, body.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return h.Error(c, http.StatusUnauthorized, "Invalid email or password", nil)
	}
	if err != nil {
		return h.Error(c, http.StatusInternalServerError, "Server error", err)
	}

	token, err := h.sessions.Issue(user.ID)
	if err != nil {
		return h.Error(c, http.StatusInternalServerError, "Server error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"token":    token,
	})
}

// HandleForgotPassword responds with the same body whether or not the email
// is registered so accounts cannot be enumerated. The reset link is only
// logged; there is no mail delivery.
func (h *Handler) HandleForgotPassword(c echo.Context) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&body); err != nil || body.Email == "" {
		return h.Error(c, http.StatusBadRequest, "Email is required", nil)
	}

	token, err := h.recovery.Initiate(c.Request().Context(), body.Email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// Fall through to the uniform response.
	case err != nil:
		return h.Error(c, http.StatusInternalServerError, "Server error on forgot password", err)
	default:
		resetURL := fmt.Sprintf("%s/reset-password/%s", h.frontendURL, token)
		logger.Log.Info("password reset link generated", zap.String("url", resetURL))
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "If the email is registered, a reset link will be sent"})
}

func (h *Handler) HandleResetPassword(c echo.Context) error {
	token := c.Param("token")

	var body struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil || len(body.Password) < 6 {
		return h.Error(c, http.StatusBadRequest, "Password must be at least 6 characters", nil)
	}

	err := h.recovery.Reset(c.Request().Context(), token, body.Password)
	if errors.Is(err, domain.ErrInvalidResetToken) {
		return h.Error(c, http.StatusBadRequest, "Invalid or expired reset token", nil)
	}
	if err != nil {
		return h.Error(c, http.StatusInternalServerError, "Server error while resetting password", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Password has been reset successfully"})
}

func (h *Handler) HandleListTodos(c echo.Context) error {
	todos, err := h.todos.List(c.Request().Context(), UserID(c))
	if err != nil {
		return h.Error(c, http.StatusInternalServerError, "Server error while fetching todos", err)
	}
	if todos == nil {
		todos = []identity.Todo{}
	}
	return c.JSON(http.StatusOK, todos)
}

func (h *Handler) HandleCreateTodo(c echo.Context) error {
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.Bind(&body); err != nil || body.Title == "" {
		return h.Error(c, http.StatusBadRequest, "Title is required", nil)
	}

	created, err := h.todos.Create(c.Request().Context(), UserID(c), body.Title, body.Description)
	if err != nil {
		return h.Error(c, http.StatusInternalServerError, "Server error while creating todo", err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) HandleUpdateTodo(c echo.Context) error {
	var body struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Completed   *bool   `json:"completed"`
	}
	if err := c.Bind(&body); err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid request body", nil)
	}

	updated, err := h.todos.Update(c.Request().Context(), UserID(c), c.Param("id"), todo.Patch{
		Title:       body.Title,
		Description: body.Description,
		Completed:   body.Completed,
	})
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return h.Error(c, http.StatusNotFound, "Todo not found", nil)
	case errors.Is(err, domain.ErrNotOwner):
		return h.Error(c, http.StatusUnauthorized, "Not authorized", nil)
	case err != nil:
		return h.Error(c, http.StatusInternalServerError, "Server error while updating todo", err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) HandleDeleteTodo(c echo.Context) error {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return h.Error(c, http.StatusBadRequest, "Invalid todo ID", nil)
	}

	err := h.todos.Delete(c.Request().Context(), UserID(c), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return h.Error(c, http.StatusNotFound, "Todo not found", nil)
	case errors.Is(err, domain.ErrNotOwner):
		return h.Error(c, http.StatusUnauthorized, "Not authorized", nil)
	case err != nil:
		return h.Error(c, http.StatusInternalServerError, "Server error while deleting todo", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Todo removed"})
}

// Error writes the client-facing message and keeps the underlying cause out
// of the response. Internal failures are additionally recorded in the log
// store, best effort: a failure while saving the log is itself only logged.
func (h *Handler) Error(c echo.Context, code int, message string, err error) error {
	if err != nil {
		logger.Log.Error("request failed",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)
		if code >= http.StatusInternalServerError && h.logs != nil {
			entry := &identity.ErrorLog{
				ID:      uuid.NewString(),
				Message: err.Error(),
				Stack:   string(debug.Stack()),
				Date:    time.Now(),
			}
			if lerr := h.logs.CreateLog(c.Request().Context(), entry); lerr != nil {
				logger.Log.Warn("failed to save error log", zap.Error(lerr))
			}
		}
	}
	return c.JSON(code, echo.Map{"message": message})
}

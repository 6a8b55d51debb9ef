package user

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bhwcare/ncdtrack/internal/platform/session"
)

type Handler struct {
	svc      *Service
	sessions *session.Manager
}

func NewHandler(svc *Service, sessions *session.Manager) *Handler {
	return &Handler{svc: svc, sessions: sessions}
}

// RegisterPublic mounts the routes reachable without a session cookie. Extra
// middleware, such as a credential-guessing rate limit, applies to the login
// submission only.
func (h *Handler) RegisterPublic(e *echo.Echo, loginMW ...echo.MiddlewareFunc) {
	e.GET("/login", h.LoginForm)
	e.POST("/login", h.Login, loginMW...)
	e.GET("/logout", h.Logout)
}

// RegisterAPI mounts the session-gated routes. The admin group must already
// carry the role check.
func (h *Handler) RegisterAPI(api, admin *echo.Group) {
	api.GET("/me", h.Me)
	admin.GET("/users", h.ListUsers)
	admin.POST("/add_user", h.AddUser)
	admin.POST("/delete_user", h.DeleteUser)
	admin.POST("/reset_password", h.ResetPassword)
}

func (h *Handler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", map[string]string{
		"Next": c.QueryParam("next"),
	})
}

func (h *Handler) Login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	next := c.FormValue("next")
	if next == "" {
		next = "/"
	}

	u, err := h.svc.Authenticate(c.Request().Context(), username, password)
	if errors.Is(err, ErrInvalidCredentials) {
		return c.Render(http.StatusOK, "login.html", map[string]string{
			"Error": "Invalid username or password.",
			"Next":  next,
		})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	name := u.Name
	if name == "" {
		name = "BHW"
	}
	cookie, err := h.sessions.Issue(session.Identity{
		Username: u.Username,
		Role:     u.Role,
		Name:     name,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	c.SetCookie(cookie)
	return c.Redirect(http.StatusFound, next)
}

func (h *Handler) Logout(c echo.Context) error {
	c.SetCookie(session.Expired())
	return c.Redirect(http.StatusFound, "/login")
}

// Me returns the identity carried by the session cookie so the client can
// show who is logged in without another collection read.
func (h *Handler) Me(c echo.Context) error {
	id := session.FromContext(c.Request().Context())
	return c.JSON(http.StatusOK, id)
}

func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	out := make([]map[string]string, 0, len(users))
	for _, u := range users {
		out = append(out, map[string]string{
			"name":     u.Name,
			"username": u.Username,
			"role":     u.Role,
		})
	}
	return c.JSON(http.StatusOK, out)
}

type addUserRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) AddUser(c echo.Context) error {
	var req addUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.svc.Add(c.Request().Context(), req.Name, req.Username, req.Password)
	if errors.Is(err, ErrDuplicateUsername) {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "error",
			"message": "Username already exists!",
		})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

type usernameRequest struct {
	Username string `json:"username"`
}

func (h *Handler) DeleteUser(c echo.Context) error {
	var req usernameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.svc.Delete(c.Request().Context(), req.Username)
	if errors.Is(err, ErrMasterAdmin) {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "error",
			"message": "Cannot delete master admin.",
		})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

type resetPasswordRequest struct {
	Username    string `json:"username"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.svc.ResetPassword(c.Request().Context(), req.Username, req.NewPassword); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

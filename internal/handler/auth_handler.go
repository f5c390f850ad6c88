package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/curriculum-api/internal/middleware"
	"github.com/noah-isme/curriculum-api/internal/models"
	"github.com/noah-isme/curriculum-api/internal/service"
	appErrors "github.com/noah-isme/curriculum-api/pkg/errors"
	"github.com/noah-isme/curriculum-api/pkg/response"
)

// CookieConfig describes the session cookie issued on login.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	User    models.UserInfo `json:"user"`
}

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service *service.AuthService
	cookie  CookieConfig
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, cookie CookieConfig) *AuthHandler {
	if cookie.TTL <= 0 {
		cookie.TTL = 24 * time.Hour
	}
	return &AuthHandler{service: svc, cookie: cookie}
}

// Login godoc
// @Summary Authenticate user
// @Description Authenticate user by email and password and open a session cookie
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} handler.LoginResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setCookie(c, res.Token, int(h.cookie.TTL.Seconds()))
	response.JSON(c, http.StatusOK, LoginResponse{Success: true, Message: "login successful", User: res.User})
}

// Logout godoc
// @Summary Logout current session
// @Description Destroy the caller's session and expire the cookie
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.ErrorBody
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.SessionLoadError(c); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrSession.Code, appErrors.ErrSession.Status, "logout failed"))
		return
	}

	meta := models.LoginRequest{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent")}
	if err := h.service.Logout(c.Request.Context(), middleware.SessionFromContext(c), meta); err != nil {
		response.Error(c, err)
		return
	}

	h.setCookie(c, "", -1)
	response.Success(c, "logged out successfully")
}

// Session godoc
// @Summary Current session
// @Description Report whether the caller is logged in and as whom
// @Tags Authentication
// @Produce json
// @Success 200 {object} models.SessionStatus
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.CurrentSession(middleware.SessionFromContext(c)))
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rishabhkalra96/invoice-dashboard/internal/domain"
	"github.com/rishabhkalra96/invoice-dashboard/internal/metrics"
	"github.com/rishabhkalra96/invoice-dashboard/internal/transport/http/middleware"
	"github.com/rishabhkalra96/invoice-dashboard/internal/usecase"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
type authUsecaser interface {
	Authenticate(ctx context.Context, email, password string) (string, error)
	SessionTTL() time.Duration
}

type AuthHandler struct {
	auth   authUsecaser
	logger *slog.Logger
}

func NewAuthHandler(auth authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger.With("component", "auth_handler"),
	}
}

type loginRequest struct {
	Email    string `form:"email"    binding:"required,email"`
	Password string `form:"password" binding:"required,min=6"`
}

type loginView struct {
	Email   string
	Message string
}

// GET /login
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", loginView{})
}

// POST /login
// Malformed credentials and a real mismatch both come back as "Invalid
// credentials"; classified auth faults map to "Something went wrong";
// anything else escalates to the generic failure page.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		c.HTML(http.StatusUnauthorized, "login.html", loginView{
			Email:   c.PostForm("email"),
			Message: msgInvalidCredentials,
		})
		return
	}

	token, err := h.auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var authErr *domain.AuthError
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			c.HTML(http.StatusUnauthorized, "login.html", loginView{
				Email:   req.Email,
				Message: msgInvalidCredentials,
			})
		case errors.As(err, &authErr):
			h.logger.ErrorContext(c.Request.Context(), "authenticate", "error", err)
			metrics.LoginAttemptsTotal.WithLabelValues("auth_error").Inc()
			c.HTML(http.StatusInternalServerError, "login.html", loginView{
				Email:   req.Email,
				Message: msgSomethingWentWrong,
			})
		default:
			h.logger.ErrorContext(c.Request.Context(), "authenticate", "error", err)
			metrics.LoginAttemptsTotal.WithLabelValues("system_error").Inc()
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Message": errInternalServer})
		}
		return
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.auth.SessionTTL().Seconds()), "/", "", false, true)
	c.Redirect(http.StatusSeeOther, usecase.InvoiceListPath)
}

// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}

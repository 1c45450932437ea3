package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie carries the signed session token issued at login.
const SessionCookie = "invoice_session"

const loginPath = "/login"

// Session guards dashboard routes: it validates the session cookie and
// sets "userID" in the gin context, or redirects to the login page.
func Session(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := parseSession(c, secret)
		if !ok {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// RedirectAuthenticated sends an already signed-in user straight from the
// login page to the invoice list.
func RedirectAuthenticated(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := parseSession(c, secret); ok {
			c.Redirect(http.StatusSeeOther, "/dashboard/invoices")
			c.Abort()
			return
		}
		c.Next()
	}
}

func parseSession(c *gin.Context, secret []byte) (string, bool) {
	raw, err := c.Cookie(SessionCookie)
	if err != nil || raw == "" {
		return "", false
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}

	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rishabhkalra96/invoice-dashboard/internal/domain"
	"github.com/rishabhkalra96/invoice-dashboard/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const defaultSessionTTL = 24 * time.Hour

// AuthConfig is the explicit configuration of the authentication flow;
// there is no ambient/global auth state.
type AuthConfig struct {
	SessionSecret []byte
	SessionTTL    time.Duration
}

type AuthUsecase struct {
	users  repository.UserRepository
	secret []byte
	ttl    time.Duration
}

func NewAuthUsecase(users repository.UserRepository, cfg AuthConfig) *AuthUsecase {
	ttl := cfg.SessionTTL
	if ttl == 0 {
		ttl = defaultSessionTTL
	}
	return &AuthUsecase{
		users:  users,
		secret: cfg.SessionSecret,
		ttl:    ttl,
	}
}

// Verify checks an email/password pair against the stored bcrypt hash.
// An unknown email and a wrong password both return
// domain.ErrInvalidCredentials, indistinguishably. Storage faults are
// returned as-is (wrapped) so callers can tell them apart from a
// mismatch.
func (u *AuthUsecase) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Authenticate runs the credential check and, on success, issues a signed
// session token. Token issuance failures are classified auth errors
// (domain.AuthError); verification system faults pass through unclassified
// so the transport layer escalates them.
func (u *AuthUsecase) Authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := u.Verify(ctx, email, password)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(u.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(u.secret)
	if err != nil {
		return "", &domain.AuthError{Err: fmt.Errorf("sign session token: %w", err)}
	}
	return signed, nil
}

// SessionTTL is the lifetime used for the session cookie.
func (u *AuthUsecase) SessionTTL() time.Duration {
	return u.ttl
}

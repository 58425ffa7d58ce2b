package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"commentboard/api/internal/apperr"
	"commentboard/api/internal/ids"
	"commentboard/api/internal/models"
	"commentboard/api/internal/repository"
	"commentboard/api/internal/security"
)

// AuthService owns every mutation of credential and session state. A user's
// credential moves between three states: registered/active (no pending
// reset) and reset-pending (a live reset token is stored). Signup enters
// active, ForgotPassword enters reset-pending, ResetPassword returns to
// active.
type AuthService struct {
	users    UserStore
	sessions SessionStore
	perms    PermissionStore
	tokens   *security.TokenService
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(
	users UserStore,
	sessions SessionStore,
	perms PermissionStore,
	tokens *security.TokenService,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		perms:    perms,
		tokens:   tokens,
		log:      log,
		now:      time.Now,
	}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// Signup creates the account with the default read-only permission set. It
// deliberately issues no tokens: signing up does not log in.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (models.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return models.User{}, apperr.New(apperr.KindValidation, "name, email and password are required")
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return models.User{}, apperr.New(apperr.KindConflict, "user already exists")
		}
		return models.User{}, err
	}

	if err := s.perms.Set(ctx, user.ID, models.NewPermissionSet(models.CapabilityRead)); err != nil {
		return models.User{}, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user signed up")
	return user, nil
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         models.User
}

// Login verifies credentials, revokes every prior session for the user, and
// issues a fresh token pair backed by a new session. Unknown email and wrong
// password answer identically so the response leaks nothing about which
// accounts exist.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, apperr.New(apperr.KindInvalidCredentials, "invalid credentials")
		}
		return AuthResult{}, err
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		return AuthResult{}, apperr.New(apperr.KindInvalidCredentials, "invalid credentials")
	}

	// Single-active-session policy: a new login invalidates all prior
	// sessions. Two concurrent logins race here; last writer wins.
	if err := s.sessions.DeleteAllForUser(ctx, user.ID); err != nil {
		return AuthResult{}, err
	}

	accessToken, err := s.tokens.IssueAccess(user.ID)
	if err != nil {
		return AuthResult{}, err
	}
	refreshToken, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return AuthResult{}, err
	}

	session := models.Session{
		ID:               ids.New(),
		UserID:           user.ID,
		RefreshTokenHash: security.HashRefreshToken(refreshToken),
		ExpiresAt:        s.now().Add(s.tokens.RefreshTokenTTL()),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return AuthResult{}, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Refresh mints a new access token for a refresh token that has both a valid
// signature and a live, unexpired session row. The refresh token itself is
// not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	badToken := apperr.New(apperr.KindInvalidCredentials, "invalid or expired refresh token")

	session, err := s.sessions.FindByRefreshHash(ctx, security.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return "", badToken
		}
		return "", err
	}
	if session.Expired(s.now()) {
		return "", badToken
	}

	userID, err := s.tokens.Verify(refreshToken, security.TokenKindRefresh)
	if err != nil || userID != session.UserID {
		return "", badToken
	}

	return s.tokens.IssueAccess(userID)
}

// Logout deletes the session holding this refresh token. Unknown tokens are
// a no-op; logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.sessions.DeleteByRefreshHash(ctx, security.HashRefreshToken(refreshToken))
}

// ForgotPassword stores a fresh single-use reset token against the account
// and returns it. There is no mail channel; delivering the token is the
// caller's responsibility.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", apperr.New(apperr.KindNotFound, "user not found")
		}
		return "", err
	}

	resetToken, err := s.tokens.IssueReset(user.ID)
	if err != nil {
		return "", err
	}

	expiry := s.now().Add(s.tokens.ResetTokenTTL())
	if err := s.users.SetResetToken(ctx, user.ID, resetToken, expiry); err != nil {
		return "", err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset requested")
	return resetToken, nil
}

// ResetPassword consumes a reset token: the token must verify, must exactly
// match the value currently stored on the account, and the stored expiry
// must not have passed. Existing sessions survive the password change; only
// a fresh login revokes them.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken string, newPassword string) error {
	if newPassword == "" {
		return apperr.New(apperr.KindValidation, "new password is required")
	}
	badToken := apperr.New(apperr.KindInvalidOrExpired, "invalid or expired reset token")

	userID, err := s.tokens.Verify(resetToken, security.TokenKindReset)
	if err != nil {
		return badToken
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return badToken
		}
		return err
	}

	if user.ResetToken == nil || *user.ResetToken != resetToken {
		return badToken
	}
	if user.ResetTokenExpiry == nil || !user.ResetTokenExpiry.After(s.now()) {
		return badToken
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	// UpdatePassword also clears the reset fields, so the token cannot be
	// replayed.
	if err := s.users.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset completed")
	return nil
}

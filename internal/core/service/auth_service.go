package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/propamit/propamit-api/internal/auth"
	"github.com/propamit/propamit-api/internal/core/domain"
	"github.com/propamit/propamit-api/internal/core/ports"
)

const bcryptCost = 12

// AuthService implements registration, email verification, login and the
// password-reset sub-flow. It is the only place these workflows exist; the
// HTTP handlers are thin adapters over it.
type AuthService struct {
	users   ports.UserRepository
	issuer  *auth.TokenIssuer
	admins  *auth.AdminList
	mailer  ports.Mailer
	limiter ports.LoginLimiter
	logger  zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	issuer *auth.TokenIssuer,
	admins *auth.AdminList,
	mailer ports.Mailer,
	limiter ports.LoginLimiter,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:   users,
		issuer:  issuer,
		admins:  admins,
		mailer:  mailer,
		limiter: limiter,
		logger:  logger,
	}
}

// Register creates an unverified account and dispatches the verification
// email. The duplicate pre-check is an optimization only; the unique index on
// email is what actually prevents a concurrent double-insert.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	verifyToken, err := s.issuer.Issue(auth.Claims{
		Email:   in.Email,
		Purpose: auth.PurposeVerify,
	}, auth.VerifyTokenTTL)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:              in.Name,
		Email:             in.Email,
		PasswordHash:      string(hash),
		Phone:             in.Phone,
		IsVerified:        false,
		VerificationToken: verifyToken,
		CreatedAt:         time.Now().UTC(),
	}

	created, err := s.users.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, "verification", created.Email, func(ctx context.Context) error {
		return s.mailer.SendVerificationEmail(ctx, created.Email, created.Name, verifyToken)
	})

	s.logger.Info().Str("email", created.Email).Msg("user registered")
	return created, nil
}

// VerifyEmail transitions a user to verified. The token must pass signature
// and expiry checks and must still be stored on the user record; the
// conditional update clears it, so a second call with the same token fails.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.issuer.Verify(token)
	if err != nil {
		return domain.ErrTokenConsumed
	}
	if claims.Purpose != auth.PurposeVerify {
		return domain.ErrTokenConsumed
	}

	user, err := s.users.MarkVerified(ctx, claims.Email, token)
	if err != nil {
		return err
	}

	s.notify(ctx, "welcome", user.Email, func(ctx context.Context) error {
		return s.mailer.SendWelcomeEmail(ctx, user.Email, user.Name)
	})

	s.logger.Info().Str("email", user.Email).Msg("email verified")
	return nil
}

// Login authenticates a verified user and issues a 7-day session token.
// Unknown email and wrong password return the identical ErrInvalidCredentials
// so the response body cannot reveal which check failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if blocked, err := s.limiter.TooMany(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("login limiter unavailable")
	} else if blocked {
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, domain.ErrNotVerified
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	token, err := s.issuer.Issue(auth.Claims{
		Email:            user.Email,
		Role:             domain.RoleUser,
		Purpose:          auth.PurposeSession,
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.ID},
	}, auth.UserSessionTTL)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Clear(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("login limiter clear failed")
	}

	s.logger.Info().Str("user_id", user.ID).Msg("login successful")
	return &ports.LoginResult{Token: token, User: user}, nil
}

// ForgotPassword stores a 1-hour single-use reset token and emails it. It
// succeeds identically whether or not the email is registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, err := s.issuer.Issue(auth.Claims{
		Email:   user.Email,
		Purpose: auth.PurposeReset,
	}, auth.ResetTokenTTL)
	if err != nil {
		return err
	}

	expiry := time.Now().UTC().Add(auth.ResetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.Email, token, expiry); err != nil {
		return err
	}

	s.notify(ctx, "reset", user.Email, func(ctx context.Context) error {
		return s.mailer.SendResetEmail(ctx, user.Email, token)
	})
	return nil
}

// ResetPassword completes the reset sub-flow. The token must verify, carry
// the reset purpose, and still match the stored single-use value within its
// stored expiry window.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.issuer.Verify(token)
	if err != nil {
		return domain.ErrTokenConsumed
	}
	if claims.Purpose != auth.PurposeReset {
		return domain.ErrTokenConsumed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}

	if err := s.users.CompleteReset(ctx, claims.Email, token, string(hash), time.Now().UTC()); err != nil {
		return err
	}

	s.logger.Info().Str("email", claims.Email).Msg("password reset completed")
	return nil
}

// AdminLogin authenticates against the fixed allow-list and issues a 24-hour
// admin session token. The credential store is never consulted.
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*ports.AdminLoginResult, error) {
	admin, ok := s.admins.Authenticate(email, password)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(auth.Claims{
		Email:            admin.Email,
		Role:             domain.RoleAdmin,
		Purpose:          auth.PurposeSession,
		RegisteredClaims: jwt.RegisteredClaims{Subject: admin.Email},
	}, auth.AdminSessionTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", admin.Email).Msg("admin login successful")
	return &ports.AdminLoginResult{Token: token, Admin: admin}, nil
}

// notify delivers an account email best-effort: failures are logged and never
// propagated into the request that triggered them.
func (s *AuthService) notify(ctx context.Context, kind, email string, send func(context.Context) error) {
	if err := send(ctx); err != nil {
		s.logger.Error().Err(err).Str("kind", kind).Str("email", email).Msg("mail delivery failed")
	}
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("login limiter record failed")
	}
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/menna-app/menna-backend/internal/users"
	pkgauth "github.com/menna-app/menna-backend/pkg/auth"
	"github.com/menna-app/menna-backend/pkg/config"
	"github.com/menna-app/menna-backend/pkg/db"
	"github.com/menna-app/menna-backend/pkg/db/models"
	pkgerrors "github.com/menna-app/menna-backend/pkg/errors"
	"github.com/menna-app/menna-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

const (
	loginRateScope = "login:"
	otpRateScope   = "otp:"
)

// Service defines the behavior needed by the auth controller.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error)
	RequestOTP(ctx context.Context, req RequestOTPRequest) error
	VerifyOTP(ctx context.Context, userID uuid.UUID, req VerifyOTPRequest) (bool, error)
	ResetPassword(ctx context.Context, req ResetPasswordRequest) (bool, error)
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkPhoneVerified(ctx context.Context, id uuid.UUID, phone string) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

type otpService interface {
	Issue(ctx context.Context, phone string) error
	Verify(ctx context.Context, phone, code string) (bool, error)
}

type service struct {
	users       userRepository
	limiter     rateLimiter
	otp         otpService
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	limitCfg    config.RateLimitConfig
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo        userRepository
	RateLimiter     rateLimiter
	OTP             otpService
	JWTConfig       config.JWTConfig
	PasswordConfig  config.PasswordConfig
	RateLimitConfig config.RateLimitConfig
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.RateLimiter == nil {
		return nil, fmt.Errorf("rate limiter is required")
	}
	if params.OTP == nil {
		return nil, fmt.Errorf("otp service is required")
	}
	return &service{
		users:       params.UserRepo,
		limiter:     params.RateLimiter,
		otp:         params.OTP,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		limitCfg:    params.RateLimitConfig,
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:        email,
		PasswordHash: hash,
		Phone:        req.Phone,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "idx_users_email") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	return s.tokenPair(user, time.Now().UTC())
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	// The window is keyed by email and consumed before the user lookup so
	// attempts against unknown accounts burn attempts too.
	allowed, _, err := s.limiter.FixedWindowAllow(ctx, loginRateScope+email, int64(s.limitCfg.LoginLimit), s.limitCfg.LoginWindow)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "login rate limit")
	}
	if !allowed {
		return nil, pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts")
	}

	user, err := s.authenticate(ctx, email, req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record login")
	}
	user.LastLoginAt = &now

	return s.tokenPair(user, now)
}

func (s *service) Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	claims, err := pkgauth.ParseToken(s.jwtCfg, req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Kind != pkgauth.TokenKindRefresh {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "refresh token required")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown user")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	return s.tokenPair(user, time.Now().UTC())
}

func (s *service) RequestOTP(ctx context.Context, req RequestOTPRequest) error {
	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}

	allowed, _, err := s.limiter.FixedWindowAllow(ctx, otpRateScope+phone, int64(s.limitCfg.OTPLimit), s.limitCfg.OTPWindow)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "otp rate limit")
	}
	if !allowed {
		return pkgerrors.New(pkgerrors.CodeRateLimit, "too many otp requests")
	}

	if err := s.otp.Issue(ctx, phone); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "issue otp")
	}
	return nil
}

// VerifyOTP checks the submitted code and, when it matches, records the phone
// as verified on the user. A wrong or expired code is not an error: the caller
// gets verified=false and may retry.
func (s *service) VerifyOTP(ctx context.Context, userID uuid.UUID, req VerifyOTPRequest) (bool, error) {
	phone := strings.TrimSpace(req.Phone)
	if phone == "" || req.Code == "" {
		return false, nil
	}

	ok, err := s.otp.Verify(ctx, phone, req.Code)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verify otp")
	}
	if !ok {
		return false, nil
	}

	if err := s.users.MarkPhoneVerified(ctx, userID, phone); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark phone verified")
	}
	return true, nil
}

// ResetPassword replaces the credential for a known email. Unknown emails are
// reported as reset=false rather than an error so the endpoint does not leak
// which addresses exist.
func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) (bool, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return false, nil
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	hash, err := security.HashPassword(req.NewPassword, s.passwordCfg)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
	}
	return true, nil
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

func (s *service) tokenPair(user *models.User, now time.Time) (*AuthResponse, error) {
	accessToken, err := pkgauth.MintAccessToken(s.jwtCfg, now, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	refreshToken, err := pkgauth.MintRefreshToken(s.jwtCfg, now, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint refresh token")
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         users.FromModel(user),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

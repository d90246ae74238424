package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/menna-app/menna-backend/pkg/config"
	"github.com/menna-app/menna-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const codeDigits = 6

// codeStore is the slice of the redis client the OTP service needs.
type codeStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	OTPCodeKey(phone string) string
	OTPAttemptsKey(phone string) string
}

// Sender delivers the code out of band. The SMS gateway integration lives
// behind this hook; the default sender only logs.
type Sender interface {
	Send(ctx context.Context, phone, code string) error
}

// Service issues and verifies short-lived phone verification codes.
type Service struct {
	store  codeStore
	sender Sender
	cfg    config.OTPConfig
	logg   *logger.Logger
}

// ServiceParams bundles the dependencies required to build an OTP service.
type ServiceParams struct {
	Store  codeStore
	Sender Sender
	Config config.OTPConfig
	Logger *logger.Logger
}

// NewService constructs an OTP service with the provided dependencies.
func NewService(params ServiceParams) (*Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("code store is required")
	}
	if params.Config.CodeTTL <= 0 {
		return nil, fmt.Errorf("code ttl must be positive")
	}
	if params.Config.MaxAttempts <= 0 {
		return nil, fmt.Errorf("max attempts must be positive")
	}
	sender := params.Sender
	if sender == nil {
		sender = logSender{logg: params.Logger}
	}
	return &Service{
		store:  params.Store,
		sender: sender,
		cfg:    params.Config,
		logg:   params.Logger,
	}, nil
}

// Issue generates a fresh zero-padded code, stores it under the phone's key
// with the configured TTL, and hands it to the sender. A new code replaces
// any pending one and resets the failed-attempt counter.
func (s *Service) Issue(ctx context.Context, phone string) error {
	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generating otp code: %w", err)
	}
	if err := s.store.Set(ctx, s.store.OTPCodeKey(phone), code, s.cfg.CodeTTL); err != nil {
		return fmt.Errorf("storing otp code: %w", err)
	}
	if err := s.store.Del(ctx, s.store.OTPAttemptsKey(phone)); err != nil {
		return fmt.Errorf("resetting otp attempts: %w", err)
	}
	if err := s.sender.Send(ctx, phone, code); err != nil {
		return fmt.Errorf("sending otp code: %w", err)
	}
	return nil
}

// Verify checks the submitted code against the pending one. It returns false,
// never an error, for a wrong code, an expired code, or an unknown phone. A
// successful verify consumes the code; too many failures invalidate it.
func (s *Service) Verify(ctx context.Context, phone, code string) (bool, error) {
	stored, err := s.store.Get(ctx, s.store.OTPCodeKey(phone))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("loading otp code: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) == 1 {
		if err := s.store.Del(ctx, s.store.OTPCodeKey(phone), s.store.OTPAttemptsKey(phone)); err != nil {
			return false, fmt.Errorf("consuming otp code: %w", err)
		}
		return true, nil
	}

	attempts, err := s.store.IncrWithTTL(ctx, s.store.OTPAttemptsKey(phone), s.cfg.CodeTTL)
	if err != nil {
		return false, fmt.Errorf("counting otp attempts: %w", err)
	}
	if attempts >= int64(s.cfg.MaxAttempts) {
		if err := s.store.Del(ctx, s.store.OTPCodeKey(phone), s.store.OTPAttemptsKey(phone)); err != nil {
			return false, fmt.Errorf("invalidating otp code: %w", err)
		}
	}
	return false, nil
}

func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n), nil
}

type logSender struct {
	logg *logger.Logger
}

func (l logSender) Send(ctx context.Context, phone, code string) error {
	if l.logg != nil {
		l.logg.Info(l.logg.WithField(ctx, "phone", phone), "otp code issued")
	}
	return nil
}

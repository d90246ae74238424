package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/menna-app/menna-backend/internal/users"
	pkgauth "github.com/menna-app/menna-backend/pkg/auth"
	"github.com/menna-app/menna-backend/pkg/config"
	"github.com/menna-app/menna-backend/pkg/db/models"
	pkgerrors "github.com/menna-app/menna-backend/pkg/errors"
	"github.com/menna-app/menna-backend/pkg/security"
)

type fakeUserRepo struct {
	byEmail       map[string]*models.User
	byID          map[uuid.UUID]*models.User
	createErr     error
	lastLoginID   uuid.UUID
	verifiedPhone string
	verifiedID    uuid.UUID
	newHash       string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: map[string]*models.User{},
		byID:    map[uuid.UUID]*models.User{},
	}
}

func (f *fakeUserRepo) add(u *models.User) {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
}

func (f *fakeUserRepo) Create(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, exists := f.byEmail[dto.Email]; exists {
		return nil, errors.New(`duplicate key value violates unique constraint "idx_users_email"`)
	}
	user := dto.ToModel()
	user.ID = uuid.New()
	f.add(user)
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, _ time.Time) error {
	f.lastLoginID = id
	return nil
}

func (f *fakeUserRepo) MarkPhoneVerified(_ context.Context, id uuid.UUID, phone string) error {
	f.verifiedID = id
	f.verifiedPhone = phone
	return nil
}

func (f *fakeUserRepo) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	f.newHash = hash
	return nil
}

type fakeLimiter struct {
	counts map[string]int64
	limit  int64
	scopes []string
}

func newFakeLimiter(limit int64) *fakeLimiter {
	return &fakeLimiter{counts: map[string]int64{}, limit: limit}
}

func (f *fakeLimiter) FixedWindowAllow(_ context.Context, scope string, limit int64, _ time.Duration) (bool, int64, error) {
	f.scopes = append(f.scopes, scope)
	f.counts[scope]++
	max := f.limit
	if max == 0 {
		max = limit
	}
	return f.counts[scope] <= max, f.counts[scope], nil
}

type fakeOTP struct {
	issued     []string
	verifyOK   bool
	verifyErr  error
	lastPhone  string
	lastCode   string
	issueError error
}

func (f *fakeOTP) Issue(_ context.Context, phone string) error {
	if f.issueError != nil {
		return f.issueError
	}
	f.issued = append(f.issued, phone)
	return nil
}

func (f *fakeOTP) Verify(_ context.Context, phone, code string) (bool, error) {
	f.lastPhone = phone
	f.lastCode = code
	return f.verifyOK, f.verifyErr
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:           "test-secret",
		Issuer:           "menna-test",
		AccessTTLMinutes: 15,
		RefreshTTLDays:   30,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func testRateLimitConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		LoginWindow: 5 * time.Minute,
		LoginLimit:  5,
		OTPWindow:   5 * time.Minute,
		OTPLimit:    3,
	}
}

func newTestService(t *testing.T, repo *fakeUserRepo, limiter *fakeLimiter, otp *fakeOTP) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:        repo,
		RateLimiter:     limiter,
		OTP:             otp,
		JWTConfig:       testJWTConfig(),
		PasswordConfig:  testPasswordConfig(),
		RateLimitConfig: testRateLimitConfig(),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
	}
	repo.add(user)
	return user
}

func TestRegisterIssuesTokenPair(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo, newFakeLimiter(0), &fakeOTP{})

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "New@Example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", resp)
	}
	if resp.User == nil || resp.User.Email != "new@example.com" {
		t.Fatalf("expected normalized email, got %+v", resp.User)
	}

	claims, err := pkgauth.ParseToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Fatalf("expected token for user %s, got %s", resp.User.ID, claims.UserID)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "taken@example.com", "hunter2hunter2")
	svc := newTestService(t, repo, newFakeLimiter(0), &fakeOTP{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "taken@example.com",
		Password: "hunter2hunter2",
	})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLoginSucceedsAndRecordsLogin(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "user@example.com", "hunter2hunter2")
	limiter := newFakeLimiter(0)
	svc := newTestService(t, repo, limiter, &fakeOTP{})

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", resp)
	}
	if repo.lastLoginID != user.ID {
		t.Fatalf("expected last login recorded for %s, got %s", user.ID, repo.lastLoginID)
	}
	if len(limiter.scopes) != 1 || limiter.scopes[0] != "login:user@example.com" {
		t.Fatalf("expected login scope to be consumed, got %v", limiter.scopes)
	}
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "user@example.com", "hunter2hunter2")
	svc := newTestService(t, repo, newFakeLimiter(0), &fakeOTP{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "wrong-password",
	})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if !strings.Contains(err.Error(), invalidCredentialsMessage) {
		t.Fatalf("expected generic credentials message, got %q", err.Error())
	}
}

func TestLoginUnknownEmailMatchesWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "user@example.com", "hunter2hunter2")
	svc := newTestService(t, repo, newFakeLimiter(0), &fakeOTP{})

	_, unknownErr := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "hunter2hunter2",
	})
	_, wrongErr := svc.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "wrong-password",
	})

	// The two failure modes must be indistinguishable to the caller.
	if unknownErr == nil || wrongErr == nil {
		t.Fatalf("expected both logins to fail, got %v and %v", unknownErr, wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("expected identical errors, got %q vs %q", unknownErr.Error(), wrongErr.Error())
	}
}

func TestLoginRateLimitBlocksBeforeLookup(t *testing.T) {
	repo := newFakeUserRepo()
	limiter := newFakeLimiter(5)
	svc := newTestService(t, repo, limiter, &fakeOTP{})

	ctx := context.Background()
	req := LoginRequest{Email: "ghost@example.com", Password: "whatever"}

	for i := 0; i < 5; i++ {
		_, err := svc.Login(ctx, req)
		if pkgerrors.CodeOf(err) != pkgerrors.CodeUnauthorized {
			t.Fatalf("attempt %d: expected unauthorized, got %v", i+1, err)
		}
	}

	_, err := svc.Login(ctx, req)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeRateLimit {
		t.Fatalf("expected rate limit on sixth attempt, got %v", err)
	}
}

func TestRefreshMintsNewPair(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "user@example.com", "hunter2hunter2")
	svc := newTestService(t, repo, newFakeLimiter(0), &fakeOTP{})

	refresh, err := pkgauth.MintRefreshToken(testJWTConfig(), time.Now().UTC(), user.ID)
	if err != nil {
		t.Fatalf("MintRefreshToken: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), RefreshRequest{RefreshToken: refresh})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if resp.User == nil || resp.User.ID != user.ID {
		t.Fatalf("expected user %s, got %+v", user.ID, resp.User)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "user@example.com", "hunter2hunter2")
	svc := newTestService(t, repo, newFakeLimiter(0), &fakeOTP{})

	access, err := pkgauth.MintAccessToken(testJWTConfig(), time.Now().UTC(), user.ID)
	if err != nil {
		t.Fatalf("MintAccessToken: %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{RefreshToken: access})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for access token, got %v", err)
	}
}

func TestRefreshUnknownUserIsUnauthorized(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo, newFakeLimiter(0), &fakeOTP{})

	refresh, err := pkgauth.MintRefreshToken(testJWTConfig(), time.Now().UTC(), uuid.New())
	if err != nil {
		t.Fatalf("MintRefreshToken: %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{RefreshToken: refresh})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for deleted user, got %v", err)
	}
}

func TestRequestOTPIssuesWithinLimit(t *testing.T) {
	repo := newFakeUserRepo()
	limiter := newFakeLimiter(3)
	otp := &fakeOTP{}
	svc := newTestService(t, repo, limiter, otp)

	ctx := context.Background()
	req := RequestOTPRequest{Phone: "+972501234567"}

	for i := 0; i < 3; i++ {
		if err := svc.RequestOTP(ctx, req); err != nil {
			t.Fatalf("request %d: %v", i+1, err)
		}
	}
	if len(otp.issued) != 3 {
		t.Fatalf("expected 3 issued codes, got %d", len(otp.issued))
	}

	err := svc.RequestOTP(ctx, req)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeRateLimit {
		t.Fatalf("expected rate limit on fourth request, got %v", err)
	}
	if len(otp.issued) != 3 {
		t.Fatalf("expected no code issued past the limit, got %d", len(otp.issued))
	}
	if limiter.scopes[0] != "otp:+972501234567" {
		t.Fatalf("unexpected scope %q", limiter.scopes[0])
	}
}

func TestVerifyOTPMarksPhoneVerified(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "user@example.com", "hunter2hunter2")
	otp := &fakeOTP{verifyOK: true}
	svc := newTestService(t, repo, newFakeLimiter(0), otp)

	ok, err := svc.VerifyOTP(context.Background(), user.ID, VerifyOTPRequest{
		Phone: "+972501234567",
		Code:  "123456",
	})
	if err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if !ok {
		t.Fatal("expected verification to succeed")
	}
	if repo.verifiedID != user.ID || repo.verifiedPhone != "+972501234567" {
		t.Fatalf("expected phone recorded for %s, got %s/%s", user.ID, repo.verifiedID, repo.verifiedPhone)
	}
}

func TestVerifyOTPWrongCodeIsNotAnError(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "user@example.com", "hunter2hunter2")
	otp := &fakeOTP{verifyOK: false}
	svc := newTestService(t, repo, newFakeLimiter(0), otp)

	ok, err := svc.VerifyOTP(context.Background(), user.ID, VerifyOTPRequest{
		Phone: "+972501234567",
		Code:  "000000",
	})
	if err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if ok {
		t.Fatal("expected verification to fail")
	}
	if repo.verifiedPhone != "" {
		t.Fatalf("expected no phone recorded, got %q", repo.verifiedPhone)
	}
}

func TestResetPasswordRehashesKnownEmail(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "user@example.com", "hunter2hunter2")
	oldHash := user.PasswordHash
	svc := newTestService(t, repo, newFakeLimiter(0), &fakeOTP{})

	ok, err := svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Email:       "user@example.com",
		NewPassword: "correct-horse-battery",
	})
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if !ok {
		t.Fatal("expected reset to succeed")
	}
	if repo.newHash == "" || repo.newHash == oldHash {
		t.Fatal("expected a fresh password hash")
	}

	valid, err := security.VerifyPassword("correct-horse-battery", repo.newHash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !valid {
		t.Fatal("new hash does not verify the new password")
	}
}

func TestResetPasswordUnknownEmailReportsFalse(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo, newFakeLimiter(0), &fakeOTP{})

	ok, err := svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Email:       "ghost@example.com",
		NewPassword: "whatever-password",
	})
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if ok {
		t.Fatal("expected reset=false for unknown email")
	}
}

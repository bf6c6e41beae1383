package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nguyenanhtu/realty_backend/config"
	"github.com/nguyenanhtu/realty_backend/internal/model"
	"github.com/nguyenanhtu/realty_backend/internal/repo"
	pasetotoken "github.com/nguyenanhtu/realty_backend/pkg/paseto"
	"github.com/nguyenanhtu/realty_backend/pkg/sms"
	"github.com/nguyenanhtu/realty_backend/pkg/util/otp"
	"github.com/nguyenanhtu/realty_backend/pkg/util/password"
	"github.com/nguyenanhtu/realty_backend/pkg/util/phone"
)

// redisKeySession returns the Redis key for a session.
func redisKeySession(sessionID string) string { return "session:" + sessionID }

// redisKeySessions is the set of live admin session ids, used to revoke them all.
const redisKeySessions = "sessions:admin"

// otpSubject scopes reset codes so they cannot be confused with other OTP uses.
func otpSubject(e164 string) string { return "reset:" + e164 }

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetRequest struct {
	Phone       string `json:"phone"`
	NewPassword string `json:"newPassword"`
	Code        string `json:"code"`
}

// Session is a freshly issued admin login.
type Session struct {
	Token     string
	SessionID uuid.UUID
	ExpiresAt time.Time
	TTL       time.Duration
}

type AdminStore interface {
	Get(ctx context.Context) (*model.Admin, error)
	Save(ctx context.Context, a *model.Admin) error
	SetPasswordHash(ctx context.Context, hash string) error
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*Session, error)
	// Verify reports the token status. A well-formed, unexpired token whose
	// session was revoked is reported as invalid.
	Verify(ctx context.Context, token string) (*pasetotoken.Claims, pasetotoken.Status)
	Logout(ctx context.Context, sessionID uuid.UUID) error
	CheckPhone(ctx context.Context, phone string) error
	ResetPassword(ctx context.Context, req ResetRequest) error
	// SeedAdmin replaces the admin credential; used by `system init`.
	SeedAdmin(ctx context.Context, username, plain, phone string) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type Deps struct {
	Admins AdminStore
	Redis  *redis.Client
	Paseto *pasetotoken.Manager
	OTP    *otp.Store
	SMS    sms.Sender
	Hasher *password.Hasher
	Reset  config.ResetConfig
	Log    *slog.Logger
	Events Recorder
}

// Recorder is implemented by *observability.Events.
type Recorder interface {
	LoginAttempt(ctx context.Context, ok bool)
}

type nopRecorder struct{}

func (nopRecorder) LoginAttempt(context.Context, bool) {}

type authService struct {
	Deps
}

func New(d Deps) Service {
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.Events == nil {
		d.Events = nopRecorder{}
	}
	if d.Reset.PhoneRegion == "" {
		d.Reset.PhoneRegion = phone.DefaultRegion
	}
	return &authService{Deps: d}
}

// ---------------------------------------------------------------------------
// Login / Verify / Logout
// ---------------------------------------------------------------------------

func (s *authService) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	admin, err := s.Admins.Get(ctx)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load admin: %w", err)
	}

	userOK := subtle.ConstantTimeCompare([]byte(admin.Username), []byte(req.Username)) == 1
	if err := password.Verify(admin.PasswordHash, req.Password); err != nil || !userOK {
		s.Events.LoginAttempt(ctx, false)
		return nil, ErrInvalidCredentials
	}
	s.Events.LoginAttempt(ctx, true)

	return s.createSession(ctx)
}

func (s *authService) createSession(ctx context.Context) (*Session, error) {
	sessionID := uuid.Must(uuid.NewV7())

	token, claims, err := s.Paseto.Issue(sessionID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	ttl := s.Paseto.TTL()
	pipe := s.Redis.TxPipeline()
	pipe.Set(ctx, redisKeySession(sessionID.String()), pasetotoken.SubjectAdmin, ttl)
	pipe.SAdd(ctx, redisKeySessions, sessionID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &Session{Token: token, SessionID: sessionID, ExpiresAt: claims.ExpiresAt, TTL: ttl}, nil
}

func (s *authService) Verify(ctx context.Context, token string) (*pasetotoken.Claims, pasetotoken.Status) {
	claims, status, err := s.Paseto.Verify(token)
	if status != pasetotoken.StatusValid {
		s.Log.DebugContext(ctx, "token rejected", slog.String("status", status.String()), slog.Any("error", err))
		return claims, status
	}

	n, err := s.Redis.Exists(ctx, redisKeySession(claims.SessionID.String())).Result()
	if err != nil {
		s.Log.ErrorContext(ctx, "session lookup failed", slog.Any("error", err))
		return claims, pasetotoken.StatusInvalid
	}
	if n == 0 {
		return claims, pasetotoken.StatusInvalid
	}
	return claims, pasetotoken.StatusValid
}

func (s *authService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	deleted, err := s.Redis.Del(ctx, redisKeySession(sessionID.String())).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.Redis.SRem(ctx, redisKeySessions, sessionID.String())
	if deleted == 0 {
		s.Log.DebugContext(ctx, "logout: session already expired", slog.String("session_id", sessionID.String()))
	}
	return nil
}

func (s *authService) revokeAll(ctx context.Context) error {
	ids, err := s.Redis.SMembers(ctx, redisKeySessions).Result()
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, redisKeySession(id))
	}
	keys = append(keys, redisKeySessions)
	if err := s.Redis.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Password reset
// ---------------------------------------------------------------------------

func (s *authService) adminPhone(ctx context.Context, input string) (*model.Admin, string, error) {
	admin, err := s.Admins.Get(ctx)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, "", ErrPhoneMismatch
	}
	if err != nil {
		return nil, "", fmt.Errorf("load admin: %w", err)
	}
	e164, err := phone.Normalize(input, s.Reset.PhoneRegion)
	if err != nil || !phone.Equal(admin.Phone, e164, s.Reset.PhoneRegion) {
		return nil, "", ErrPhoneMismatch
	}
	return admin, e164, nil
}

func (s *authService) CheckPhone(ctx context.Context, input string) error {
	_, e164, err := s.adminPhone(ctx, input)
	if err != nil {
		return err
	}
	if !s.Reset.RequireOTP {
		return nil
	}

	code, err := s.OTP.Issue(ctx, otpSubject(e164))
	if err != nil {
		return fmt.Errorf("issue reset code: %w", err)
	}
	if err := s.SMS.SendResetCode(ctx, e164, code); err != nil {
		return fmt.Errorf("send reset code: %w", err)
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req ResetRequest) error {
	_, e164, err := s.adminPhone(ctx, req.Phone)
	if err != nil {
		return err
	}
	if len(req.NewPassword) < password.MinLength {
		return ErrPasswordTooShort
	}

	if s.Reset.RequireOTP {
		if req.Code == "" {
			return ErrOTPInvalid
		}
		err := s.OTP.Consume(ctx, otpSubject(e164), req.Code)
		if errors.Is(err, otp.ErrMismatch) || errors.Is(err, otp.ErrExpired) {
			return ErrOTPInvalid
		}
		if err != nil {
			return fmt.Errorf("check reset code: %w", err)
		}
	}

	hash, err := s.Hasher.Hash(req.NewPassword)
	if errors.Is(err, password.ErrTooShort) {
		return ErrPasswordTooShort
	}
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Admins.SetPasswordHash(ctx, hash); err != nil {
		return err
	}

	s.Log.InfoContext(ctx, "admin password reset")
	return s.revokeAll(ctx)
}

func (s *authService) SeedAdmin(ctx context.Context, username, plain, rawPhone string) error {
	hash, err := s.Hasher.Hash(plain)
	if errors.Is(err, password.ErrTooShort) {
		return ErrPasswordTooShort
	}
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	var e164 string
	if rawPhone != "" {
		if e164, err = phone.Normalize(rawPhone, s.Reset.PhoneRegion); err != nil {
			return fmt.Errorf("admin phone: %w", err)
		}
	}

	if err := s.Admins.Save(ctx, &model.Admin{Username: username, PasswordHash: hash, Phone: e164}); err != nil {
		return err
	}
	return s.revokeAll(ctx)
}

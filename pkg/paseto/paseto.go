package pasetotoken

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	paseto "aidanwoods.dev/go-paseto"
	"github.com/google/uuid"
)

// SubjectAdmin is the only identity tokens are ever issued for.
const SubjectAdmin = "admin"

type Config struct {
	Issuer   string
	Audience string
	TTL      time.Duration

	// Now is the clock used for issuing and expiry checks; time.Now when nil.
	Now func() time.Time
}

// Manager issues and verifies v4.local (encrypted) tokens.
type Manager struct {
	cfg Config
	key paseto.V4SymmetricKey
}

func New(cfg Config, keyHex string) (*Manager, error) {
	keyHex = strings.TrimSpace(keyHex)
	if keyHex == "" {
		return nil, ErrConfig{Msg: "local key is required"}
	}
	key, err := paseto.V4SymmetricKeyFromHex(keyHex)
	if err != nil {
		return nil, ErrConfig{Msg: "invalid local key hex: " + err.Error()}
	}
	if cfg.Issuer == "" {
		return nil, ErrConfig{Msg: "Issuer is required"}
	}
	if cfg.Audience == "" {
		return nil, ErrConfig{Msg: "Audience is required"}
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Manager{cfg: cfg, key: key}, nil
}

// TTL is the lifetime given to new tokens; the auth cookie's Max-Age mirrors it.
func (m *Manager) TTL() time.Duration {
	return m.cfg.TTL
}

// Issue mints a token for the admin bound to sessionID.
func (m *Manager) Issue(sessionID uuid.UUID) (string, *Claims, error) {
	now := m.cfg.Now()
	claims := &Claims{
		Subject:   SubjectAdmin,
		SessionID: sessionID,
		TokenID:   randHex(16),
		IssuedAt:  now,
		ExpiresAt: now.Add(m.cfg.TTL),
	}

	tok := paseto.NewToken()
	tok.SetIssuer(m.cfg.Issuer)
	tok.SetAudience(m.cfg.Audience)
	tok.SetSubject(claims.Subject)
	tok.SetJti(claims.TokenID)
	tok.SetIssuedAt(now)
	tok.SetNotBefore(now)
	tok.SetExpiration(claims.ExpiresAt)
	tok.SetString("sid", sessionID.String())

	return tok.V4Encrypt(m.key, nil), claims, nil
}

// Verify decrypts and checks a token. Expiry is checked against the manager's
// clock rather than by the parser so an expired token can be told apart from
// a forged or malformed one.
func (m *Manager) Verify(token string) (*Claims, Status, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, StatusInvalid, ErrInvalidToken{Err: errors.New("empty token")}
	}

	p := paseto.NewParserWithoutExpiryCheck()
	p.AddRule(paseto.IssuedBy(m.cfg.Issuer))
	p.AddRule(paseto.ForAudience(m.cfg.Audience))
	p.AddRule(paseto.Subject(SubjectAdmin))

	tok, err := p.ParseV4Local(m.key, token, nil)
	if err != nil {
		return nil, StatusInvalid, ErrInvalidToken{Err: err}
	}

	claims, err := extractClaims(tok)
	if err != nil {
		return nil, StatusInvalid, ErrInvalidToken{Err: err}
	}

	if !m.cfg.Now().Before(claims.ExpiresAt) {
		return claims, StatusExpired, ErrExpired
	}
	return claims, StatusValid, nil
}

func randHex(nBytes int) string {
	b := make([]byte, nBytes)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func extractClaims(tok *paseto.Token) (*Claims, error) {
	jti, err := tok.GetJti()
	if err != nil {
		return nil, err
	}
	sub, err := tok.GetSubject()
	if err != nil {
		return nil, err
	}
	iat, err := tok.GetIssuedAt()
	if err != nil {
		return nil, err
	}
	exp, err := tok.GetExpiration()
	if err != nil {
		return nil, err
	}
	sidStr, err := tok.GetString("sid")
	if err != nil {
		return nil, err
	}
	sid, err := uuid.Parse(sidStr)
	if err != nil {
		return nil, err
	}

	return &Claims{
		Subject:   sub,
		SessionID: sid,
		TokenID:   jti,
		IssuedAt:  iat,
		ExpiresAt: exp,
	}, nil
}

// Package otp issues short numeric one-time codes and keeps only their hash in Redis.
package otp

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

var (
	ErrInvalidLength = errors.New("OTP length must be between 4 and 10")
	ErrMismatch      = errors.New("OTP does not match")
	ErrExpired       = errors.New("OTP expired or was never issued")
)

const (
	DefaultLength = 6
	MinLength     = 4
	MaxLength     = 10

	keyPrefix = "otp:"
)

// Generate creates a cryptographically secure numeric code with leading zeros kept.
func Generate(length int) (string, error) {
	if length < MinLength || length > MaxLength {
		return "", ErrInvalidLength
	}

	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}

	return fmt.Sprintf("%0*d", length, n), nil
}

// Hash returns the hex SHA-256 of the trimmed code.
func Hash(code string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(code)))
	return hex.EncodeToString(sum[:])
}

// Store keeps one pending code per subject (e.g. an E.164 phone number).
type Store struct {
	rdb    *goredis.Client
	ttl    time.Duration
	length int
}

func NewStore(rdb *goredis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Store{rdb: rdb, ttl: ttl, length: DefaultLength}
}

// Issue generates a fresh code for subject, replacing any pending one.
func (s *Store) Issue(ctx context.Context, subject string) (string, error) {
	code, err := Generate(s.length)
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, keyPrefix+subject, Hash(code), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	return code, nil
}

// Consume verifies code for subject. A matching code is deleted so it cannot be replayed.
func (s *Store) Consume(ctx context.Context, subject, code string) error {
	want, err := s.rdb.Get(ctx, keyPrefix+subject).Result()
	if errors.Is(err, goredis.Nil) {
		return ErrExpired
	}
	if err != nil {
		return fmt.Errorf("load otp: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(want), []byte(Hash(code))) != 1 {
		return ErrMismatch
	}
	return s.rdb.Del(ctx, keyPrefix+subject).Err()
}

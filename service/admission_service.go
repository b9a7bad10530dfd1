package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hametuha/hamelp-be/config"
	"github.com/hametuha/hamelp-be/types"
	"github.com/hametuha/hamelp-be/utils"
)

// RateStore holds the admission counters in shared storage. Increment
// must be atomic and attach the TTL only when the counter is created.
type RateStore interface {
	Count(ctx context.Context, key string) (int64, error)
	Increment(ctx context.Context, key string, ttl time.Duration) error
}

// AdmissionService gates the AI endpoint with three layered checks:
// an optional login requirement, a per-IP counter over a sliding window,
// and a global daily counter. Checks run in that order and stop at the
// first rejection.
type AdmissionService interface {
	Check(ctx context.Context, viewer *utils.UserClaims, ip string) *types.APIError
	Record(ctx context.Context, ip string) error
}

type admissionService struct {
	store RateStore
	cfg   config.RateLimitConfig
}

func NewAdmissionService(store RateStore, cfg config.RateLimitConfig) AdmissionService {
	return &admissionService{
		store: store,
		cfg:   cfg,
	}
}

func (s *admissionService) Check(ctx context.Context, viewer *utils.UserClaims, ip string) *types.APIError {
	if s.cfg.RequireLogin && viewer == nil {
		return types.NewForbiddenError("Please log in to use this feature.")
	}

	// Still fail closed on a store outage, but do not report it as a
	// quota hit: the caller did nothing wrong.
	count, err := s.store.Count(ctx, ipKey(ip))
	if err != nil {
		log.Printf("rate counter read failed: %v", err)
		return types.NewInternalError("Rate limit check failed. Please try again later.")
	}
	// Non-positive limits mean nobody gets through, not everybody.
	if count >= int64(s.cfg.PerIPLimit) || s.cfg.WindowMinutes <= 0 {
		return types.NewRateLimitError("Too many requests. Please wait a while and try again.")
	}

	count, err = s.store.Count(ctx, dailyKey(time.Now().UTC()))
	if err != nil {
		log.Printf("rate counter read failed: %v", err)
		return types.NewInternalError("Rate limit check failed. Please try again later.")
	}
	if count >= int64(s.cfg.DailyLimit) {
		return types.NewRateLimitError("The daily request limit has been reached. Please try again tomorrow.")
	}

	return nil
}

// Record charges both counters. Call it only after the generation call
// itself succeeded so failed generations do not consume quota.
func (s *admissionService) Record(ctx context.Context, ip string) error {
	window := time.Duration(s.cfg.WindowMinutes) * time.Minute
	if err := s.store.Increment(ctx, ipKey(ip), window); err != nil {
		return err
	}

	now := time.Now().UTC()
	return s.store.Increment(ctx, dailyKey(now), untilNextUTCMidnight(now))
}

// ClientIP picks the best available address: first X-Forwarded-For entry,
// then X-Real-IP, then the raw connection address. The first
// syntactically valid IP wins; 0.0.0.0 if nothing parses.
func ClientIP(header http.Header, remoteAddr string) string {
	candidates := []string{}
	if forwarded := header.Get("X-Forwarded-For"); forwarded != "" {
		candidates = append(candidates, strings.TrimSpace(strings.SplitN(forwarded, ",", 2)[0]))
	}
	if realIP := header.Get("X-Real-IP"); realIP != "" {
		candidates = append(candidates, strings.TrimSpace(realIP))
	}
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		candidates = append(candidates, host)
	} else {
		candidates = append(candidates, remoteAddr)
	}

	for _, candidate := range candidates {
		if net.ParseIP(candidate) != nil {
			return candidate
		}
	}
	return "0.0.0.0"
}

func ipKey(ip string) string {
	hash := sha256.Sum256([]byte(ip))
	return "hamelp:rate:ip:" + hex.EncodeToString(hash[:])
}

func dailyKey(now time.Time) string {
	return fmt.Sprintf("hamelp:rate:daily:%s", now.Format("2006-01-02"))
}

func untilNextUTCMidnight(now time.Time) time.Duration {
	midnight := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	ttl := midnight.Sub(now)
	if ttl < time.Second {
		ttl = time.Second
	}
	return ttl
}

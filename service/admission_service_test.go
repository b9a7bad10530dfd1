package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/hametuha/hamelp-be/config"
	"github.com/hametuha/hamelp-be/types"
	"github.com/hametuha/hamelp-be/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRateStore struct {
	counts   map[string]int64
	ttls     map[string]time.Duration
	countErr error
}

func newFakeRateStore() *fakeRateStore {
	return &fakeRateStore{
		counts: map[string]int64{},
		ttls:   map[string]time.Duration{},
	}
}

func (s *fakeRateStore) Count(ctx context.Context, key string) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return s.counts[key], nil
}

func (s *fakeRateStore) Increment(ctx context.Context, key string, ttl time.Duration) error {
	s.counts[key]++
	if s.counts[key] == 1 {
		s.ttls[key] = ttl
	}
	return nil
}

func defaultRateConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		RequireLogin:  false,
		PerIPLimit:    5,
		WindowMinutes: 10,
		DailyLimit:    100,
	}
}

func TestAdmissionSixthRequestRejected(t *testing.T) {
	store := newFakeRateStore()
	svc := NewAdmissionService(store, defaultRateConfig())
	ctx := context.Background()
	ip := "203.0.113.7"

	for i := 0; i < 5; i++ {
		require.Nil(t, svc.Check(ctx, nil, ip), "request %d should be admitted", i+1)
		require.NoError(t, svc.Record(ctx, ip))
	}

	apiErr := svc.Check(ctx, nil, ip)
	require.NotNil(t, apiErr)
	assert.Equal(t, types.ERROR_RATE_LIMITED, apiErr.Code)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
}

func TestAdmissionNewWindowAdmitsAgain(t *testing.T) {
	store := newFakeRateStore()
	svc := NewAdmissionService(store, defaultRateConfig())
	ctx := context.Background()
	ip := "203.0.113.7"

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.Record(ctx, ip))
	}
	require.NotNil(t, svc.Check(ctx, nil, ip))

	// Simulate the per-IP window expiring; the daily counter remains.
	store.counts[ipKey(ip)] = 0
	assert.Nil(t, svc.Check(ctx, nil, ip))
}

func TestAdmissionFailsClosedOnZeroLimit(t *testing.T) {
	cfg := defaultRateConfig()
	cfg.PerIPLimit = 0
	svc := NewAdmissionService(newFakeRateStore(), cfg)

	apiErr := svc.Check(context.Background(), nil, "203.0.113.7")
	require.NotNil(t, apiErr)
	assert.Equal(t, types.ERROR_RATE_LIMITED, apiErr.Code)
}

func TestAdmissionFailsClosedOnZeroWindow(t *testing.T) {
	cfg := defaultRateConfig()
	cfg.WindowMinutes = 0
	svc := NewAdmissionService(newFakeRateStore(), cfg)

	assert.NotNil(t, svc.Check(context.Background(), nil, "203.0.113.7"))
}

func TestAdmissionDailyLimit(t *testing.T) {
	store := newFakeRateStore()
	cfg := defaultRateConfig()
	cfg.DailyLimit = 3
	svc := NewAdmissionService(store, cfg)
	ctx := context.Background()

	// Distinct IPs so the per-IP counter never trips.
	ips := []string{"203.0.113.1", "203.0.113.2", "203.0.113.3", "203.0.113.4"}
	for i, ip := range ips[:3] {
		require.Nil(t, svc.Check(ctx, nil, ip), "request %d", i+1)
		require.NoError(t, svc.Record(ctx, ip))
	}

	apiErr := svc.Check(ctx, nil, ips[3])
	require.NotNil(t, apiErr)
	assert.Equal(t, types.ERROR_RATE_LIMITED, apiErr.Code)
}

func TestAdmissionStoreOutageIsInternalError(t *testing.T) {
	store := newFakeRateStore()
	store.countErr = errors.New("connection refused")
	svc := NewAdmissionService(store, defaultRateConfig())

	apiErr := svc.Check(context.Background(), nil, "203.0.113.7")
	require.NotNil(t, apiErr)
	assert.Equal(t, types.ERROR_INTERNAL, apiErr.Code, "a store outage is not a quota hit")
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
}

func TestAdmissionLoginRequired(t *testing.T) {
	cfg := defaultRateConfig()
	cfg.RequireLogin = true
	svc := NewAdmissionService(newFakeRateStore(), cfg)
	ctx := context.Background()

	apiErr := svc.Check(ctx, nil, "203.0.113.7")
	require.NotNil(t, apiErr)
	assert.Equal(t, types.ERROR_FORBIDDEN, apiErr.Code)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)

	viewer := &utils.UserClaims{ID: "1", Role: types.USER_ROLE_SUBSCRIBER}
	assert.Nil(t, svc.Check(ctx, viewer, "203.0.113.7"))
}

func TestRecordChargesBothCounters(t *testing.T) {
	store := newFakeRateStore()
	svc := NewAdmissionService(store, defaultRateConfig())

	require.NoError(t, svc.Record(context.Background(), "203.0.113.7"))

	assert.Equal(t, int64(1), store.counts[ipKey("203.0.113.7")])
	assert.Equal(t, 10*time.Minute, store.ttls[ipKey("203.0.113.7")])

	daily := dailyKey(time.Now().UTC())
	assert.Equal(t, int64(1), store.counts[daily])
	assert.Greater(t, store.ttls[daily], time.Duration(0))
	assert.LessOrEqual(t, store.ttls[daily], 24*time.Hour)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:       "forwarded-for wins",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.1", "X-Real-IP": "198.51.100.2"},
			remoteAddr: "192.0.2.1:1234",
			want:       "198.51.100.1",
		},
		{
			name:       "invalid forwarded-for falls through to real-ip",
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip", "X-Real-IP": "198.51.100.2"},
			remoteAddr: "192.0.2.1:1234",
			want:       "198.51.100.2",
		},
		{
			name:       "remote addr as last resort",
			remoteAddr: "192.0.2.1:1234",
			want:       "192.0.2.1",
		},
		{
			name:       "ipv6 remote addr",
			remoteAddr: "[2001:db8::1]:443",
			want:       "2001:db8::1",
		},
		{
			name:       "nothing valid defaults to zero address",
			headers:    map[string]string{"X-Forwarded-For": "garbage"},
			remoteAddr: "bogus",
			want:       "0.0.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			for k, v := range tt.headers {
				header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIP(header, tt.remoteAddr))
		})
	}
}

func TestUntilNextUTCMidnight(t *testing.T) {
	now := time.Date(2025, 6, 1, 23, 59, 59, 900_000_000, time.UTC)
	assert.Equal(t, time.Second, untilNextUTCMidnight(now))

	noon := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 12*time.Hour, untilNextUTCMidnight(noon))
}

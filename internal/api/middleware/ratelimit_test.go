package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/dependencies/mocks"
)

type RateLimiterSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	limiter *RateLimiter
}

func TestRateLimiterSuite(t *testing.T) {
	suite.Run(t, new(RateLimiterSuite))
}

func (s *RateLimiterSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	s.limiter = NewRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 1,
		Burst:             1,
		IdleTimeout:       time.Minute,
	}, s.clock)
}

func (s *RateLimiterSuite) TestBucketPerClient() {
	s.True(s.limiter.Allow("10.0.0.1"))
	s.False(s.limiter.Allow("10.0.0.1"))
	s.True(s.limiter.Allow("10.0.0.2"))

	s.clock.Advance(time.Second)
	s.True(s.limiter.Allow("10.0.0.1"))
}

func (s *RateLimiterSuite) TestIdleClientsAreDropped() {
	s.limiter.Allow("10.0.0.1")
	s.limiter.Allow("10.0.0.2")
	s.Equal(2, s.limiter.Clients())

	s.clock.Advance(30 * time.Second)
	s.limiter.Allow("10.0.0.2")

	// 10.0.0.1 has been silent for a minute, 10.0.0.2 for half of one
	s.clock.Advance(30 * time.Second)
	s.limiter.Allow("10.0.0.3")
	s.Equal(2, s.limiter.Clients())

	s.clock.Advance(2 * time.Minute)
	s.limiter.Allow("10.0.0.3")
	s.Equal(1, s.limiter.Clients())
}

func (s *RateLimiterSuite) TestMiddlewareKeysOnHost() {
	handler := s.limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
		req.RemoteAddr = remote
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	s.Equal(http.StatusOK, serve("10.0.0.1:5000"))
	// Same host from another port shares the bucket
	s.Equal(http.StatusTooManyRequests, serve("10.0.0.1:5001"))
	s.Equal(http.StatusOK, serve("10.0.0.2:5000"))
}

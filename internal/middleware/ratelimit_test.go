package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-app/daybook-backend/internal/database"
	"github.com/daybook-app/daybook-backend/internal/middleware"
)

func mockRedisServer(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	database.RedisClient = redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { database.RedisClient.Close() })

	return s
}

func rateLimitedHandler() http.Handler {
	return middleware.RateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func serveFrom(handler http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/entries", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitAllowsRequestsUnderTheLimit(t *testing.T) {
	mockRedisServer(t)
	handler := rateLimitedHandler()

	rec := serveFrom(handler, "198.51.100.7:1234")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitBlocksExcessiveRequests(t *testing.T) {
	s := mockRedisServer(t)
	handler := rateLimitedHandler()

	for i := 0; i < middleware.RateLimitMaxRequests; i++ {
		rec := serveFrom(handler, "198.51.100.8:1234")
		require.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
	}

	rec := serveFrom(handler, "198.51.100.8:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.True(t, s.Exists(middleware.BlockedIPKeyPrefix+"198.51.100.8"), "the IP should be blocked")

	// Once blocked, the IP stays blocked regardless of the counter.
	rec = serveFrom(handler, "198.51.100.8:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Other IPs are unaffected.
	rec = serveFrom(handler, "198.51.100.9:1234")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitCounterMatchesRequests(t *testing.T) {
	s := mockRedisServer(t)
	handler := rateLimitedHandler()

	for i := 0; i < 5; i++ {
		rec := serveFrom(handler, "198.51.100.11:1234")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	count, err := s.Get(middleware.RateLimitKeyPrefix + "198.51.100.11")
	require.NoError(t, err)
	assert.Equal(t, "5", count)
	assert.Greater(t, s.TTL(middleware.RateLimitKeyPrefix+"198.51.100.11"), time.Duration(0),
		"the window TTL should start with the first request")
}

func TestRateLimitConcurrentRequestsAllCounted(t *testing.T) {
	s := mockRedisServer(t)
	handler := rateLimitedHandler()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			serveFrom(handler, "198.51.100.12:1234")
		}()
	}
	wg.Wait()

	count, err := s.Get(middleware.RateLimitKeyPrefix + "198.51.100.12")
	require.NoError(t, err)
	assert.Equal(t, "10", count, "simultaneous first requests must not reset the counter")
}

func TestRateLimitFailsOpenWhenRedisIsDown(t *testing.T) {
	s := mockRedisServer(t)
	s.Close()
	handler := rateLimitedHandler()

	rec := serveFrom(handler, "198.51.100.10:1234")
	assert.Equal(t, http.StatusOK, rec.Code, "requests must pass when Redis is unavailable")
}

package services

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/igor-IT/wi-auth-ms/domain"
)

// LimiterConfig tunes the per-identifier token buckets.
type LimiterConfig struct {
	// Capacity is the bucket size and the number of tokens refilled
	// per RefillWindow.
	Capacity int
	// RefillWindow is the period over which a full Capacity of tokens
	// accumulates.
	RefillWindow time.Duration
	// SweepInterval is how often idle buckets are evicted.
	SweepInterval time.Duration
	// Retention is how long an untouched bucket survives a sweep.
	Retention time.Duration
}

// LimiterService implements domain.RateLimiter with one token bucket
// per identifier. Buckets are created lazily and reclaimed by a
// periodic sweep, bounding memory to active identifiers.
type LimiterService struct {
	config  LimiterConfig
	mu      sync.Mutex
	buckets map[string]*bucket
	stop    chan struct{}
	done    chan struct{}
}

type bucket struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewLimiterService creates a stopped limiter; call Start to run the
// eviction sweep.
func NewLimiterService(config LimiterConfig) *LimiterService {
	if config.Capacity <= 0 {
		config.Capacity = 20
	}
	if config.RefillWindow <= 0 {
		config.RefillWindow = time.Minute
	}
	if config.SweepInterval <= 0 {
		config.SweepInterval = time.Hour
	}
	if config.Retention <= 0 {
		config.Retention = time.Hour
	}
	return &LimiterService{
		config:  config,
		buckets: make(map[string]*bucket),
	}
}

// TryConsume implements domain.RateLimiter. It admits the request and
// takes one token when available, creating the bucket on first use.
func (s *LimiterService) TryConsume(identifier string) bool {
	now := time.Now()

	s.mu.Lock()
	b, ok := s.buckets[identifier]
	if !ok {
		limit := rate.Limit(float64(s.config.Capacity) / s.config.RefillWindow.Seconds())
		b = &bucket{limiter: rate.NewLimiter(limit, s.config.Capacity)}
		s.buckets[identifier] = b
	}
	b.lastAccess = now
	s.mu.Unlock()

	// rate.Limiter serializes its own token accounting, so concurrent
	// consumers of one identifier never double-spend a token.
	return b.limiter.Allow()
}

// Start launches the background eviction sweep.
func (s *LimiterService) Start() {
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.config.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.evictIdle(time.Now())
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the eviction sweep. Idempotent.
func (s *LimiterService) Stop() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop = nil
}

func (s *LimiterService) evictIdle(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for identifier, b := range s.buckets {
		if now.Sub(b.lastAccess) > s.config.Retention {
			delete(s.buckets, identifier)
		}
	}
}

// Compile-time interface compliance verification
var _ domain.RateLimiter = (*LimiterService)(nil)

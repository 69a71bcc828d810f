package redisstore

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"classroom-server/services/session-api/internal/domain/session"
	"classroom-server/services/session-api/internal/infrastructure/metrics"
)

// Sweeper reclaims expired sessions. The store already attaches a TTL to
// every key, so the sweeper is a second line of defense: it scans session
// expiry keys and deletes room-level keys whose logical window has lapsed,
// without waiting out the grace period. Participant keys are left to their
// own TTL.
type Sweeper struct {
	kv        session.KV
	registry  *session.Registry
	interval  time.Duration
	log       zerolog.Logger
	done      chan struct{}
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewSweeper creates an expiry sweeper over the given KV store.
func NewSweeper(kv session.KV, registry *session.Registry, interval time.Duration, log zerolog.Logger) *Sweeper {
	return &Sweeper{
		kv:       kv,
		registry: registry,
		interval: interval,
		log:      log.With().Str("component", "session-sweeper").Logger(),
		done:     make(chan struct{}),
	}
}

// Start begins the sweep loop in background.
// Safe to call multiple times - only the first call starts the sweeper.
func (s *Sweeper) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		s.wg.Add(1)
		go s.run(ctx)
		s.log.Info().Dur("interval", s.interval).Msg("session sweeper started")
	})
}

// Stop gracefully shuts down the sweeper.
// Safe to call multiple times - only the first call stops the sweeper.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.wg.Wait()
		s.log.Info().Msg("session sweeper stopped")
	})
}

func (s *Sweeper) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Debug().Msg("context cancelled, shutting down sweeper")
			return
		case <-s.done:
			s.log.Debug().Msg("done signal received, shutting down sweeper")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs a single pass over all stored sessions.
func (s *Sweeper) Sweep(ctx context.Context) {
	keys, err := s.kv.Scan(ctx, session.SessionKeyPattern)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to scan session keys")
		return
	}

	now := time.Now().Unix()
	swept := 0

	for _, key := range keys {
		id, ok := sessionIDFromKey(key)
		if !ok {
			continue
		}

		raw, err := s.kv.Get(ctx, key)
		if err != nil {
			continue // reclaimed by TTL between scan and read
		}
		expiredAt, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.log.Warn().Str("key", key).Str("value", raw).Msg("unparseable session expiry, deleting")
			expiredAt = 0
		}

		if now <= expiredAt {
			continue
		}

		if err := s.registry.DeleteSession(ctx, id); err != nil {
			s.log.Warn().Err(err).Str("session_id", id).Msg("failed to delete expired session")
			continue
		}
		metrics.SweeperDeletes.Inc()
		swept++
	}

	if swept > 0 {
		s.log.Info().Int("swept", swept).Msg("expired sessions reclaimed")
	}
}

// sessionIDFromKey extracts <id> from "s:<id>:ea".
func sessionIDFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, "s:") || !strings.HasSuffix(key, ":ea") {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(key, "s:"), ":ea")
	if id == "" {
		return "", false
	}
	return id, true
}

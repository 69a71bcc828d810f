package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrKeyNotFound is returned by KV implementations for absent keys.
	ErrKeyNotFound = errors.New("key not found")
	// ErrSessionNotFound is returned when a session's room-level keys are absent.
	ErrSessionNotFound = errors.New("session not found")
	// ErrParticipantNotFound is returned when a uid has no existence marker key.
	ErrParticipantNotFound = errors.New("participant not found")
)

// KV is the narrow key-value contract the registry persists through.
// A single shared client is used concurrently by all in-flight requests;
// implementations must be safe for concurrent use.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Key schema. Two independent namespaces: `s:<id>:*` holds room-level facts
// shared by every participant of a session, `u:<uid>:*` holds per-participant
// facts with independently minted credentials.
func keySessionExpiredAt(id string) string { return fmt.Sprintf("s:%s:ea", id) }
func keySessionRoomID(id string) string    { return fmt.Sprintf("s:%s:nru", id) }

func keyParticipantUID(uid int64) string      { return fmt.Sprintf("u:%d:uid", uid) }
func keyParticipantSession(uid int64) string  { return fmt.Sprintf("u:%d:sid", uid) }
func keyParticipantUsername(uid int64) string { return fmt.Sprintf("u:%d:um", uid) }
func keyParticipantRTCToken(uid int64) string { return fmt.Sprintf("u:%d:at", uid) }
func keyParticipantWBToken(uid int64) string  { return fmt.Sprintf("u:%d:nrt", uid) }
func keyParticipantRole(uid int64) string     { return fmt.Sprintf("u:%d:nr", uid) }

// SessionKeyPattern matches the expiry key of every stored session.
// The expiry sweeper scans it to reclaim sessions past their window.
const SessionKeyPattern = "s:*:ea"

// Registry owns the session/participant key schema over a KV store.
// Every operation is an independent key read or write; there is no
// multi-key transaction and no rollback on partial failure.
type Registry struct {
	kv    KV
	grace time.Duration // extra store TTL past logical expiry
	log   zerolog.Logger
}

// NewRegistry creates a registry over the given KV store. Keys are written
// with a TTL of the session's remaining lifetime plus grace, so abandoned
// records are reclaimed by the store even if the sweeper never runs.
func NewRegistry(kv KV, grace time.Duration, log zerolog.Logger) *Registry {
	return &Registry{
		kv:    kv,
		grace: grace,
		log:   log.With().Str("component", "session-registry").Logger(),
	}
}

// PutSession writes the two room-level keys for a session. Calling it again
// with the same id is an idempotent overwrite.
func (r *Registry) PutSession(ctx context.Context, id string, expiredAt int64, roomID string) error {
	ttl := r.storeTTL(expiredAt)
	if err := r.kv.Set(ctx, keySessionExpiredAt(id), strconv.FormatInt(expiredAt, 10), ttl); err != nil {
		return fmt.Errorf("put session expiry: %w", err)
	}
	if err := r.kv.Set(ctx, keySessionRoomID(id), roomID, ttl); err != nil {
		return fmt.Errorf("put session room id: %w", err)
	}
	return nil
}

// GetSessionMeta reads a session's room-level facts.
func (r *Registry) GetSessionMeta(ctx context.Context, id string) (SessionMeta, error) {
	raw, err := r.kv.Get(ctx, keySessionExpiredAt(id))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return SessionMeta{}, ErrSessionNotFound
		}
		return SessionMeta{}, fmt.Errorf("get session expiry: %w", err)
	}

	expiredAt, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return SessionMeta{}, fmt.Errorf("parse session expiry %q: %w", raw, err)
	}

	roomID, err := r.kv.Get(ctx, keySessionRoomID(id))
	if err != nil && !errors.Is(err, ErrKeyNotFound) {
		return SessionMeta{}, fmt.Errorf("get session room id: %w", err)
	}

	return SessionMeta{ExpiredAt: expiredAt, WhiteboardRoomID: roomID}, nil
}

// PutParticipant writes the six per-participant keys, overwriting any prior
// state for that uid. The uid marker key is written first: it is the
// existence contract GetParticipant checks.
func (r *Registry) PutParticipant(ctx context.Context, rec ParticipantRecord, expiredAt int64) error {
	ttl := r.storeTTL(expiredAt)
	writes := []struct {
		key   string
		value string
	}{
		{keyParticipantUID(rec.UID), strconv.FormatInt(rec.UID, 10)},
		{keyParticipantSession(rec.UID), rec.SessionID},
		{keyParticipantUsername(rec.UID), rec.Username},
		{keyParticipantRTCToken(rec.UID), rec.RTCToken},
		{keyParticipantWBToken(rec.UID), rec.WhiteboardToken},
		{keyParticipantRole(rec.UID), string(rec.Role)},
	}
	for _, w := range writes {
		if err := r.kv.Set(ctx, w.key, w.value, ttl); err != nil {
			return fmt.Errorf("put participant key %s: %w", w.key, err)
		}
	}
	return nil
}

// GetParticipant reads a participant record by uid. A missing uid marker key
// means the uid never created or joined a session.
func (r *Registry) GetParticipant(ctx context.Context, uid int64) (ParticipantRecord, error) {
	if _, err := r.kv.Get(ctx, keyParticipantUID(uid)); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return ParticipantRecord{}, ErrParticipantNotFound
		}
		return ParticipantRecord{}, fmt.Errorf("get participant marker: %w", err)
	}

	rec := ParticipantRecord{UID: uid}
	reads := []struct {
		key  string
		dest *string
	}{
		{keyParticipantSession(uid), &rec.SessionID},
		{keyParticipantUsername(uid), &rec.Username},
		{keyParticipantRTCToken(uid), &rec.RTCToken},
		{keyParticipantWBToken(uid), &rec.WhiteboardToken},
	}
	for _, rd := range reads {
		val, err := r.kv.Get(ctx, rd.key)
		if err != nil && !errors.Is(err, ErrKeyNotFound) {
			return ParticipantRecord{}, fmt.Errorf("get participant key %s: %w", rd.key, err)
		}
		*rd.dest = val
	}

	role, err := r.kv.Get(ctx, keyParticipantRole(uid))
	if err != nil && !errors.Is(err, ErrKeyNotFound) {
		return ParticipantRecord{}, fmt.Errorf("get participant role: %w", err)
	}
	rec.Role = Role(role)

	return rec, nil
}

// DeleteSession removes a session's room-level keys. Participant keys are
// left to their own store TTL.
func (r *Registry) DeleteSession(ctx context.Context, id string) error {
	return r.kv.Del(ctx, keySessionExpiredAt(id), keySessionRoomID(id))
}

func (r *Registry) storeTTL(expiredAt int64) time.Duration {
	remaining := time.Until(time.Unix(expiredAt, 0))
	if remaining < 0 {
		remaining = 0
	}
	return remaining + r.grace
}

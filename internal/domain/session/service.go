package session

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"classroom-server/services/session-api/internal/infrastructure/metrics"
	"classroom-server/services/session-api/internal/utils/idgen"
	"classroom-server/services/session-api/internal/utils/platformerrors"
)

// TokenBuilder mints an RTC channel credential for one participant.
// Deterministic given its inputs; the publisher capability is implied.
type TokenBuilder interface {
	BuildToken(channel string, uid int64, expireAt time.Time) (string, error)
}

// RoomProvisioner provisions whiteboard rooms and mints room credentials.
type RoomProvisioner interface {
	CreateRoom(ctx context.Context) (string, error)
	CreateRoomToken(ctx context.Context, roomID string, lifespan time.Duration, role Role) (string, error)
}

// Service defines the session lifecycle operations.
type Service interface {
	CreateSession(ctx context.Context, username string) (int64, error)
	GetSession(ctx context.Context, uid int64) (*SessionDTO, error)
	JoinSession(ctx context.Context, sessionID, username string) (int64, error)
}

// Identity carries the application identifiers embedded into client-facing
// credential views.
type Identity struct {
	AgoraAppID           string
	NetlessAppIdentifier string
	NetlessSDKToken      string
}

type service struct {
	registry   *Registry
	tokens     TokenBuilder
	rooms      RoomProvisioner
	identity   Identity
	sessionTTL time.Duration
	now        func() time.Time
	log        zerolog.Logger
}

// NewService creates a session service. sessionTTL is the single validity
// window applied to a session and to every credential minted for it.
func NewService(
	registry *Registry,
	tokens TokenBuilder,
	rooms RoomProvisioner,
	identity Identity,
	sessionTTL time.Duration,
	log zerolog.Logger,
) Service {
	return &service{
		registry:   registry,
		tokens:     tokens,
		rooms:      rooms,
		identity:   identity,
		sessionTTL: sessionTTL,
		now:        time.Now,
		log:        log.With().Str("component", "session-service").Logger(),
	}
}

// CreateSession provisions a new session and registers its creator as the
// whiteboard admin. All external credentials are fetched before anything is
// written, so a provider failure aborts without leaving partial records.
func (s *service) CreateSession(ctx context.Context, username string) (int64, error) {
	uid, err := idgen.GenerateUID()
	if err != nil {
		return 0, platformerrors.NewError(platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "generate uid", err)
	}
	id, err := idgen.GenerateSessionID()
	if err != nil {
		return 0, platformerrors.NewError(platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "generate session id", err)
	}

	expiredAt := s.now().Add(s.sessionTTL).Unix()

	rtcToken, err := s.tokens.BuildToken(id, uid, time.Unix(expiredAt, 0))
	if err != nil {
		return 0, platformerrors.NewError(platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "build rtc token", err)
	}

	roomID, err := s.rooms.CreateRoom(ctx)
	if err != nil {
		metrics.RecordProviderError("whiteboard")
		return 0, platformerrors.NewError(platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, "provision whiteboard room", err)
	}

	wbToken, err := s.rooms.CreateRoomToken(ctx, roomID, s.sessionTTL, RoleAdmin)
	if err != nil {
		metrics.RecordProviderError("whiteboard")
		return 0, platformerrors.NewError(platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, "mint whiteboard token", err)
	}

	if err := s.registry.PutSession(ctx, id, expiredAt, roomID); err != nil {
		return 0, platformerrors.NewError(platformerrors.LayerStore, platformerrors.ErrorTypeInternal, "persist session", err)
	}
	rec := ParticipantRecord{
		UID:             uid,
		SessionID:       id,
		Username:        username,
		RTCToken:        rtcToken,
		WhiteboardToken: wbToken,
		Role:            RoleAdmin,
	}
	if err := s.registry.PutParticipant(ctx, rec, expiredAt); err != nil {
		return 0, platformerrors.NewError(platformerrors.LayerStore, platformerrors.ErrorTypeInternal, "persist participant", err)
	}

	metrics.RecordSessionCreated()
	s.log.Info().
		Str("session_id", id).
		Int64("uid", uid).
		Str("room_id", roomID).
		Int64("expired_at", expiredAt).
		Msg("session created")

	return uid, nil
}

// GetSession assembles the DTO for a uid from store reads only.
func (s *service) GetSession(ctx context.Context, uid int64) (*SessionDTO, error) {
	rec, err := s.registry.GetParticipant(ctx, uid)
	if err != nil {
		if errors.Is(err, ErrParticipantNotFound) {
			return nil, platformerrors.NewError(platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "you have not joined or created any session", err)
		}
		return nil, platformerrors.NewError(platformerrors.LayerStore, platformerrors.ErrorTypeInternal, "read participant", err)
	}

	meta, err := s.registry.GetSessionMeta(ctx, rec.SessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, platformerrors.NewError(platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "session no longer exists", err)
		}
		return nil, platformerrors.NewError(platformerrors.LayerStore, platformerrors.ErrorTypeInternal, "read session", err)
	}

	if s.now().Unix() > meta.ExpiredAt {
		return nil, platformerrors.NewError(platformerrors.LayerDomain, platformerrors.ErrorTypeExpired, "session has expired", nil)
	}

	metrics.RecordSessionRead()
	return s.buildDTO(rec, meta), nil
}

// JoinSession registers a new participant in an existing session. The joiner
// inherits the session's original expiry; it is never recomputed or extended,
// so a late joiner gets whatever window remains.
func (s *service) JoinSession(ctx context.Context, sessionID, username string) (int64, error) {
	meta, err := s.registry.GetSessionMeta(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return 0, platformerrors.NewError(platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "session does not exist", err)
		}
		return 0, platformerrors.NewError(platformerrors.LayerStore, platformerrors.ErrorTypeInternal, "read session", err)
	}

	if s.now().Unix() > meta.ExpiredAt {
		return 0, platformerrors.NewError(platformerrors.LayerDomain, platformerrors.ErrorTypeExpired, "session has expired", nil)
	}

	uid, err := idgen.GenerateUID()
	if err != nil {
		return 0, platformerrors.NewError(platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "generate uid", err)
	}

	rtcToken, err := s.tokens.BuildToken(sessionID, uid, time.Unix(meta.ExpiredAt, 0))
	if err != nil {
		return 0, platformerrors.NewError(platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "build rtc token", err)
	}

	// Joiners never provision rooms; they always receive writer, not admin.
	wbToken, err := s.rooms.CreateRoomToken(ctx, meta.WhiteboardRoomID, s.sessionTTL, RoleWriter)
	if err != nil {
		metrics.RecordProviderError("whiteboard")
		return 0, platformerrors.NewError(platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, "mint whiteboard token", err)
	}

	rec := ParticipantRecord{
		UID:             uid,
		SessionID:       sessionID,
		Username:        username,
		RTCToken:        rtcToken,
		WhiteboardToken: wbToken,
		Role:            RoleWriter,
	}
	if err := s.registry.PutParticipant(ctx, rec, meta.ExpiredAt); err != nil {
		return 0, platformerrors.NewError(platformerrors.LayerStore, platformerrors.ErrorTypeInternal, "persist participant", err)
	}

	metrics.RecordSessionJoined()
	s.log.Info().
		Str("session_id", sessionID).
		Int64("uid", uid).
		Msg("session joined")

	return uid, nil
}

func (s *service) buildDTO(rec ParticipantRecord, meta SessionMeta) *SessionDTO {
	return &SessionDTO{
		ID:        rec.SessionID,
		UID:       rec.UID,
		Username:  rec.Username,
		ExpiredAt: meta.ExpiredAt,
		Agora: AgoraSession{
			AppID:   s.identity.AgoraAppID,
			Channel: rec.SessionID,
			UID:     rec.UID,
			Token:   rec.RTCToken,
		},
		Netless: NetlessSession{
			UUID:          meta.WhiteboardRoomID,
			Token:         rec.WhiteboardToken,
			AppIdentifier: s.identity.NetlessAppIdentifier,
			Role:          rec.Role,
			SDKToken:      s.identity.NetlessSDKToken,
		},
	}
}

package session_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"classroom-server/services/session-api/internal/domain/session"
	"classroom-server/services/session-api/internal/infrastructure/kvstore"
	"classroom-server/services/session-api/internal/utils/platformerrors"
)

type mockTokenBuilder struct {
	BuildTokenFunc func(channel string, uid int64, expireAt time.Time) (string, error)
}

func (m *mockTokenBuilder) BuildToken(channel string, uid int64, expireAt time.Time) (string, error) {
	if m.BuildTokenFunc != nil {
		return m.BuildTokenFunc(channel, uid, expireAt)
	}
	return fmt.Sprintf("rtc:%s:%d", channel, uid), nil
}

type mockRoomProvisioner struct {
	CreateRoomFunc      func(ctx context.Context) (string, error)
	CreateRoomTokenFunc func(ctx context.Context, roomID string, lifespan time.Duration, role session.Role) (string, error)
}

func (m *mockRoomProvisioner) CreateRoom(ctx context.Context) (string, error) {
	if m.CreateRoomFunc != nil {
		return m.CreateRoomFunc(ctx)
	}
	return "room-uuid", nil
}

func (m *mockRoomProvisioner) CreateRoomToken(ctx context.Context, roomID string, lifespan time.Duration, role session.Role) (string, error) {
	if m.CreateRoomTokenFunc != nil {
		return m.CreateRoomTokenFunc(ctx, roomID, lifespan, role)
	}
	return fmt.Sprintf("wb:%s:%s", roomID, role), nil
}

var testIdentity = session.Identity{
	AgoraAppID:           "agora-app",
	NetlessAppIdentifier: "netless-app",
	NetlessSDKToken:      "netless-sdk-token",
}

func newTestService(ttl time.Duration, tokens session.TokenBuilder, rooms session.RoomProvisioner) (session.Service, *session.Registry) {
	reg := session.NewRegistry(kvstore.NewMemory(), time.Hour, zerolog.Nop())
	if tokens == nil {
		tokens = &mockTokenBuilder{}
	}
	if rooms == nil {
		rooms = &mockRoomProvisioner{}
	}
	svc := session.NewService(reg, tokens, rooms, testIdentity, ttl, zerolog.Nop())
	return svc, reg
}

func TestService_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	svc, reg := newTestService(time.Hour, nil, nil)

	before := time.Now().Unix()
	uid, err := svc.CreateSession(ctx, "alice")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if uid < 100000000 || uid > 999999999 {
		t.Errorf("CreateSession() uid = %d, want 9-digit uid", uid)
	}

	dto, err := svc.GetSession(ctx, uid)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}

	if dto.UID != uid {
		t.Errorf("GetSession() UID = %d, want %d", dto.UID, uid)
	}
	if dto.Username != "alice" {
		t.Errorf("GetSession() Username = %q, want %q", dto.Username, "alice")
	}
	if len(dto.ID) != 32 {
		t.Errorf("GetSession() session id length = %d, want 32", len(dto.ID))
	}
	if want := before + 3600; dto.ExpiredAt < want || dto.ExpiredAt > want+5 {
		t.Errorf("GetSession() ExpiredAt = %d, want about %d", dto.ExpiredAt, want)
	}

	if dto.Agora.AppID != testIdentity.AgoraAppID {
		t.Errorf("Agora.AppID = %q, want %q", dto.Agora.AppID, testIdentity.AgoraAppID)
	}
	if dto.Agora.Channel != dto.ID {
		t.Errorf("Agora.Channel = %q, want session id %q", dto.Agora.Channel, dto.ID)
	}
	if dto.Agora.UID != uid {
		t.Errorf("Agora.UID = %d, want %d", dto.Agora.UID, uid)
	}
	if want := fmt.Sprintf("rtc:%s:%d", dto.ID, uid); dto.Agora.Token != want {
		t.Errorf("Agora.Token = %q, want %q", dto.Agora.Token, want)
	}

	if dto.Netless.UUID != "room-uuid" {
		t.Errorf("Netless.UUID = %q, want %q", dto.Netless.UUID, "room-uuid")
	}
	if dto.Netless.Role != session.RoleAdmin {
		t.Errorf("Netless.Role = %q, want %q", dto.Netless.Role, session.RoleAdmin)
	}
	if dto.Netless.AppIdentifier != testIdentity.NetlessAppIdentifier {
		t.Errorf("Netless.AppIdentifier = %q, want %q", dto.Netless.AppIdentifier, testIdentity.NetlessAppIdentifier)
	}
	if dto.Netless.SDKToken != testIdentity.NetlessSDKToken {
		t.Errorf("Netless.SDKToken = %q, want %q", dto.Netless.SDKToken, testIdentity.NetlessSDKToken)
	}

	// The creator's record must be retrievable from the registry directly.
	rec, err := reg.GetParticipant(ctx, uid)
	if err != nil {
		t.Fatalf("GetParticipant() error = %v", err)
	}
	if rec.Role != session.RoleAdmin {
		t.Errorf("participant Role = %q, want %q", rec.Role, session.RoleAdmin)
	}
}

func TestService_JoinInheritsExpiryAndWriterRole(t *testing.T) {
	ctx := context.Background()
	svc, reg := newTestService(time.Hour, nil, nil)

	creatorUID, err := svc.CreateSession(ctx, "alice")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	creator, err := svc.GetSession(ctx, creatorUID)
	if err != nil {
		t.Fatalf("GetSession(creator) error = %v", err)
	}

	joinerUID, err := svc.JoinSession(ctx, creator.ID, "bob")
	if err != nil {
		t.Fatalf("JoinSession() error = %v", err)
	}
	if joinerUID == creatorUID {
		t.Errorf("JoinSession() uid = %d, want distinct from creator's", joinerUID)
	}

	joiner, err := svc.GetSession(ctx, joinerUID)
	if err != nil {
		t.Fatalf("GetSession(joiner) error = %v", err)
	}

	if joiner.ID != creator.ID {
		t.Errorf("joiner session id = %q, want %q", joiner.ID, creator.ID)
	}
	if joiner.ExpiredAt != creator.ExpiredAt {
		t.Errorf("joiner ExpiredAt = %d, want inherited %d", joiner.ExpiredAt, creator.ExpiredAt)
	}
	if joiner.Username != "bob" {
		t.Errorf("joiner Username = %q, want %q", joiner.Username, "bob")
	}
	if joiner.Netless.Role != session.RoleWriter {
		t.Errorf("joiner Role = %q, want %q", joiner.Netless.Role, session.RoleWriter)
	}
	if joiner.Netless.UUID != creator.Netless.UUID {
		t.Errorf("joiner room = %q, want shared room %q", joiner.Netless.UUID, creator.Netless.UUID)
	}
	if joiner.Agora.Token == creator.Agora.Token {
		t.Errorf("joiner RTC token matches creator's, want independently minted token")
	}

	// Both participant records coexist under the same session.
	if _, err := reg.GetParticipant(ctx, creatorUID); err != nil {
		t.Errorf("creator record lost after join: %v", err)
	}
}

func TestService_GetSession_UnknownUID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(time.Hour, nil, nil)

	_, err := svc.GetSession(ctx, 123456789)
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("GetSession() error = %v, want not-found platform error", err)
	}
}

func TestService_JoinSession_UnknownSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(time.Hour, nil, nil)

	_, err := svc.JoinSession(ctx, "nonexistent", "bob")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Errorf("JoinSession() error = %v, want not-found platform error", err)
	}
}

func TestService_ExpiredSessionRejected(t *testing.T) {
	ctx := context.Background()
	// A negative TTL creates a session that is already past its window.
	svc, reg := newTestService(-time.Hour, nil, nil)

	uid, err := svc.CreateSession(ctx, "alice")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	if _, err := svc.GetSession(ctx, uid); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeExpired) {
		t.Errorf("GetSession() error = %v, want expired platform error", err)
	}

	rec, err := reg.GetParticipant(ctx, uid)
	if err != nil {
		t.Fatalf("GetParticipant() error = %v", err)
	}
	if _, err := svc.JoinSession(ctx, rec.SessionID, "bob"); !platformerrors.IsErrorType(err, platformerrors.ErrorTypeExpired) {
		t.Errorf("JoinSession() error = %v, want expired platform error", err)
	}
}

func TestService_CreateSession_RoomProvisionFailureAborts(t *testing.T) {
	ctx := context.Background()
	rooms := &mockRoomProvisioner{
		CreateRoomFunc: func(ctx context.Context) (string, error) {
			return "", errors.New("upstream unavailable")
		},
	}
	kv := kvstore.NewMemory()
	reg := session.NewRegistry(kv, time.Hour, zerolog.Nop())
	svc := session.NewService(reg, &mockTokenBuilder{}, rooms, testIdentity, time.Hour, zerolog.Nop())

	_, err := svc.CreateSession(ctx, "alice")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal) {
		t.Fatalf("CreateSession() error = %v, want external platform error", err)
	}

	// No partial records may survive an aborted create.
	for _, pattern := range []string{"s:*", "u:*"} {
		keys, scanErr := kv.Scan(ctx, pattern)
		if scanErr != nil {
			t.Fatalf("Scan(%q) error = %v", pattern, scanErr)
		}
		if len(keys) != 0 {
			t.Errorf("Scan(%q) = %v, want no keys after aborted create", pattern, keys)
		}
	}
}

func TestService_CreateSession_TokenMintFailureAborts(t *testing.T) {
	ctx := context.Background()
	rooms := &mockRoomProvisioner{
		CreateRoomTokenFunc: func(ctx context.Context, roomID string, lifespan time.Duration, role session.Role) (string, error) {
			return "", errors.New("token endpoint down")
		},
	}
	kv := kvstore.NewMemory()
	reg := session.NewRegistry(kv, time.Hour, zerolog.Nop())
	svc := session.NewService(reg, &mockTokenBuilder{}, rooms, testIdentity, time.Hour, zerolog.Nop())

	_, err := svc.CreateSession(ctx, "alice")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal) {
		t.Fatalf("CreateSession() error = %v, want external platform error", err)
	}

	keys, scanErr := kv.Scan(ctx, "s:*")
	if scanErr != nil {
		t.Fatalf("Scan() error = %v", scanErr)
	}
	if len(keys) != 0 {
		t.Errorf("Scan() = %v, want no session keys after aborted create", keys)
	}
}

func TestService_JoinSession_RoleRequested(t *testing.T) {
	ctx := context.Background()

	var roles []session.Role
	rooms := &mockRoomProvisioner{
		CreateRoomTokenFunc: func(ctx context.Context, roomID string, lifespan time.Duration, role session.Role) (string, error) {
			roles = append(roles, role)
			return "wb-token", nil
		},
	}
	svc, _ := newTestService(time.Hour, nil, rooms)

	uid, err := svc.CreateSession(ctx, "alice")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	dto, err := svc.GetSession(ctx, uid)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if _, err := svc.JoinSession(ctx, dto.ID, "bob"); err != nil {
		t.Fatalf("JoinSession() error = %v", err)
	}

	want := []session.Role{session.RoleAdmin, session.RoleWriter}
	if len(roles) != len(want) {
		t.Fatalf("CreateRoomToken called %d times, want %d", len(roles), len(want))
	}
	for i, role := range want {
		if roles[i] != role {
			t.Errorf("CreateRoomToken call %d role = %q, want %q", i, roles[i], role)
		}
	}
}

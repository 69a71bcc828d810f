package session

// Role is a participant's whiteboard permission level.
type Role string

const (
	// RoleAdmin is assigned to the participant that created the session.
	RoleAdmin Role = "admin"
	// RoleWriter is assigned to every participant that joins an existing session.
	RoleWriter Role = "writer"
	// RoleReader is a read-only role. No current flow assigns it; it is kept
	// for forward compatibility with spectator clients.
	RoleReader Role = "reader"
)

// SessionMeta holds the room-level facts of a session, shared by all of its
// participants. Both fields are set once at creation and never updated.
type SessionMeta struct {
	ExpiredAt        int64  // unix seconds; not extended on join
	WhiteboardRoomID string // externally provisioned, opaque
}

// ParticipantRecord is one user's presence within a session. Tokens are
// minted at the join event that produced the record and are never reused.
type ParticipantRecord struct {
	UID             int64
	SessionID       string
	Username        string
	RTCToken        string
	WhiteboardToken string
	Role            Role
}

// AgoraSession is the RTC channel view returned to clients.
type AgoraSession struct {
	AppID   string `json:"appId"`
	Channel string `json:"channel"`
	UID     int64  `json:"uid"`
	Token   string `json:"token"`
}

// NetlessSession is the whiteboard room view returned to clients.
type NetlessSession struct {
	UUID          string `json:"uuid"`
	Token         string `json:"token"`
	AppIdentifier string `json:"appIdentifier"`
	Role          Role   `json:"role"`
	SDKToken      string `json:"sdkToken"`
}

// SessionDTO combines session, participant and credential views for one uid.
type SessionDTO struct {
	ID        string         `json:"id"`
	UID       int64          `json:"uid"`
	Username  string         `json:"username"`
	ExpiredAt int64          `json:"expiredAt"`
	Agora     AgoraSession   `json:"agora"`
	Netless   NetlessSession `json:"netless"`
}

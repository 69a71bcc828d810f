// Package session contains HTTP request DTOs for session endpoints.
package session

// CreateSessionRequest is the body for creating a session. The username is
// client-supplied and stored unvalidated.
type CreateSessionRequest struct {
	Username string `json:"username"`
}

// JoinSessionRequest is the body for joining an existing session.
type JoinSessionRequest struct {
	Username string `json:"username"`
}

// Package sessionapi implements the session-api service, the session broker
// for a real-time collaborative classroom.
//
// The service provides:
//   - Session creation with RTC and whiteboard credential minting
//   - Session joins with inherited expiry and writer role
//   - Session DTO assembly from pure store reads
//   - Platform JS-SDK URL signing (WeChat jsapi ticket + SHA-1)
//   - Expired-session reclamation via store TTLs and a background sweeper
//
// Persistence is a Redis key-value store shared by all in-flight requests;
// an in-memory store backs local development and tests.
package sessionapi

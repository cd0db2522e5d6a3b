// Package session holds the current authenticated identity and persists it
// through a small key-value capability interface.
//
// The Manager exposes login/logout transitions and a Restore operation that
// rehydrates state on startup. Persistence is abstracted behind Store
// (get/set/delete) so the login/logout logic is testable without a real
// backend; MemoryStore and a Redis-backed RedisStore are provided. Corrupt
// persisted state is cleared silently during Restore — it never propagates
// as an error to the caller.
package session

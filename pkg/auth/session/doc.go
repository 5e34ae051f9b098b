// Package session provides distributed session management.
//
// This package defines the session manager interface and supports multiple storage backends.
// The default implementation is in-memory, but it is designed to support Redis, Memcached, etc.
package session

// Package session provides the persistence hook between agent runs: a small
// Store interface plus an in-memory implementation. Durable deployments
// supply their own Store; the core only requires Get/Save/Delete semantics.
package session

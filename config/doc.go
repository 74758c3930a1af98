// Package config provides typed access to queuectl's small, closed set
// of runtime settings, persisted in the store's kv table rather than
// environment variables: max-retries, backoff-base,
// poll-interval-seconds and stuck-timeout-seconds.
//
// Config mirrors the shape of store's bun models — each key has a Go
// type, a default and a validation rule — but values are runtime data,
// not schema, so defaults and validation live here instead of in bun
// struct tags.
package config

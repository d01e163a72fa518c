// Package controller holds the HTTP handlers. Each controller receives its
// store and mailer through small consumer-side interfaces so dependencies
// are injected at startup and swappable in tests.
package controller

// Queue accepts background email jobs. The request path never waits on the
// job itself; a failed dispatch is logged by the queue, not surfaced to the
// client.
type Queue interface {
	Enqueue(name string, run func() error)
}

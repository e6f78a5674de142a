// Package notifications delivers ntfy push messages when a transfer
// finishes or fails.
//
// NewService returns a noop implementation when no topic is configured, so
// callers never branch on configuration. Delivery is best effort: callers
// log returned errors and carry on.
package notifications

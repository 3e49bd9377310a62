package typesense

import "time"

// Observer receives request executor events. Implementations must be safe
// for concurrent use. A prometheus-backed implementation lives in
// pkg/observe.
type Observer interface {
	// OnRequest is called after every attempt. status is 0 when the attempt
	// failed before a response was received.
	OnRequest(method, endpoint string, status int, duration time.Duration)
	// OnRetry is called before an attempt is retried.
	OnRetry(method, endpoint string, attempt uint)
	// OnNodeHealthChange is called when a node transitions between healthy
	// and unhealthy.
	OnNodeHealthChange(node Node, healthy bool)
}

type nopObserver struct{}

func (nopObserver) OnRequest(string, string, int, time.Duration) {}
func (nopObserver) OnRetry(string, string, uint)                 {}
func (nopObserver) OnNodeHealthChange(Node, bool)                {}

package backend

// Clipboard exposes the single clipboard write spec.md §6 names; reading
// the clipboard is out of scope — the engine never needs to read it, only
// to publish a selection's text.
type Clipboard interface {
	CopyToClipboard(data []byte) error
}

// TimerHandle is an opaque timestamp returned by Timer.QueryTimer.
type TimerHandle interface{}

// Timer is the platform clock spec.md §6 names (query_timer,
// check_timeout). The engine's own suspend/resume layout pass
// (engine/layout's State, driven by a plain time.Duration budget) does
// not go through this interface — it has no reason to abstract over
// Go's monotonic clock. Timer exists for a host that wants the engine's
// own notion of "out of time" to line up with a platform tick it
// controls (a fixed-step render loop, a watchdog budget) rather than
// wall-clock time.
type Timer interface {
	QueryTimer() TimerHandle
	CheckTimeout(start TimerHandle, microseconds int64) bool
}

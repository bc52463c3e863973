package outbound

// TaskDispatcher abstracts the shared worker pool; satisfied by *ants.Pool.
type TaskDispatcher interface {
	Submit(task func()) error
}

package tui

// ChannelReporter adapts domain.ErrorReporter to a channel for Bubble Tea.
type ChannelReporter struct {
	ch chan error
}

// NewChannelReporter creates a reporter with a small buffer.
func NewChannelReporter() *ChannelReporter {
	return &ChannelReporter{ch: make(chan error, 8)}
}

// Report sends err to the channel (non-blocking if full).
func (r *ChannelReporter) Report(err error) {
	select {
	case r.ch <- err:
	default: // Non-blocking if channel full
	}
}

// C returns the receive side of the channel
func (r *ChannelReporter) C() <-chan error {
	return r.ch
}

package cartesian

// FrameScheduler coalesces render requests until the host's next frame.
// It is either idle or has one render pending.
type FrameScheduler struct {
	render  func()
	pending bool
}

// NewFrameScheduler creates an idle scheduler around render.
func NewFrameScheduler(render func()) *FrameScheduler {
	return &FrameScheduler{render: render}
}

// Schedule requests a render. It reports whether the scheduler was idle;
// further requests before the next Flush are absorbed.
func (s *FrameScheduler) Schedule() bool {
	if s.pending {
		return false
	}
	s.pending = true
	return true
}

// Pending reports whether a render is waiting for the next frame.
func (s *FrameScheduler) Pending() bool { return s.pending }

// Flush runs the pending render, if any. Hosts call it once per frame.
func (s *FrameScheduler) Flush() bool {
	if !s.pending {
		return false
	}
	s.pending = false
	if s.render != nil {
		s.render()
	}
	return true
}

// Cancel drops a pending render.
func (s *FrameScheduler) Cancel() { s.pending = false }

package sim

// Input is the held-key snapshot the app shell records between ticks.
// Step reads it exactly once per tick. Jump is edge-triggered: only a
// released-to-pressed transition arms the latch, and Step consumes it.
type Input struct {
	Left, Right, Up, Down bool
	Jump, Fire            bool

	jumpLatch bool
}

// SetJump records the jump key state.
func (in *Input) SetJump(pressed bool) {
	if pressed && !in.Jump {
		in.jumpLatch = true
	}
	in.Jump = pressed
}

// Clear releases every key and drops a pending jump.
func (in *Input) Clear() {
	*in = Input{}
}

// take returns the snapshot for this tick and consumes the jump latch.
func (in *Input) take() (Input, bool) {
	snap := *in
	edge := in.jumpLatch
	in.jumpLatch = false
	return snap, edge
}

package core

import (
	"picoped/protocol"
)

// recordingOutputs keeps every committed set of levels with its commit time
type recordingOutputs struct {
	clock  Clock
	levels []OutputLevels
	times  []uint64
}

func (r *recordingOutputs) Commit(levels OutputLevels) error {
	r.levels = append(r.levels, levels)
	r.times = append(r.times, r.clock.NowMicros())
	return nil
}

// transitions counts pulse level changes, starting from low
func (r *recordingOutputs) transitions() int {
	n := 0
	last := false
	for _, l := range r.levels {
		if l.Pulse != last {
			n++
			last = l.Pulse
		}
	}
	return n
}

type fakeIndicator struct {
	on    bool
	calls int
}

func (f *fakeIndicator) Set(on bool) {
	f.on = on
	f.calls++
}

type testRig struct {
	ctrl      *Controller
	clock     *SoftClock
	outputs   *recordingOutputs
	input     *protocol.FifoBuffer
	indicator *fakeIndicator
}

func newTestRig() *testRig {
	ClearTimingRing()
	clock := NewSoftClock(0)
	outputs := &recordingOutputs{clock: clock}
	input := protocol.NewFifoBuffer(64)
	indicator := &fakeIndicator{}
	ctrl := NewController(Config{
		Clock:     clock,
		Outputs:   outputs,
		Input:     input,
		Indicator: indicator,
	})
	ctrl.Arm()
	return &testRig{
		ctrl:      ctrl,
		clock:     clock,
		outputs:   outputs,
		input:     input,
		indicator: indicator,
	}
}

// send queues bytes and ticks once per byte so each is applied
func (r *testRig) send(cmds string) {
	r.input.Write([]byte(cmds))
	for range cmds {
		r.ctrl.Tick()
	}
}

func (r *testRig) ticks(n int) {
	for i := 0; i < n; i++ {
		r.ctrl.Tick()
	}
}

// reset drops the recorded outputs
func (r *testRig) reset() {
	r.outputs.levels = nil
	r.outputs.times = nil
}

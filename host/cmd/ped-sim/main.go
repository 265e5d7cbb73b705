// ped-sim runs the PED control loop on the host. Command bytes are read
// from stdin, the pulse train is counted instead of driven onto pins.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"picoped/core"
	"picoped/protocol"
)

var (
	interval = flag.Duration("interval", time.Second, "Status print interval")
	dump     = flag.Bool("dump", true, "Dump the timing ring on exit")
	debug    = flag.Bool("debug", false, "Print turn and ignored-byte events as they happen")
	dryRun   = flag.Bool("dry-run", false, "Run on a simulated clock as fast as possible")
)

// countingOutputs counts committed edges; read from the status goroutine
type countingOutputs struct {
	last    bool
	rising  atomic.Uint64
	falling atomic.Uint64
	levels  atomic.Uint32
}

func (c *countingOutputs) Commit(levels core.OutputLevels) error {
	if levels.Pulse != c.last {
		if levels.Pulse {
			c.rising.Add(1)
		} else {
			c.falling.Add(1)
		}
		c.last = levels.Pulse
	}
	var packed uint32
	if levels.Direction {
		packed |= 1
	}
	if levels.Enable {
		packed |= 2
	}
	if levels.LED {
		packed |= 4
	}
	c.levels.Store(packed)
	return nil
}

func main() {
	flag.Parse()

	fmt.Println("PED simulator - type command bytes, Ctrl-D to stop")

	core.SetDebugWriter(func(line string) { fmt.Println(line) })
	core.SetDebugEnabled(*debug)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	input := protocol.NewSyncFifo(256)
	outputs := &countingOutputs{}

	var clock core.Clock = core.NewWallClock()
	if *dryRun {
		clock = core.NewSoftClock(0)
	}

	ctrl := core.NewController(core.Config{
		Clock:   clock,
		Outputs: outputs,
		Input:   input,
	})

	go readStdin(input, cancel)
	go printStatus(ctx, outputs)

	_ = ctrl.Run(ctx)

	stats := ctrl.Stats()
	s := ctrl.Snapshot()
	fmt.Printf("ticks=%d rising=%d falling=%d late=%d turns=%d\n",
		stats.Ticks, stats.RisingEdges, stats.FallingEdges, stats.LateEdges, stats.TurnsCompleted)
	fmt.Printf("steps_per_turn=%d half_period=%dus (%.2f Hz) turn_active=%v remaining=%d\n",
		s.StepsPerTurn, s.HalfPeriodUS, protocol.FrequencyHz(s.HalfPeriodUS), s.TurnActive, s.RemainingEdges)

	if *dump {
		core.DumpTimingRing()
	}
}

// readStdin queues every input byte; newlines are dropped by the firmware
// like any other unknown byte
func readStdin(input *protocol.SyncFifo, done context.CancelFunc) {
	defer done()
	r := bufio.NewReader(os.Stdin)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return
		}
		for {
			if n, _ := input.Write([]byte{b}); n == 1 {
				break
			}
			time.Sleep(time.Millisecond)
		}
	}
}

func printStatus(ctx context.Context, outputs *countingOutputs) {
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			lv := outputs.levels.Load()
			fmt.Printf("rising=%d falling=%d dir=%v enable=%v led=%v\n",
				outputs.rising.Load(), outputs.falling.Load(), lv&1 != 0, lv&2 != 0, lv&4 != 0)
		}
	}
}

package core

import (
	"context"
)

// Controller runs the PED loop: one edge, then one command poll, forever.
// Both halves run on the caller's goroutine, so a command is always fully
// applied between two edge commits.
type Controller struct {
	state     ControlState
	scheduler *EdgeScheduler
	processor *Processor
	armed     bool
}

// Config wires the controller to its hardware boundary
type Config struct {
	Clock     Clock
	Outputs   OutputDriver
	Input     ByteSource
	Indicator Indicator     // optional activity light
	Commands  *CommandTable // defaults to DefaultCommandTable()
}

// NewController creates a controller in the power-on state
func NewController(cfg Config) *Controller {
	table := cfg.Commands
	if table == nil {
		table = DefaultCommandTable()
	}
	return &Controller{
		state:     NewControlState(),
		scheduler: NewEdgeScheduler(cfg.Clock, cfg.Outputs),
		processor: NewProcessor(cfg.Input, table, cfg.Indicator),
	}
}

// Arm schedules the first edge one half period from now
func (c *Controller) Arm() {
	c.scheduler.Arm(&c.state)
	c.armed = true
}

// Tick emits one edge and then polls for one command
func (c *Controller) Tick() {
	if !c.armed {
		c.Arm()
	}
	c.scheduler.Step(&c.state)
	c.processor.Poll(&c.state)
}

// Run ticks until ctx is done. The firmware passes a context that never
// ends. The context is checked between ticks, never inside one.
func (c *Controller) Run(ctx context.Context) error {
	c.Arm()
	done := ctx.Done()
	for {
		select {
		case <-done:
			return ctx.Err()
		default:
		}
		c.Tick()
	}
}

// Snapshot returns a copy of the control state
func (c *Controller) Snapshot() ControlState {
	return c.state
}

// Stats returns the scheduler counters
func (c *Controller) Stats() SchedulerStats {
	return c.scheduler.Stats()
}

// Processor exposes the command processor counters
func (c *Controller) Processor() *Processor {
	return c.processor
}

package core

// Processor decodes at most one command byte per tick
type Processor struct {
	source    ByteSource
	table     *CommandTable
	indicator Indicator

	received uint32
	ignored  uint32
}

// NewProcessor creates a command processor. indicator may be nil.
func NewProcessor(source ByteSource, table *CommandTable, indicator Indicator) *Processor {
	return &Processor{
		source:    source,
		table:     table,
		indicator: indicator,
	}
}

// Poll does one zero-timeout read and applies the decoded command to s.
// It returns the byte read, if any.
func (p *Processor) Poll(s *ControlState) (byte, bool) {
	b, ok := p.source.TryReadByte()
	if p.indicator != nil {
		p.indicator.Set(ok)
	}
	if !ok {
		return 0, false
	}
	p.received++

	cmd, known := p.table.Lookup(b)
	if !known {
		p.ignored++
		RecordTiming(EvtIgnored, b, s.NextEdgeDeadline, 0, 0)
		if debugEnabled {
			DebugPrintln("ignored " + byteName(b))
		}
		return b, true
	}

	remaining := s.RemainingEdges
	if Apply(s, cmd) {
		switch cmd.Op {
		case OpStartTurn:
			RecordTiming(EvtTurnStart, b, s.NextEdgeDeadline, s.RemainingEdges, 0)
			if debugEnabled {
				DebugPrintln("turn start edges=" + utoa(s.RemainingEdges))
			}
		case OpCancelTurn:
			RecordTiming(EvtTurnCancel, b, s.NextEdgeDeadline, remaining, 0)
		default:
			RecordTiming(EvtCommand, b, s.NextEdgeDeadline, cmd.Arg, 0)
		}
	}
	return b, true
}

// Received returns how many bytes have been read
func (p *Processor) Received() uint32 {
	return p.received
}

// Ignored returns how many bytes did not decode to a command
func (p *Processor) Ignored() uint32 {
	return p.ignored
}

package core

// DebugWriter receives one line of debug output
type DebugWriter func(string)

var (
	debugOut     DebugWriter = func(string) {}
	debugEnabled bool        // printing from the tick loop costs edge margin
)

// SetDebugWriter routes debug output, e.g. to the USB console or stdout
func SetDebugWriter(w DebugWriter) {
	if w == nil {
		w = func(string) {}
	}
	debugOut = w
}

// SetDebugEnabled turns live DebugPrintln output on or off. The timing
// ring records regardless.
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes msg when debug output is enabled
func DebugPrintln(msg string) {
	if debugEnabled {
		debugOut(msg)
	}
}

// TimingEvent is one entry of the post-mortem ring
type TimingEvent struct {
	EventType uint8
	Code      byte   // command byte, if any
	Clock     uint32 // low 32 bits of the edge deadline, µs
	Value1    uint32
	Value2    uint32
}

// Event types
const (
	EvtCommand    = 1 // command byte applied, Value1 = operand
	EvtTurnStart  = 2 // Value1 = edges
	EvtTurnDone   = 3
	EvtTurnCancel = 4 // Value1 = edges left
	EvtLateEdge   = 5 // Value1 = µs late
	EvtIgnored    = 6 // unknown command byte dropped
)

// TimingRingSize is how many events survive for a dump
const TimingRingSize = 32

type eventRing struct {
	events [TimingRingSize]TimingEvent
	next   uint8
}

var timing eventRing

// RecordTiming appends an event, overwriting the oldest. It does not
// allocate, so the tick loop may call it between edges.
func RecordTiming(eventType uint8, code byte, clock uint64, value1, value2 uint32) {
	timing.events[timing.next] = TimingEvent{
		EventType: eventType,
		Code:      code,
		Clock:     uint32(clock),
		Value1:    value1,
		Value2:    value2,
	}
	timing.next = (timing.next + 1) % TimingRingSize
}

// TimingEvents returns the recorded events, oldest first
func TimingEvents() []TimingEvent {
	out := make([]TimingEvent, 0, TimingRingSize)
	for i := uint8(0); i < TimingRingSize; i++ {
		evt := timing.events[(timing.next+i)%TimingRingSize]
		if evt.EventType != 0 {
			out = append(out, evt)
		}
	}
	return out
}

// ClearTimingRing forgets every recorded event
func ClearTimingRing() {
	timing = eventRing{}
}

func eventName(evt TimingEvent) string {
	switch evt.EventType {
	case EvtCommand:
		return "COMMAND " + byteName(evt.Code)
	case EvtTurnStart:
		return "TURN_START"
	case EvtTurnDone:
		return "TURN_DONE"
	case EvtTurnCancel:
		return "TURN_CANCEL"
	case EvtLateEdge:
		return "LATE_EDGE!"
	case EvtIgnored:
		return "IGNORED " + byteName(evt.Code)
	}
	return "UNKNOWN"
}

// DumpTimingRing writes the ring through the debug writer whether or not
// live output is enabled. Call it only once the tick loop has stopped.
func DumpTimingRing() {
	debugOut("[TIMING] === Timing Ring Dump ===")
	for _, evt := range TimingEvents() {
		debugOut("[TIMING] " + eventName(evt) +
			" clock=" + utoa(evt.Clock) +
			" v1=" + utoa(evt.Value1) +
			" v2=" + utoa(evt.Value2))
	}
	debugOut("[TIMING] === End Dump ===")
}

// Package protocol holds the single-byte PED command vocabulary shared by the
// firmware and the host tools, and the byte buffers the command path uses.
//
// The protocol has no framing and no acknowledgement: every byte is one
// command, unknown bytes are dropped by the firmware.
package protocol

// Banner is the line the firmware prints once the USB console comes up
const Banner = "USB-Serial to PED"

// Command bytes
const (
	CmdDirectionLow  = 'd'
	CmdDirectionHigh = 'D'
	CmdEnableLow     = 'e'
	CmdEnableHigh    = 'E'
	CmdLEDLow        = 'l'
	CmdLEDHigh       = 'L'
	CmdPulseOff      = 'p'
	CmdPulseOn       = 'P'
	CmdCancelTurn    = 't'
	CmdTurn          = 'T'
)

// StepsPerTurnCodes maps the digits to edges per turn (200 x 2^digit)
var StepsPerTurnCodes = []struct {
	Code  byte
	Edges uint32
}{
	{'0', 200},
	{'1', 400},
	{'2', 800},
	{'3', 1600},
	{'4', 3200},
	{'5', 6400},
	{'6', 12800},
	{'7', 25600},
	{'8', 51200},
}

// FrequencyCodes maps the rate selectors to half periods, slowest first
var FrequencyCodes = []struct {
	Code         byte
	HalfPeriodUS uint32
}{
	{'@', 250},
	{'#', 167},
	{'$', 125},
	{'%', 100},
	{'^', 83},
	{'&', 71},
	{'*', 63},
}

// StepsPerTurnCode returns the command byte selecting exactly edges per turn
func StepsPerTurnCode(edges uint32) (byte, bool) {
	for _, s := range StepsPerTurnCodes {
		if s.Edges == edges {
			return s.Code, true
		}
	}
	return 0, false
}

// FrequencyHz returns the pulse frequency a half period produces
func FrequencyHz(halfPeriodUS uint32) float64 {
	if halfPeriodUS == 0 {
		return 0
	}
	return 1e6 / (2 * float64(halfPeriodUS))
}

// FrequencyCode returns the selector whose frequency is closest to hz
func FrequencyCode(hz float64) (code byte, halfPeriodUS uint32) {
	best := -1.0
	for _, f := range FrequencyCodes {
		diff := FrequencyHz(f.HalfPeriodUS) - hz
		if diff < 0 {
			diff = -diff
		}
		if best < 0 || diff < best {
			best = diff
			code, halfPeriodUS = f.Code, f.HalfPeriodUS
		}
	}
	return code, halfPeriodUS
}

// Describe returns a human readable name for a command byte, or "" if the
// firmware ignores it
func Describe(b byte) string {
	switch b {
	case CmdDirectionLow:
		return "direction low"
	case CmdDirectionHigh:
		return "direction high"
	case CmdEnableLow:
		return "enable low"
	case CmdEnableHigh:
		return "enable high"
	case CmdLEDLow:
		return "led low"
	case CmdLEDHigh:
		return "led high"
	case CmdPulseOff:
		return "continuous pulse off"
	case CmdPulseOn:
		return "continuous pulse on"
	case CmdCancelTurn:
		return "cancel turn"
	case CmdTurn:
		return "one turn"
	}
	for _, s := range StepsPerTurnCodes {
		if s.Code == b {
			return "steps per turn " + utoa(s.Edges)
		}
	}
	for _, f := range FrequencyCodes {
		if f.Code == b {
			return "half period " + utoa(f.HalfPeriodUS) + "us"
		}
	}
	return ""
}

func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}
	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}

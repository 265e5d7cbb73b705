package protocol

import "testing"

func TestStepsPerTurnCode(t *testing.T) {
	tests := []struct {
		edges uint32
		code  byte
		ok    bool
	}{
		{200, '0', true},
		{1600, '3', true},
		{6400, '5', true},
		{51200, '8', true},
		{1000, 0, false},
		{0, 0, false},
	}

	for _, tt := range tests {
		code, ok := StepsPerTurnCode(tt.edges)
		if code != tt.code || ok != tt.ok {
			t.Errorf("StepsPerTurnCode(%d) = %q,%v, expected %q,%v", tt.edges, code, ok, tt.code, tt.ok)
		}
	}
}

func TestStepsPerTurnCodesDoubling(t *testing.T) {
	for i, s := range StepsPerTurnCodes {
		if s.Code != byte('0'+i) {
			t.Errorf("Entry %d has code %q", i, s.Code)
		}
		if s.Edges != 200<<uint(i) {
			t.Errorf("Entry %d has %d edges, expected %d", i, s.Edges, 200<<uint(i))
		}
	}
}

func TestFrequencyCode(t *testing.T) {
	tests := []struct {
		hz         float64
		code       byte
		halfPeriod uint32
	}{
		{2000, '@', 250},
		{3000, '#', 167},
		{4000, '$', 125},
		{5000, '%', 100},
		{6000, '^', 83},
		{7000, '&', 71},
		{8000, '*', 63},
		{100000, '*', 63},
		{1, '@', 250},
	}

	for _, tt := range tests {
		code, hp := FrequencyCode(tt.hz)
		if code != tt.code || hp != tt.halfPeriod {
			t.Errorf("FrequencyCode(%v) = %q/%d, expected %q/%d", tt.hz, code, hp, tt.code, tt.halfPeriod)
		}
	}
}

func TestFrequencyHz(t *testing.T) {
	if hz := FrequencyHz(250); hz != 2000 {
		t.Errorf("Expected 2000 Hz for 250us, got %v", hz)
	}
	if hz := FrequencyHz(0); hz != 0 {
		t.Errorf("Expected 0 Hz for a zero half period, got %v", hz)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		b    byte
		want string
	}{
		{'T', "one turn"},
		{'t', "cancel turn"},
		{'P', "continuous pulse on"},
		{'5', "steps per turn 6400"},
		{'@', "half period 250us"},
		{'*', "half period 63us"},
		{0x7F, ""},
		{'9', ""},
	}

	for _, tt := range tests {
		if got := Describe(tt.b); got != tt.want {
			t.Errorf("Describe(%q) = %q, expected %q", tt.b, got, tt.want)
		}
	}
}

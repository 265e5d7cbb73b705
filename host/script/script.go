// Package script runs canned PED command sequences described in YAML:
//
//	name: bench
//	repeat: 2
//	steps:
//	  - send: "E"
//	  - steps_per_turn: 3200
//	  - frequency_hz: 4000
//	  - send: "T"
//	    wait_ms: 1000
//	  - send: "e"
package script

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"picoped/protocol"
)

// Sender is the part of link.Link a script needs
type Sender interface {
	Send(cmds ...byte) error
}

// Step is one script line. Any combination of fields may be set; they are
// sent in field order (steps, frequency, raw bytes) and then the step waits.
type Step struct {
	Send         string  `yaml:"send"`
	StepsPerTurn uint32  `yaml:"steps_per_turn"`
	FrequencyHz  float64 `yaml:"frequency_hz"`
	WaitMS       int     `yaml:"wait_ms"`
}

// Script is a named, optionally repeated, list of steps
type Script struct {
	Name   string `yaml:"name"`
	Repeat int    `yaml:"repeat"`
	Steps  []Step `yaml:"steps"`
}

// Load reads and validates a script file
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a script
func Parse(data []byte) (*Script, error) {
	s := new(Script)
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate rejects bytes the controller would drop and unsupported values
func (s *Script) Validate() error {
	if s.Repeat < 0 {
		return fmt.Errorf("negative repeat %d", s.Repeat)
	}
	for i, st := range s.Steps {
		if _, err := st.bytes(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if st.WaitMS < 0 {
			return fmt.Errorf("step %d: negative wait %d", i+1, st.WaitMS)
		}
	}
	return nil
}

// Bytes returns every command byte the script sends, in order, for one pass
func (s *Script) Bytes() []byte {
	var out []byte
	for _, st := range s.Steps {
		b, _ := st.bytes()
		out = append(out, b...)
	}
	return out
}

// Run sends the steps, Repeat times (at least once). It stops between steps
// when ctx is done.
func (s *Script) Run(ctx context.Context, sender Sender) error {
	passes := s.Repeat
	if passes < 1 {
		passes = 1
	}
	for pass := 0; pass < passes; pass++ {
		for i, st := range s.Steps {
			if err := ctx.Err(); err != nil {
				return err
			}
			cmds, err := st.bytes()
			if err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
			if err := sender.Send(cmds...); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
			if st.WaitMS > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(time.Duration(st.WaitMS) * time.Millisecond):
				}
			}
		}
	}
	return nil
}

func (st Step) bytes() ([]byte, error) {
	var out []byte
	if st.StepsPerTurn != 0 {
		code, ok := protocol.StepsPerTurnCode(st.StepsPerTurn)
		if !ok {
			return nil, fmt.Errorf("unsupported steps per turn %d", st.StepsPerTurn)
		}
		out = append(out, code)
	}
	if st.FrequencyHz != 0 {
		if st.FrequencyHz < 0 {
			return nil, fmt.Errorf("invalid frequency %v", st.FrequencyHz)
		}
		code, _ := protocol.FrequencyCode(st.FrequencyHz)
		out = append(out, code)
	}
	for _, b := range []byte(st.Send) {
		if protocol.Describe(b) == "" {
			return nil, fmt.Errorf("%q is not a command byte", b)
		}
		out = append(out, b)
	}
	return out, nil
}

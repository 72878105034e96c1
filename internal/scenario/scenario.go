// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

// Package scenario loads scripted session sequences from YAML and replays
// them against a pubsub.Registry, checking every step against the
// expected errno name.
package scenario

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"code.hybscloud.com/pubsub"
	"gopkg.in/yaml.v3"
)

// Op names a session operation a Step performs.
type Op string

const (
	OpOpen    Op = "open"
	OpSetRole Op = "set_role"
	OpGetRole Op = "get_role"
	OpControl Op = "control"
	OpWrite   Op = "write"
	OpRead    Op = "read"
	OpClose   Op = "close"
)

// Scenario is one scripted run against a fresh registry.
type Scenario struct {
	Name            string `yaml:"name"`
	Capacity        int    `yaml:"capacity,omitempty"`     // 0 = pubsub.DefaultCapacity
	Channels        int    `yaml:"channels,omitempty"`     // 0 = pubsub.DefaultChannels
	BufferLimit     int    `yaml:"buffer_limit,omitempty"` // 0 = unlimited
	ExclusiveWriter *bool  `yaml:"exclusive_writer,omitempty"`
	Steps           []Step `yaml:"steps"`
}

// Step is one operation on a named session handle.
type Step struct {
	Op      Op     `yaml:"op"`
	Handle  string `yaml:"handle"`
	Channel int    `yaml:"channel,omitempty"`

	// set_role
	Role string `yaml:"role,omitempty"`

	// control: "set_role", "get_role" or a number such as 0x7202
	Command string `yaml:"command,omitempty"`
	Arg     uint64 `yaml:"arg,omitempty"`

	// write: Data verbatim, or Size copies of Fill (default "x")
	Data string `yaml:"data,omitempty"`
	Size int    `yaml:"size,omitempty"`
	Fill string `yaml:"fill,omitempty"`

	// read
	Max int `yaml:"max,omitempty"`

	Expect     string  `yaml:"expect,omitempty"` // errno name, "" = OK
	ExpectN    *int    `yaml:"expect_n,omitempty"`
	ExpectData *string `yaml:"expect_data,omitempty"`
	ExpectRole string  `yaml:"expect_role,omitempty"`
}

// Parse decodes and validates a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Load reads a scenario from r.
func Load(r io.Reader) (*Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// LoadFile reads a scenario from path. A missing name defaults to the path.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = path
	}
	return sc, nil
}

// Validate checks the scenario is well-formed. It does not check the
// expectations, which are the point of running it.
func (sc *Scenario) Validate() error {
	if sc.Capacity < 0 || sc.Channels < 0 || sc.BufferLimit < 0 {
		return fmt.Errorf("capacity, channels and buffer_limit must be >= 0")
	}
	if len(sc.Steps) == 0 {
		return fmt.Errorf("no steps defined")
	}
	for i, st := range sc.Steps {
		if err := st.Validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// Validate checks a single step.
func (st *Step) Validate() error {
	if st.Handle == "" {
		return fmt.Errorf("%s: handle is required", st.Op)
	}
	switch st.Op {
	case OpOpen, OpGetRole, OpClose:
	case OpSetRole:
		if _, err := pubsub.ParseRole(st.Role); err != nil {
			return fmt.Errorf("set_role: invalid role: %q", st.Role)
		}
	case OpControl:
		if _, err := st.command(); err != nil {
			return err
		}
	case OpWrite:
		if st.Data != "" && st.Size != 0 {
			return fmt.Errorf("write: data and size are mutually exclusive")
		}
		if st.Size < 0 {
			return fmt.Errorf("write: size must be >= 0, got %d", st.Size)
		}
		if len(st.Fill) > 1 {
			return fmt.Errorf("write: fill must be a single byte, got %q", st.Fill)
		}
	case OpRead:
		if st.Max < 0 {
			return fmt.Errorf("read: max must be >= 0, got %d", st.Max)
		}
	default:
		return fmt.Errorf("unknown op: %q", st.Op)
	}
	if st.ExpectRole != "" {
		if _, err := pubsub.ParseRole(st.ExpectRole); err != nil {
			return fmt.Errorf("%s: invalid expect_role: %q", st.Op, st.ExpectRole)
		}
	}
	return nil
}

func (st *Step) command() (pubsub.Command, error) {
	switch strings.ToLower(st.Command) {
	case "set_role":
		return pubsub.CmdSetRole, nil
	case "get_role":
		return pubsub.CmdGetRole, nil
	}
	v, err := strconv.ParseUint(st.Command, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("control: invalid command: %q", st.Command)
	}
	return pubsub.Command(v), nil
}

func (st *Step) payload() []byte {
	if st.Data != "" {
		return []byte(st.Data)
	}
	fill := byte('x')
	if st.Fill != "" {
		fill = st.Fill[0]
	}
	return []byte(strings.Repeat(string(fill), st.Size))
}

// String renders the step the way reports print it.
func (st Step) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", st.Op, st.Handle)
	switch st.Op {
	case OpOpen:
		fmt.Fprintf(&b, " channel=%d", st.Channel)
	case OpSetRole:
		fmt.Fprintf(&b, " role=%s", st.Role)
	case OpControl:
		fmt.Fprintf(&b, " command=%s arg=%d", st.Command, st.Arg)
	case OpWrite:
		fmt.Fprintf(&b, " len=%d", len(st.payload()))
	case OpRead:
		fmt.Fprintf(&b, " max=%d", st.Max)
	}
	return b.String()
}

// Options converts the scenario's registry settings.
func (sc *Scenario) Options() []pubsub.Option {
	var opts []pubsub.Option
	if sc.Capacity > 0 {
		opts = append(opts, pubsub.WithCapacity(sc.Capacity))
	}
	if sc.Channels > 0 {
		opts = append(opts, pubsub.WithChannels(sc.Channels))
	}
	if sc.BufferLimit > 0 {
		opts = append(opts, pubsub.WithBufferLimit(sc.BufferLimit))
	}
	if sc.ExclusiveWriter != nil {
		opts = append(opts, pubsub.WithExclusiveWriter(*sc.ExclusiveWriter))
	}
	return opts
}

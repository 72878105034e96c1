// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build unix

package scenario

import (
	"bytes"
	"fmt"
	"log/slog"

	"code.hybscloud.com/pubsub"
)

// StepResult is the outcome of one replayed step.
type StepResult struct {
	Index int    // 1-based
	Step  Step
	Errno string // errno name returned by the operation, "OK" on success
	N     int    // bytes written or read
	Data  []byte // bytes read
	Role  pubsub.Role
	// Mismatch describes the first unmet expectation; empty when the step passed.
	Mismatch string
}

// Passed reports whether the step met every expectation.
func (r StepResult) Passed() bool { return r.Mismatch == "" }

// Report collects the results of one scenario run.
type Report struct {
	Name    string
	Results []StepResult
	Metrics pubsub.Metrics
}

// Failures returns the number of failed steps.
func (r *Report) Failures() int {
	n := 0
	for _, res := range r.Results {
		if !res.Passed() {
			n++
		}
	}
	return n
}

// Passed reports whether every step passed.
func (r *Report) Passed() bool { return r.Failures() == 0 }

// Runner replays scenarios. The zero value is usable.
type Runner struct {
	// Logger receives the registry's records and one Debug record per step.
	Logger *slog.Logger
}

// Run replays sc against a fresh registry and closes every session it
// left open. opts are applied after the scenario's own settings.
func (rn *Runner) Run(sc *Scenario, opts ...pubsub.Option) *Report {
	log := rn.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	opts = append(sc.Options(), opts...)
	opts = append(opts, pubsub.WithLogger(log))

	reg := pubsub.New(opts...)
	sessions := make(map[string]*pubsub.Session)
	rep := &Report{Name: sc.Name}

	for i, st := range sc.Steps {
		res := replay(reg, sessions, st)
		res.Index = i + 1
		res.Step = st
		if res.Mismatch == "" {
			res.Mismatch = check(st, res)
		}
		log.Debug("scenario step",
			"scenario", sc.Name,
			"step", res.Index,
			"op", string(st.Op),
			"handle", st.Handle,
			"errno", res.Errno,
			"n", res.N,
			"passed", res.Passed())
		rep.Results = append(rep.Results, res)
	}

	for _, s := range sessions {
		_ = s.Close()
	}
	rep.Metrics = reg.Metrics()
	return rep
}

func replay(reg *pubsub.Registry, sessions map[string]*pubsub.Session, st Step) StepResult {
	if st.Op == OpOpen {
		s, err := reg.Open(st.Channel)
		if err == nil {
			if old, ok := sessions[st.Handle]; ok {
				_ = old.Close()
			}
			sessions[st.Handle] = s
		}
		return StepResult{Errno: pubsub.ErrnoName(err)}
	}

	s, ok := sessions[st.Handle]
	if !ok {
		return StepResult{Errno: "-", Mismatch: fmt.Sprintf("unknown handle %q", st.Handle)}
	}

	var res StepResult
	var err error
	switch st.Op {
	case OpSetRole:
		r, _ := pubsub.ParseRole(st.Role)
		err = s.SetRole(r)
	case OpGetRole:
		res.Role, err = s.Role()
	case OpControl:
		cmd, _ := st.command()
		var v int
		v, err = s.Control(cmd, uintptr(st.Arg))
		if cmd == pubsub.CmdGetRole {
			res.Role = pubsub.Role(v)
		}
	case OpWrite:
		res.N, err = s.Write(st.payload())
	case OpRead:
		buf := make([]byte, st.Max)
		res.N, err = s.Read(buf)
		res.Data = buf[:res.N]
	case OpClose:
		err = s.Close()
	}
	res.Errno = pubsub.ErrnoName(err)
	return res
}

func check(st Step, res StepResult) string {
	want := st.Expect
	if want == "" {
		want = "OK"
	}
	if res.Errno != want {
		return fmt.Sprintf("got %s, want %s", res.Errno, want)
	}
	if st.ExpectN != nil && res.N != *st.ExpectN {
		return fmt.Sprintf("got n=%d, want n=%d", res.N, *st.ExpectN)
	}
	if st.ExpectData != nil && !bytes.Equal(res.Data, []byte(*st.ExpectData)) {
		return fmt.Sprintf("got data %q, want %q", res.Data, *st.ExpectData)
	}
	if st.ExpectRole != "" {
		r, _ := pubsub.ParseRole(st.ExpectRole)
		if res.Role != r {
			return fmt.Sprintf("got role %s, want %s", res.Role, r)
		}
	}
	return ""
}

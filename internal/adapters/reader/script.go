// Package reader provides clock readers: sources of one reading per tick.
package reader

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/okian/pacer/internal/app"
)

// Script is a recorded or synthetic game: a list of clock samples in tick order.
type Script struct {
	Name           string   `yaml:"name,omitempty"`
	PollIntervalMS int      `yaml:"poll_interval_ms,omitempty"`
	Samples        []Sample `yaml:"samples"`
}

// Sample is one observed state of both clocks. A missing user or opp key
// means that clock was not visible; a missing moves key means the move list
// was not observed. Hold repeats the sample for that many ticks in total.
type Sample struct {
	User  *string `yaml:"user,omitempty"`
	Opp   *string `yaml:"opp,omitempty"`
	Moves *int    `yaml:"moves,omitempty"`
	Hold  int     `yaml:"hold,omitempty"`
}

// Count returns a pointer to n, for building samples.
func Count(n int) *int { return &n }

// Ticks returns how many readings the script yields.
func (s *Script) Ticks() int {
	n := 0
	for _, smp := range s.Samples {
		n += smp.ticks()
	}
	return n
}

func (s Sample) ticks() int {
	if s.Hold > 1 {
		return s.Hold
	}
	return 1
}

// Validate reports ErrScript for an empty script or negative fields.
func (s *Script) Validate() error {
	if len(s.Samples) == 0 {
		return fmt.Errorf("%w: no samples", ErrScript)
	}
	if s.PollIntervalMS < 0 {
		return fmt.Errorf("%w: negative poll_interval_ms", ErrScript)
	}
	for i, smp := range s.Samples {
		if smp.Hold < 0 || (smp.Moves != nil && *smp.Moves < 0) {
			return fmt.Errorf("%w: sample %d has negative hold or moves", ErrScript, i)
		}
	}
	return nil
}

// Encode writes the script as YAML.
func (s *Script) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode script: %w", err)
	}
	return enc.Close()
}

// DecodeScript parses and validates a YAML script.
func DecodeScript(r io.Reader) (*Script, error) {
	var s Script
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScript, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScript reads a script file.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer func() { _ = f.Close() }()
	return DecodeScript(f)
}

// ScriptReader replays a Script one reading per Read, then io.EOF.
type ScriptReader struct {
	mu     sync.Mutex
	script *Script
	idx    int
	held   int
}

// NewScriptReader creates a reader positioned at the first sample.
func NewScriptReader(s *Script) *ScriptReader {
	return &ScriptReader{script: s}
}

// Read returns the next reading. Timestamps are left to the session clock.
func (r *ScriptReader) Read(ctx context.Context) (app.Reading, error) {
	if err := ctx.Err(); err != nil {
		return app.Reading{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.idx >= len(r.script.Samples) {
		return app.Reading{}, io.EOF
	}
	smp := r.script.Samples[r.idx]
	r.held++
	if r.held >= smp.ticks() {
		r.idx++
		r.held = 0
	}

	rd := app.Reading{
		UserText: copyText(smp.User),
		OppText:  copyText(smp.Opp),
	}
	if smp.Moves != nil {
		rd.MoveListSize = *smp.Moves
		rd.MoveListSeen = true
	}
	return rd, nil
}

func copyText(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

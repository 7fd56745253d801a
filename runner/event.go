// Package runner runs Go tests and turns their test2json event stream
// into listener callbacks.
package runner

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Action is the kind of a test2json event.
type Action string

const (
	ActionStart       Action = "start"
	ActionRun         Action = "run"
	ActionPause       Action = "pause"
	ActionCont        Action = "cont"
	ActionPass        Action = "pass"
	ActionBench       Action = "bench"
	ActionFail        Action = "fail"
	ActionOutput      Action = "output"
	ActionSkip        Action = "skip"
	ActionBuildOutput Action = "build-output"
	ActionBuildFail   Action = "build-fail"
)

// Event is a single line of "go test -json".
type Event struct {
	Time    time.Time `json:",omitempty"`
	Action  Action
	Package string  `json:",omitempty"`
	Test    string  `json:",omitempty"`
	Elapsed float64 `json:",omitempty"`
	Output  string  `json:",omitempty"`

	// ImportPath and FailedBuild are set on build events.
	ImportPath  string `json:",omitempty"`
	FailedBuild string `json:",omitempty"`
}

// ElapsedDuration returns the elapsed seconds of the event as a duration.
func (e *Event) ElapsedDuration() time.Duration {
	return time.Duration(e.Elapsed * float64(time.Second))
}

// maxLineSize is the longest event line the decoder accepts.
const maxLineSize = 16 << 20

// Decoder reads newline-delimited events.
//
// Lines which are not JSON objects, e.g. messages of the go command itself,
// are returned as output events without a package.
type Decoder struct {
	scanner *bufio.Scanner
}

// NewDecoder creates a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	return &Decoder{scanner: scanner}
}

// Next returns the next event, or io.EOF at the end of the stream.
func (d *Decoder) Next() (*Event, error) {
	for d.scanner.Scan() {
		line := d.scanner.Bytes()
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 {
			continue
		}
		if trimmed[0] == '{' {
			e := &Event{}
			if err := json.Unmarshal(trimmed, e); err == nil {
				return e, nil
			}
		}
		return &Event{Action: ActionOutput, Output: strings.TrimRight(string(line), "\r") + "\n"}, nil
	}
	if err := d.scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read test events")
	}
	return nil, io.EOF
}

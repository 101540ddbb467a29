// Package trace records snapshots of a match's shared state.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pingcap/errors"
	"github.com/theadell/soccergame/internal/match"
)

const title = "Soccer Game - Description of the internal state"

// File writes one human readable line per snapshot. The header is written
// once, on the first record, since the column count depends on the
// population.
type File struct {
	mu        sync.Mutex
	w         *bufio.Writer
	closer    io.Closer
	headerOut bool
}

// OpenFile truncates path and returns a recorder appending to it.
func OpenFile(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Annotatef(err, "open trace log %s", path)
	}
	return &File{w: bufio.NewWriter(f), closer: f}, nil
}

// NewWriter records to w. Closing the recorder only flushes.
func NewWriter(w io.Writer) *File {
	return &File{w: bufio.NewWriter(w)}
}

func (f *File) Record(s match.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.headerOut {
		if _, err := io.WriteString(f.w, Header(len(s.PlayerStatus), len(s.GoalieStatus))); err != nil {
			return errors.Trace(err)
		}
		f.headerOut = true
	}
	if _, err := io.WriteString(f.w, Line(s)); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(f.w.Flush())
}

func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.w.Flush(); err != nil {
		return errors.Trace(err)
	}
	if f.closer != nil {
		return errors.Trace(f.closer.Close())
	}
	return nil
}

// Header returns the title and the column labels, each label padded to the
// width of a status code.
func Header(players, goalies int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", title)
	for id := 0; id < players; id++ {
		fmt.Fprintf(&b, "P%02d ", id)
	}
	for id := 0; id < goalies; id++ {
		fmt.Fprintf(&b, "G%02d ", id)
	}
	b.WriteString("REF  PARR PFRE GARR GFRE TEAM\n")
	return b.String()
}

// Line renders a snapshot: status codes of players, goalies and referee,
// then the arrival and free counters and the next team id.
func Line(s match.Snapshot) string {
	var b strings.Builder
	for _, st := range s.PlayerStatus {
		fmt.Fprintf(&b, "%s ", st.Code())
	}
	for _, st := range s.GoalieStatus {
		fmt.Fprintf(&b, "%s ", st.Code())
	}
	fmt.Fprintf(&b, "%s  %4d %4d %4d %4d %4d\n",
		s.RefereeStatus.Code(), s.PlayersArrived, s.PlayersFree, s.GoaliesArrived, s.GoaliesFree, s.TeamID)
	return b.String()
}

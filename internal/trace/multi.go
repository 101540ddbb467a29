package trace

import "github.com/theadell/soccergame/internal/match"

type multi []match.Recorder

// Multi records every snapshot to each recorder in order and stops at the
// first failure.
func Multi(recs ...match.Recorder) match.Recorder {
	return multi(recs)
}

func (m multi) Record(s match.Snapshot) error {
	for _, r := range m {
		if err := r.Record(s); err != nil {
			return err
		}
	}
	return nil
}

package match

import (
	"fmt"
	"slices"
	"sync"
)

// Shared is the state every actor of a match reads and mutates. It must
// only be touched through Store.
type Shared struct {
	PlayersArrived int
	GoaliesArrived int
	PlayersFree    int
	GoaliesFree    int
	TeamID         int // next team id to hand out, starts at 1

	PlayerStatus  []Status
	GoalieStatus  []Status
	RefereeStatus RefereeStatus

	PlayerTeam []int // 0 until the player knows its team
	GoalieTeam []int
}

// Snapshot is an immutable copy of Shared taken inside a critical section.
// Seq orders snapshots of one store.
type Snapshot struct {
	Seq            uint64        `json:"seq"`
	PlayersArrived int           `json:"playersArrived"`
	GoaliesArrived int           `json:"goaliesArrived"`
	PlayersFree    int           `json:"playersFree"`
	GoaliesFree    int           `json:"goaliesFree"`
	TeamID         int           `json:"teamId"`
	PlayerStatus   []Status      `json:"playerStatus"`
	GoalieStatus   []Status      `json:"goalieStatus"`
	RefereeStatus  RefereeStatus `json:"refereeStatus"`
	PlayerTeam     []int         `json:"playerTeam"`
	GoalieTeam     []int         `json:"goalieTeam"`
}

// TeamsFormed is the number of team ids claimed so far.
func (s Snapshot) TeamsFormed() int {
	return s.TeamID - 1
}

//go:generate mockgen -source=state.go -destination=mock_recorder_test.go -package=match

// Recorder receives a snapshot after every mutation of the shared state.
// It is called with the state lock held, so snapshots arrive in the order
// of the critical sections that produced them.
type Recorder interface {
	Record(Snapshot) error
}

type nopRecorder struct{}

func (nopRecorder) Record(Snapshot) error { return nil }

// Store guards Shared with a single mutex.
type Store struct {
	mu  sync.Mutex
	sh  Shared
	seq uint64
	rec Recorder
}

func NewStore(players, goalies int, rec Recorder) *Store {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Store{
		sh: Shared{
			TeamID:       1,
			PlayerStatus: make([]Status, players),
			GoalieStatus: make([]Status, goalies),
			PlayerTeam:   make([]int, players),
			GoalieTeam:   make([]int, goalies),
		},
		rec: rec,
	}
}

// Update runs fn with exclusive access to the shared state and records the
// resulting snapshot before the lock is released. fn must not block.
func (s *Store) Update(fn func(sh *Shared)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.sh)
	s.seq++
	if err := s.rec.Record(s.snapshotLocked()); err != nil {
		return ErrRecordState.Wrap(err).GenWithStackByArgs(fmt.Sprintf("snapshot %d", s.seq))
	}
	return nil
}

// View runs fn with exclusive access to the shared state without recording.
func (s *Store) View(fn func(sh *Shared)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.sh)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Seq:            s.seq,
		PlayersArrived: s.sh.PlayersArrived,
		GoaliesArrived: s.sh.GoaliesArrived,
		PlayersFree:    s.sh.PlayersFree,
		GoaliesFree:    s.sh.GoaliesFree,
		TeamID:         s.sh.TeamID,
		PlayerStatus:   slices.Clone(s.sh.PlayerStatus),
		GoalieStatus:   slices.Clone(s.sh.GoalieStatus),
		RefereeStatus:  s.sh.RefereeStatus,
		PlayerTeam:     slices.Clone(s.sh.PlayerTeam),
		GoalieTeam:     slices.Clone(s.sh.GoalieTeam),
	}
}

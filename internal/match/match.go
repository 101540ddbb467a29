package match

import (
	"context"
	"log/slog"
	"time"

	"github.com/pingcap/errors"
	"golang.org/x/sync/errgroup"
)

// Match owns the shared state and rendezvous channels of one game and
// hands out the actors that take part in it.
type Match struct {
	formation
}

func New(cfg Config, rec Recorder) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Match{
		formation: formation{
			cfg:   cfg,
			store: NewStore(cfg.Players, cfg.Goalies, rec),
			ch:    NewChannels(cfg),
		},
	}, nil
}

func (m *Match) Config() Config {
	return m.cfg
}

func (m *Match) Store() *Store {
	return m.store
}

func (m *Match) Channels() *Channels {
	return m.ch
}

func (m *Match) Player(id int) (*Player, error) {
	if id < 0 || id >= m.cfg.Players {
		return nil, ErrInvalidActorID.GenWithStackByArgs("player", id, m.cfg.Players)
	}
	return &Player{id: id, formation: m.formation}, nil
}

func (m *Match) Goalie(id int) (*Goalie, error) {
	if id < 0 || id >= m.cfg.Goalies {
		return nil, ErrInvalidActorID.GenWithStackByArgs("goalie", id, m.cfg.Goalies)
	}
	return &Goalie{id: id, formation: m.formation}, nil
}

func (m *Match) Referee() *Referee {
	return &Referee{formation: m.formation}
}

// Result summarizes a finished match.
type Result struct {
	Final       Snapshot
	Lineups     map[int]Lineup // keyed by team id
	LatePlayers []int
	LateGoalies []int
	Duration    time.Duration
}

// Lineup lists the actors of one team.
type Lineup struct {
	Players []int
	Goalie  int
}

func NewResult(s Snapshot) Result {
	res := Result{
		Final:   s,
		Lineups: make(map[int]Lineup),
	}
	for id, team := range s.PlayerTeam {
		if s.PlayerStatus[id] == StatusLate {
			res.LatePlayers = append(res.LatePlayers, id)
			continue
		}
		if team == 0 {
			continue
		}
		l := res.Lineups[team]
		l.Players = append(l.Players, id)
		res.Lineups[team] = l
	}
	for id, team := range s.GoalieTeam {
		if s.GoalieStatus[id] == StatusLate {
			res.LateGoalies = append(res.LateGoalies, id)
			continue
		}
		if team == 0 {
			continue
		}
		l := res.Lineups[team]
		l.Goalie = id
		res.Lineups[team] = l
	}
	return res
}

// Run starts every actor of the match and waits for all of them. The first
// actor to fail cancels the others and its error is returned.
func (m *Match) Run(ctx context.Context) (Result, error) {
	if err := m.cfg.ValidatePopulation(); err != nil {
		return Result{}, err
	}
	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)

	ref := m.Referee()
	g.Go(func() error {
		return ref.Run(ctx)
	})
	for id := 0; id < m.cfg.Players; id++ {
		p := &Player{id: id, formation: m.formation}
		g.Go(func() error {
			return p.Run(ctx)
		})
	}
	for id := 0; id < m.cfg.Goalies; id++ {
		gl := &Goalie{id: id, formation: m.formation}
		g.Go(func() error {
			return gl.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, errors.Trace(err)
	}
	res := NewResult(m.store.Snapshot())
	res.Duration = time.Since(start)
	slog.Info("match finished",
		"teams", res.Final.TeamsFormed(),
		"late_players", len(res.LatePlayers),
		"late_goalies", len(res.LateGoalies),
		"duration", res.Duration)
	return res, nil
}

package match

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pingcap/errors"
)

// Outcome is the role an arriving actor takes in team formation. It is
// decided once per arrival inside a single critical section.
type Outcome int

const (
	OutcomeLate Outcome = iota
	OutcomeLeader
	OutcomeFollower
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLate:
		return "late"
	case OutcomeLeader:
		return "leader"
	case OutcomeFollower:
		return "follower"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// reservePlayer registers the arrival of a field player and reserves a full
// team for it when enough teammates and a goalie are waiting. Must be
// called with the store locked.
func reservePlayer(sh *Shared, cfg Config) Outcome {
	sh.PlayersArrived++
	switch {
	case sh.PlayersArrived > cfg.PlayerLateThreshold():
		return OutcomeLate
	case sh.PlayersFree >= cfg.PlayersPerTeam-1 && sh.GoaliesFree >= 1:
		sh.PlayersFree -= cfg.PlayersPerTeam - 1
		sh.GoaliesFree--
		return OutcomeLeader
	default:
		sh.PlayersFree++
		return OutcomeFollower
	}
}

// reserveGoalie is the goalie side of reservePlayer. A forming goalie
// needs every field player of its team to be waiting.
func reserveGoalie(sh *Shared, cfg Config) Outcome {
	sh.GoaliesArrived++
	switch {
	case sh.GoaliesArrived > cfg.GoalieLateThreshold():
		return OutcomeLate
	case sh.PlayersFree >= cfg.PlayersPerTeam:
		sh.PlayersFree -= cfg.PlayersPerTeam
		return OutcomeLeader
	default:
		sh.GoaliesFree++
		return OutcomeFollower
	}
}

// formation holds what the leader and follower sides of the protocol share.
type formation struct {
	cfg   Config
	store *Store
	ch    *Channels
}

// lead recruits the reserved teammates, claims the next team id and tells
// the referee. players and goalies are the number of followers to call
// per role. Leaders are serialized through TeamForming so that every
// follower of a batch reads the id its leader claims.
func (f *formation) lead(ctx context.Context, role string, id, players, goalies int) (int, error) {
	if err := f.ch.TeamForming.Wait(ctx); err != nil {
		return 0, err
	}

	for i := 0; i < players; i++ {
		if err := f.recruit(ctx, f.ch.PlayersWaitTeam); err != nil {
			return 0, err
		}
	}
	for i := 0; i < goalies; i++ {
		if err := f.recruit(ctx, f.ch.GoaliesWaitTeam); err != nil {
			return 0, err
		}
	}

	var team int
	err := f.store.Update(func(sh *Shared) {
		team = sh.TeamID
		sh.TeamID++
	})
	if err != nil {
		return 0, errors.Annotatef(err, "%s %d claiming team", role, id)
	}
	if team < 1 || team > f.cfg.Teams {
		return 0, ErrInvalidTeam.GenWithStackByArgs(team, f.cfg.Teams)
	}
	slog.Debug("team formed", "leader", role, "id", id, "team", team)

	if err := f.ch.TeamForming.Signal(); err != nil {
		return 0, err
	}
	if err := f.ch.RefereeWaitTeams.Signal(); err != nil {
		return 0, err
	}
	return team, nil
}

// recruit runs a single handshake round with one waiting follower.
func (f *formation) recruit(ctx context.Context, wake *Channel) error {
	if err := wake.Signal(); err != nil {
		return err
	}
	return errors.Trace(f.ch.PlayerRegistered.Wait(ctx))
}

// follow blocks until a leader calls on wake, then registers with it. The
// id read here is the one the leader claims after every follower of its
// batch has registered.
func (f *formation) follow(ctx context.Context, wake *Channel) (int, error) {
	if err := wake.Wait(ctx); err != nil {
		return 0, err
	}
	var team int
	f.store.View(func(sh *Shared) {
		team = sh.TeamID
	})
	if err := f.ch.PlayerRegistered.Signal(); err != nil {
		return 0, err
	}
	return team, nil
}

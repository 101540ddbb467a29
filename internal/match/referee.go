package match

import (
	"context"
	"log/slog"
	"time"

	"github.com/pingcap/errors"
)

// Referee starts the match once every team has formed and ends it after
// MatchDuration.
type Referee struct {
	formation
}

func (r *Referee) Run(ctx context.Context) error {
	if err := r.arrive(ctx); err != nil {
		return err
	}
	if err := r.waitForTeams(ctx); err != nil {
		return err
	}
	if err := r.startGame(); err != nil {
		return err
	}
	if err := r.play(ctx); err != nil {
		return err
	}
	return r.endGame()
}

func (r *Referee) setStatus(status RefereeStatus) error {
	err := r.store.Update(func(sh *Shared) {
		sh.RefereeStatus = status
	})
	return errors.Annotatef(err, "referee %s", status)
}

func (r *Referee) arrive(ctx context.Context) error {
	if err := r.setStatus(RefereeArriving); err != nil {
		return err
	}
	travel(ctx, r.cfg.ArrivalMin, r.cfg.ArrivalMax)
	return nil
}

func (r *Referee) waitForTeams(ctx context.Context) error {
	if err := r.setStatus(RefereeWaitingTeams); err != nil {
		return err
	}
	return waitN(ctx, r.ch.RefereeWaitTeams, r.cfg.Teams)
}

func (r *Referee) startGame() error {
	if err := r.setStatus(RefereeStartingGame); err != nil {
		return err
	}
	slog.Debug("kickoff", "teams", r.cfg.Teams)
	if err := signalN(r.ch.PlayersWaitReferee, r.cfg.Teams*r.cfg.PlayersPerTeam); err != nil {
		return err
	}
	return signalN(r.ch.GoaliesWaitReferee, r.cfg.Teams)
}

// play waits until every team member reports playing, then lets the match
// run for MatchDuration.
func (r *Referee) play(ctx context.Context) error {
	if err := r.setStatus(RefereeRefereeing); err != nil {
		return err
	}
	if err := waitN(ctx, r.ch.Playing, r.cfg.ActivePlayers()); err != nil {
		return err
	}
	t := time.NewTimer(r.cfg.MatchDuration)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return errors.Trace(ctx.Err())
	}
}

func (r *Referee) endGame() error {
	if err := r.setStatus(RefereeEndingGame); err != nil {
		return err
	}
	slog.Debug("final whistle")
	if err := signalN(r.ch.PlayersWaitEnd, r.cfg.Teams*r.cfg.PlayersPerTeam); err != nil {
		return err
	}
	return signalN(r.ch.GoaliesWaitEnd, r.cfg.Teams)
}

package match

import (
	"context"
	"log/slog"

	"github.com/pingcap/errors"
)

// Goalie mirrors Player. A forming goalie recruits a full set of field
// players and no other goalie.
type Goalie struct {
	id int
	formation
}

func (g *Goalie) ID() int {
	return g.id
}

func (g *Goalie) Run(ctx context.Context) error {
	if err := g.arrive(ctx); err != nil {
		return err
	}
	team, err := g.constituteTeam(ctx)
	if err != nil {
		return err
	}
	if team == 0 {
		return nil
	}
	if err := g.waitReferee(ctx, team); err != nil {
		return err
	}
	return g.playUntilEnd(ctx, team)
}

func (g *Goalie) arrive(ctx context.Context) error {
	err := g.store.Update(func(sh *Shared) {
		sh.GoalieStatus[g.id] = StatusArriving
	})
	if err != nil {
		return errors.Annotatef(err, "goalie %d arriving", g.id)
	}
	travel(ctx, g.cfg.ArrivalMin, g.cfg.ArrivalMax)
	return nil
}

func (g *Goalie) constituteTeam(ctx context.Context) (int, error) {
	var outcome Outcome
	err := g.store.Update(func(sh *Shared) {
		outcome = reserveGoalie(sh, g.cfg)
		switch outcome {
		case OutcomeLate:
			sh.GoalieStatus[g.id] = StatusLate
		case OutcomeLeader:
			sh.GoalieStatus[g.id] = StatusFormingTeam
		case OutcomeFollower:
			sh.GoalieStatus[g.id] = StatusWaitingTeams
		}
	})
	if err != nil {
		return 0, errors.Annotatef(err, "goalie %d constituting team", g.id)
	}
	slog.Debug("goalie arrived", "goalie", g.id, "outcome", outcome)

	switch outcome {
	case OutcomeLate:
		return 0, nil
	case OutcomeLeader:
		return g.lead(ctx, "goalie", g.id, g.cfg.PlayersPerTeam, 0)
	case OutcomeFollower:
		return g.follow(ctx, g.ch.GoaliesWaitTeam)
	}
	return 0, ErrUnknownOutcome.GenWithStackByArgs(int(outcome), "goalie", g.id)
}

func (g *Goalie) waitReferee(ctx context.Context, team int) error {
	err := g.store.Update(func(sh *Shared) {
		sh.GoalieStatus[g.id] = waitingStart(team)
		sh.GoalieTeam[g.id] = team
	})
	if err != nil {
		return errors.Annotatef(err, "goalie %d waiting for referee", g.id)
	}
	return g.ch.GoaliesWaitReferee.Wait(ctx)
}

func (g *Goalie) playUntilEnd(ctx context.Context, team int) error {
	var signalErr error
	err := g.store.Update(func(sh *Shared) {
		sh.GoalieStatus[g.id] = playing(team)
		signalErr = g.ch.Playing.Signal()
	})
	if err != nil {
		return errors.Annotatef(err, "goalie %d playing", g.id)
	}
	if signalErr != nil {
		return signalErr
	}
	return g.ch.GoaliesWaitEnd.Wait(ctx)
}

package match

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/pingcap/errors"
)

// travel sleeps a random duration in [lo, hi). It only spreads arrivals
// out, the protocol does not depend on it.
func travel(ctx context.Context, lo, hi time.Duration) {
	d := lo
	if hi > lo {
		d += rand.N(hi - lo)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// Player is the field player actor.
type Player struct {
	id int
	formation
}

func (p *Player) ID() int {
	return p.id
}

// Run drives the player through its whole life cycle. Late players return
// right after team formation.
func (p *Player) Run(ctx context.Context) error {
	if err := p.arrive(ctx); err != nil {
		return err
	}
	team, err := p.constituteTeam(ctx)
	if err != nil {
		return err
	}
	if team == 0 {
		return nil
	}
	if err := p.waitReferee(ctx, team); err != nil {
		return err
	}
	return p.playUntilEnd(ctx, team)
}

func (p *Player) arrive(ctx context.Context) error {
	err := p.store.Update(func(sh *Shared) {
		sh.PlayerStatus[p.id] = StatusArriving
	})
	if err != nil {
		return errors.Annotatef(err, "player %d arriving", p.id)
	}
	travel(ctx, p.cfg.ArrivalMin, p.cfg.ArrivalMax)
	return nil
}

// constituteTeam returns the team the player joined, 0 if it came late.
func (p *Player) constituteTeam(ctx context.Context) (int, error) {
	var outcome Outcome
	err := p.store.Update(func(sh *Shared) {
		outcome = reservePlayer(sh, p.cfg)
		switch outcome {
		case OutcomeLate:
			sh.PlayerStatus[p.id] = StatusLate
		case OutcomeLeader:
			sh.PlayerStatus[p.id] = StatusFormingTeam
		case OutcomeFollower:
			sh.PlayerStatus[p.id] = StatusWaitingTeams
		}
	})
	if err != nil {
		return 0, errors.Annotatef(err, "player %d constituting team", p.id)
	}
	slog.Debug("player arrived", "player", p.id, "outcome", outcome)

	switch outcome {
	case OutcomeLate:
		return 0, nil
	case OutcomeLeader:
		return p.lead(ctx, "player", p.id, p.cfg.PlayersPerTeam-1, 1)
	case OutcomeFollower:
		return p.follow(ctx, p.ch.PlayersWaitTeam)
	}
	return 0, ErrUnknownOutcome.GenWithStackByArgs(int(outcome), "player", p.id)
}

func (p *Player) waitReferee(ctx context.Context, team int) error {
	err := p.store.Update(func(sh *Shared) {
		sh.PlayerStatus[p.id] = waitingStart(team)
		sh.PlayerTeam[p.id] = team
	})
	if err != nil {
		return errors.Annotatef(err, "player %d waiting for referee", p.id)
	}
	return p.ch.PlayersWaitReferee.Wait(ctx)
}

func (p *Player) playUntilEnd(ctx context.Context, team int) error {
	var signalErr error
	err := p.store.Update(func(sh *Shared) {
		sh.PlayerStatus[p.id] = playing(team)
		signalErr = p.ch.Playing.Signal()
	})
	if err != nil {
		return errors.Annotatef(err, "player %d playing", p.id)
	}
	if signalErr != nil {
		return signalErr
	}
	return p.ch.PlayersWaitEnd.Wait(ctx)
}

package match

import (
	"context"

	"github.com/pingcap/errors"
	"go.uber.org/atomic"
	"golang.org/x/sync/semaphore"
)

// Channel is a payload-less counting semaphore used as a one way handshake
// step between two actor roles. Signals sent before the matching Wait are
// buffered, up to the channel capacity.
type Channel struct {
	name     string
	capacity int64
	sem      *semaphore.Weighted
	// pending counts signals that have not been consumed by a Wait yet. It
	// never drops below the number of tokens held by sem, which keeps
	// Release from panicking.
	pending atomic.Int64
}

// NewChannel returns a channel holding initial buffered signals.
func NewChannel(name string, capacity, initial int) *Channel {
	c := &Channel{
		name:     name,
		capacity: int64(capacity),
		sem:      semaphore.NewWeighted(int64(capacity)),
	}
	// A weighted semaphore starts with every token available, drain the ones
	// that have not been signaled.
	if drained := int64(capacity - initial); drained > 0 {
		c.sem.TryAcquire(drained)
	}
	c.pending.Store(int64(initial))
	return c
}

func (c *Channel) Name() string {
	return c.name
}

// Signal releases at most one waiter. It never blocks.
func (c *Channel) Signal() error {
	if c.pending.Inc() > c.capacity {
		c.pending.Dec()
		return ErrChannelOverflow.GenWithStackByArgs(c.name, c.capacity)
	}
	c.sem.Release(1)
	return nil
}

// Wait blocks until a signal is available and consumes it.
func (c *Channel) Wait(ctx context.Context) error {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return errors.Annotatef(err, "wait on %s", c.name)
	}
	c.pending.Dec()
	return nil
}

// Pending is the number of buffered signals not consumed yet.
func (c *Channel) Pending() int {
	return int(c.pending.Load())
}

// Channels is the full set of rendezvous points of one match.
type Channels struct {
	PlayersWaitTeam    *Channel
	GoaliesWaitTeam    *Channel
	PlayerRegistered   *Channel
	RefereeWaitTeams   *Channel
	PlayersWaitReferee *Channel
	GoaliesWaitReferee *Channel
	Playing            *Channel
	PlayersWaitEnd     *Channel
	GoaliesWaitEnd     *Channel

	// TeamForming is held by the one leader currently running handshakes.
	TeamForming *Channel
}

func NewChannels(cfg Config) *Channels {
	teamPlayers := cfg.Teams * cfg.PlayersPerTeam
	return &Channels{
		PlayersWaitTeam:    NewChannel("playersWaitTeam", cfg.PlayersPerTeam, 0),
		GoaliesWaitTeam:    NewChannel("goaliesWaitTeam", 1, 0),
		PlayerRegistered:   NewChannel("playerRegistered", 1, 0),
		RefereeWaitTeams:   NewChannel("refereeWaitTeams", cfg.Teams, 0),
		PlayersWaitReferee: NewChannel("playersWaitReferee", teamPlayers, 0),
		GoaliesWaitReferee: NewChannel("goaliesWaitReferee", cfg.Teams, 0),
		Playing:            NewChannel("playing", cfg.ActivePlayers(), 0),
		PlayersWaitEnd:     NewChannel("playersWaitEnd", teamPlayers, 0),
		GoaliesWaitEnd:     NewChannel("goaliesWaitEnd", cfg.Teams, 0),
		TeamForming:        NewChannel("teamForming", 1, 1),
	}
}

// signalN signals ch n times, stopping at the first failure.
func signalN(ch *Channel, n int) error {
	for i := 0; i < n; i++ {
		if err := ch.Signal(); err != nil {
			return err
		}
	}
	return nil
}

// waitN waits on ch n times.
func waitN(ctx context.Context, ch *Channel, n int) error {
	for i := 0; i < n; i++ {
		if err := ch.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

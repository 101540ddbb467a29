package match

import (
	"fmt"
	"time"
)

const (
	DEFAULT_PLAYERS          = 10
	DEFAULT_GOALIES          = 3
	DEFAULT_TEAMS            = 2
	DEFAULT_PLAYERS_PER_TEAM = 3
	DEFAULT_ARRIVAL_MIN      = 50 * time.Microsecond
	DEFAULT_ARRIVAL_MAX      = 250 * time.Microsecond
	DEFAULT_MATCH_DURATION   = 10 * time.Millisecond

	MAX_TEAMS = 2 // one WAITING_START_n and PLAYING_n state per team
)

// Config describes the population and team shape of a single match.
// Every team has exactly one goalie.
type Config struct {
	Players        int
	Goalies        int
	Teams          int
	PlayersPerTeam int // field players per team, the forming leader included

	// Travel time of every actor is drawn from [ArrivalMin, ArrivalMax).
	ArrivalMin    time.Duration
	ArrivalMax    time.Duration
	MatchDuration time.Duration
}

func DefaultConfig() Config {
	return Config{
		Players:        DEFAULT_PLAYERS,
		Goalies:        DEFAULT_GOALIES,
		Teams:          DEFAULT_TEAMS,
		PlayersPerTeam: DEFAULT_PLAYERS_PER_TEAM,
		ArrivalMin:     DEFAULT_ARRIVAL_MIN,
		ArrivalMax:     DEFAULT_ARRIVAL_MAX,
		MatchDuration:  DEFAULT_MATCH_DURATION,
	}
}

// PlayerLateThreshold is the number of players the teams can absorb.
// Any player arriving after that is late.
func (c Config) PlayerLateThreshold() int {
	return c.Teams * c.PlayersPerTeam
}

func (c Config) GoalieLateThreshold() int {
	return c.Teams
}

// ActivePlayers is the number of actors that end up on a team.
func (c Config) ActivePlayers() int {
	return c.Teams * (c.PlayersPerTeam + 1)
}

// Validate checks the shape of the configuration. It does not require the
// population to be large enough to fill every team, see ValidatePopulation.
func (c Config) Validate() error {
	switch {
	case c.Players <= 0:
		return ErrInvalidConfig.GenWithStackByArgs(fmt.Sprintf("players must be positive, got %d", c.Players))
	case c.Goalies <= 0:
		return ErrInvalidConfig.GenWithStackByArgs(fmt.Sprintf("goalies must be positive, got %d", c.Goalies))
	case c.Teams <= 0 || c.Teams > MAX_TEAMS:
		return ErrInvalidConfig.GenWithStackByArgs(fmt.Sprintf("teams must be in [1, %d], got %d", MAX_TEAMS, c.Teams))
	case c.PlayersPerTeam <= 0:
		return ErrInvalidConfig.GenWithStackByArgs(fmt.Sprintf("players per team must be positive, got %d", c.PlayersPerTeam))
	case c.ArrivalMin < 0 || c.ArrivalMax < c.ArrivalMin:
		return ErrInvalidConfig.GenWithStackByArgs(fmt.Sprintf("invalid arrival window [%s, %s)", c.ArrivalMin, c.ArrivalMax))
	case c.MatchDuration < 0:
		return ErrInvalidConfig.GenWithStackByArgs(fmt.Sprintf("negative match duration %s", c.MatchDuration))
	}
	return nil
}

// ValidatePopulation reports whether every team can be filled. A match
// started without enough players or goalies stalls forever.
func (c Config) ValidatePopulation() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Players < c.PlayerLateThreshold() {
		return ErrInvalidConfig.GenWithStackByArgs(
			fmt.Sprintf("%d players cannot fill %d teams of %d", c.Players, c.Teams, c.PlayersPerTeam))
	}
	if c.Goalies < c.GoalieLateThreshold() {
		return ErrInvalidConfig.GenWithStackByArgs(
			fmt.Sprintf("%d goalies cannot cover %d teams", c.Goalies, c.Teams))
	}
	return nil
}

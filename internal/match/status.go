package match

import (
	"fmt"
)

// Status is the lifecycle state of a player or goalie.
type Status int

const (
	StatusNone Status = iota // not started yet
	StatusArriving
	StatusLate
	StatusFormingTeam
	StatusWaitingTeams
	StatusWaitingStart1
	StatusWaitingStart2
	StatusPlaying1
	StatusPlaying2
)

var statusNames = map[Status]string{
	StatusNone:          "NONE",
	StatusArriving:      "ARRIVING",
	StatusLate:          "LATE",
	StatusFormingTeam:   "FORMING_TEAM",
	StatusWaitingTeams:  "WAITING_TEAMS",
	StatusWaitingStart1: "WAITING_START_1",
	StatusWaitingStart2: "WAITING_START_2",
	StatusPlaying1:      "PLAYING_1",
	StatusPlaying2:      "PLAYING_2",
}

// statusCodes are the fixed width columns of the trace log.
var statusCodes = map[Status]string{
	StatusNone:          "---",
	StatusArriving:      "arr",
	StatusLate:          "lat",
	StatusFormingTeam:   "fte",
	StatusWaitingTeams:  "wte",
	StatusWaitingStart1: "ws1",
	StatusWaitingStart2: "ws2",
	StatusPlaying1:      "pl1",
	StatusPlaying2:      "pl2",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func (s Status) Code() string {
	if code, ok := statusCodes[s]; ok {
		return code
	}
	return "???"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether an actor in this state has left the formation
// protocol for good.
func (s Status) Terminal() bool {
	return s == StatusLate || s == StatusPlaying1 || s == StatusPlaying2
}

// waitingStart and playing map a team id onto its per-team state.
func waitingStart(team int) Status {
	if team == 1 {
		return StatusWaitingStart1
	}
	return StatusWaitingStart2
}

func playing(team int) Status {
	if team == 1 {
		return StatusPlaying1
	}
	return StatusPlaying2
}

// RefereeStatus is the lifecycle state of the referee.
type RefereeStatus int

const (
	RefereeNone RefereeStatus = iota
	RefereeArriving
	RefereeWaitingTeams
	RefereeStartingGame
	RefereeRefereeing
	RefereeEndingGame
)

var refereeNames = map[RefereeStatus]string{
	RefereeNone:         "NONE",
	RefereeArriving:     "ARRIVING",
	RefereeWaitingTeams: "WAITING_TEAMS",
	RefereeStartingGame: "STARTING_GAME",
	RefereeRefereeing:   "REFEREEING",
	RefereeEndingGame:   "ENDING_GAME",
}

var refereeCodes = map[RefereeStatus]string{
	RefereeNone:         "---",
	RefereeArriving:     "arr",
	RefereeWaitingTeams: "wte",
	RefereeStartingGame: "sgm",
	RefereeRefereeing:   "ref",
	RefereeEndingGame:   "egm",
}

func (s RefereeStatus) String() string {
	if name, ok := refereeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("RefereeStatus(%d)", int(s))
}

func (s RefereeStatus) Code() string {
	if code, ok := refereeCodes[s]; ok {
		return code
	}
	return "???"
}

func (s RefereeStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

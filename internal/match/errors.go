package match

import "github.com/pingcap/errors"

var (
	ErrInvalidConfig = errors.Normalize(
		"invalid match config, %s",
		errors.RFCCodeText("SOCCER:ErrInvalidConfig"),
	)
	ErrInvalidActorID = errors.Normalize(
		"%s id %d out of range [0, %d)",
		errors.RFCCodeText("SOCCER:ErrInvalidActorID"),
	)
	ErrChannelOverflow = errors.Normalize(
		"rendezvous channel %s signaled beyond capacity %d",
		errors.RFCCodeText("SOCCER:ErrChannelOverflow"),
	)
	ErrUnknownOutcome = errors.Normalize(
		"unknown team formation outcome %d for %s %d",
		errors.RFCCodeText("SOCCER:ErrUnknownOutcome"),
	)
	ErrInvalidTeam = errors.Normalize(
		"team id %d out of range [1, %d]",
		errors.RFCCodeText("SOCCER:ErrInvalidTeam"),
	)
	ErrRecordState = errors.Normalize(
		"failed to record state, %s",
		errors.RFCCodeText("SOCCER:ErrRecordState"),
	)
)

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/theadell/soccergame/internal/match"
)

const usage = `Usage: soccergame <command> [flags]

Commands:
  run    simulate one match and write its trace log
  serve  start matches from Slack and expose their state over HTTP
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runCmd(os.Args[2:]))
	case "serve":
		os.Exit(serveCmd(os.Args[2:]))
	case "-h", "-help", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
}

// matchFlags registers the match shape on fs, defaulting to the standard
// two teams of three field players and a goalie.
func matchFlags(fs *flag.FlagSet) *match.Config {
	cfg := match.DefaultConfig()
	fs.IntVar(&cfg.Players, "players", cfg.Players, "Number of field players")
	fs.IntVar(&cfg.Goalies, "goalies", cfg.Goalies, "Number of goalies")
	fs.IntVar(&cfg.PlayersPerTeam, "team-size", cfg.PlayersPerTeam, "Field players per team")
	fs.DurationVar(&cfg.ArrivalMin, "arrival-min", cfg.ArrivalMin, "Shortest travel time of an actor")
	fs.DurationVar(&cfg.ArrivalMax, "arrival-max", cfg.ArrivalMax, "Longest travel time of an actor")
	fs.DurationVar(&cfg.MatchDuration, "duration", cfg.MatchDuration, "How long the referee lets the match run")
	return &cfg
}

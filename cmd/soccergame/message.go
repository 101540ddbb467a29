package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/slack-go/slack"
	"github.com/theadell/soccergame/internal/match"
)

func NewMatchInitiationMsg(playerId string, cfg match.Config) slack.MsgOption {
	text := fmt.Sprintf("<!here>, <@%s> pfeift ein Spiel an! %d Spieler und %d Torhüter sind auf dem Weg zum Platz, gesucht werden %d Teams mit je %d Spielern und einem Torhüter.",
		playerId, cfg.Players, cfg.Goalies, cfg.Teams, cfg.PlayersPerTeam)
	textBlock := slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil)
	return slack.MsgOptionBlocks(textBlock, slack.NewDividerBlock())
}

func MatchProgressMsg(s match.Snapshot, cfg match.Config) slack.MsgOption {
	var text string
	if s.RefereeStatus >= match.RefereeRefereeing {
		text = fmt.Sprintf("Anpfiff! %d Teams stehen auf dem Platz.", s.TeamsFormed())
	} else {
		text = fmt.Sprintf("%d von %d Teams stehen. %d Spieler und %d Torhüter warten noch auf ein Team.",
			s.TeamsFormed(), cfg.Teams, s.PlayersFree, s.GoaliesFree)
	}
	blocks := []slack.Block{
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	}
	return slack.MsgOptionBlocks(blocks...)
}

func MatchResultMsg(res match.Result) slack.MsgOption {
	teams := make([]int, 0, len(res.Lineups))
	for team := range res.Lineups {
		teams = append(teams, team)
	}
	sort.Ints(teams)

	lines := []string{"Abpfiff! Die Aufstellungen:"}
	for _, team := range teams {
		lines = append(lines, lineupText(team, res.Lineups[team]))
	}
	if len(res.LatePlayers) > 0 || len(res.LateGoalies) > 0 {
		lines = append(lines, fmt.Sprintf("Zu spät: %s", lateText(res)))
	}
	text := strings.Join(lines, "\n")
	return slack.MsgOptionBlocks(slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil))
}

func MatchAbortedMsg() slack.MsgOption {
	return slack.MsgOptionBlocks(slack.NewSectionBlock(
		slack.NewTextBlockObject("mrkdwn", "Das Spiel wurde abgebrochen.", false, false), nil, nil))
}

func lineupText(team int, l match.Lineup) string {
	players := make([]string, len(l.Players))
	for i, id := range l.Players {
		players[i] = fmt.Sprintf("P%02d", id)
	}
	return fmt.Sprintf("*Team %d*: %s, Tor: G%02d", team, strings.Join(players, " "), l.Goalie)
}

func lateText(res match.Result) string {
	late := make([]string, 0, len(res.LatePlayers)+len(res.LateGoalies))
	for _, id := range res.LatePlayers {
		late = append(late, fmt.Sprintf("P%02d", id))
	}
	for _, id := range res.LateGoalies {
		late = append(late, fmt.Sprintf("G%02d", id))
	}
	return strings.Join(late, " ")
}

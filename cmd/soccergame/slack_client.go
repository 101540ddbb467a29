package main

import (
	"github.com/slack-go/slack"
)

//go:generate mockgen -source=slack_client.go -destination=mock_slack_client_test.go -package=main

// SlackClient is the subset of slack.Client the match manager uses.
// It's designed to abstract Slack operations for easier testing.
// Refer to the slack-go package for detailed documentation: https://pkg.go.dev/github.com/slack-go/slack#Client
type SlackClient interface {

	// PostEphemeral sends a temporary message visible only to a specific user in a channel.
	// Returns a timestamp of the posted message or an error.
	PostEphemeral(channelID, userID string, options ...slack.MsgOption) (string, error)

	// PostMessage sends a message to a Slack channel.
	// Returns the channel ID and timestamp of the posted message, or an error.
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)

	// UpdateMessage updates an existing message in a Slack channel.
	// Returns the channel ID, the message timestamp, and the text of the updated message, or an error if the update fails.
	UpdateMessage(channelID, timestamp string, options ...slack.MsgOption) (string, string, string, error)
}

// compile-time assertion to ensure that `slack.Client` implements `SlackClient`
var _ SlackClient = (*slack.Client)(nil)

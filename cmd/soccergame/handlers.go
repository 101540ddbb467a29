package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/slack-go/slack"
)

const STREAM_WRITE_TIMEOUT = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func handleSlackCommand(mm *MatchManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			slog.Error("Failed to parse slash command", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		switch cmd.Command {
		case CMD_START_MATCH:
			mm.StartMatch(SlackChannel(cmd.ChannelID), cmd.UserID)
		default:
			slog.Warn("Recieved an invalid command", "command", cmd.Command, "sender", r.RemoteAddr)
			w.WriteHeader(http.StatusBadRequest)
			return

		}
		w.WriteHeader(http.StatusOK)
	}
}

func handleMatchState(mm *MatchManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channel := SlackChannel(chi.URLParam(r, "channel"))
		s, ok := mm.Snapshot(channel)
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s); err != nil {
			slog.Error("Failed to encode snapshot", "error", err, "channel", channel)
		}
	}
}

// handleMatchStream pushes every snapshot of a running match over a
// websocket, starting with the latest one.
func handleMatchStream(mm *MatchManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channel := SlackChannel(chi.URLParam(r, "channel"))
		snapshots, unsubscribe, ok := mm.Subscribe(channel)
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		defer unsubscribe()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("Failed to upgrade stream", "error", err, "sender", r.RemoteAddr)
			return
		}
		defer conn.Close()

		// Drain the read side so a client close is noticed
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.NextReader(); err != nil {
					return
				}
			}
		}()

		if s, ok := mm.Snapshot(channel); ok {
			if err := writeSnapshot(conn, s); err != nil {
				return
			}
		}
		for {
			select {
			case s, open := <-snapshots:
				if !open {
					conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, "match finished"),
						time.Now().Add(STREAM_WRITE_TIMEOUT))
					return
				}
				if err := writeSnapshot(conn, s); err != nil {
					slog.Debug("Stream write failed", "error", err, "channel", channel)
					return
				}
			case <-closed:
				return
			}
		}
	}
}

func writeSnapshot(conn *websocket.Conn, v any) error {
	conn.SetWriteDeadline(time.Now().Add(STREAM_WRITE_TIMEOUT))
	return conn.WriteJSON(v)
}

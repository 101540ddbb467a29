package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/slack-go/slack"
	"github.com/theadell/soccergame/internal/match"
	"github.com/theadell/soccergame/internal/trace"
)

const (
	CMD_START_MATCH       string = "/anpfiff" // Start a match in the channel
	DEFAULT_MATCH_TIMEOUT        = 30 * time.Second
)

type SlackChannel string

// MatchSession is a match running in one Slack channel.
type MatchSession struct {
	hub       *trace.Hub
	file      *trace.File // nil unless a trace directory is set
	messageTs string
	cancel    context.CancelFunc
	mu        *sync.Mutex
}

func (s *MatchSession) ts() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messageTs
}

type MatchManager struct {
	apiClient SlackClient
	cfg       match.Config
	timeout   time.Duration
	traceDir  string
	matches   map[SlackChannel]*MatchSession
	finished  map[SlackChannel]match.Snapshot // last snapshot of the previous match
	mu        sync.Mutex
	wg        sync.WaitGroup
}

func NewMatchManager(apiClient SlackClient, cfg match.Config, timeout time.Duration) *MatchManager {
	return &MatchManager{
		apiClient: apiClient,
		cfg:       cfg,
		timeout:   timeout,
		matches:   make(map[SlackChannel]*MatchSession),
		finished:  make(map[SlackChannel]match.Snapshot),
	}
}

// WithTraceDir makes every following match also write its trace log to
// dir, one file per channel.
func (mm *MatchManager) WithTraceDir(dir string) *MatchManager {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.traceDir = dir
	return mm
}

func (mm *MatchManager) StartMatch(channel SlackChannel, player string) {

	// Ensure only one match per channel
	mm.mu.Lock()
	if _, exists := mm.matches[channel]; exists {
		mm.mu.Unlock()
		mm.apiClient.PostEphemeral(string(channel), player, slack.MsgOptionText("Auf diesem Kanal läuft bereits ein Spiel!", false))
		return
	}

	hub := trace.NewHub()
	var rec match.Recorder = hub
	var file *trace.File
	if mm.traceDir != "" {
		f, err := trace.OpenFile(filepath.Join(mm.traceDir, string(channel)+".log"))
		if err != nil {
			mm.mu.Unlock()
			slog.Error("Failed to open trace log", "error", err, "channel", channel)
			mm.apiClient.PostEphemeral(string(channel), player, slack.MsgOptionText("Ein Fehler ist aufgetreten!", false))
			return
		}
		file = f
		rec = trace.Multi(hub, file)
	}
	m, err := match.New(mm.cfg, rec)
	if err != nil {
		mm.mu.Unlock()
		closeTrace(file)
		slog.Error("Failed to create match", "error", err)
		mm.apiClient.PostEphemeral(string(channel), player, slack.MsgOptionText("Ein Fehler ist aufgetreten!", false))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), mm.timeout)
	session := &MatchSession{
		hub:    hub,
		file:   file,
		cancel: cancel,
		mu:     &sync.Mutex{},
	}
	mm.matches[channel] = session
	mm.mu.Unlock()

	// Send an initiation message to Slack
	_, ts, err := mm.apiClient.PostMessage(string(channel), NewMatchInitiationMsg(player, mm.cfg))
	if err != nil {
		slog.Error("Failed to send message", "error", err)
		cancel()
		closeTrace(file)
		mm.mu.Lock()
		delete(mm.matches, channel)
		mm.mu.Unlock()
		mm.apiClient.PostEphemeral(string(channel), player, slack.MsgOptionText("Ein Fehler ist aufgetreten!", false))
		return
	}

	session.mu.Lock()
	session.messageTs = ts
	session.mu.Unlock()

	// Subscribe before the actors start so no milestone is missed
	snapshots, unsubscribe := hub.Subscribe()
	watchDone := make(chan struct{})

	mm.wg.Add(2)
	go func() {
		defer mm.wg.Done()
		defer close(watchDone)
		defer unsubscribe()
		mm.watch(channel, session, snapshots)
	}()
	go func() {
		defer mm.wg.Done()
		defer cancel()
		mm.run(ctx, channel, session, m, watchDone)
	}()
}

// watch posts an update to the match message whenever a team forms or the
// match kicks off.
func (mm *MatchManager) watch(channel SlackChannel, session *MatchSession, snapshots <-chan match.Snapshot) {
	var prev match.Snapshot
	for s := range snapshots {
		if isMilestone(prev, s) {
			_, _, _, err := mm.apiClient.UpdateMessage(string(channel), session.ts(), MatchProgressMsg(s, mm.cfg))
			if err != nil {
				slog.Error("Failed to update match message", "error", err, "channel", channel)
			}
		}
		prev = s
	}
}

func (mm *MatchManager) run(ctx context.Context, channel SlackChannel, session *MatchSession, m *match.Match, watchDone <-chan struct{}) {
	slog.Info("Match started", "channel", channel)
	res, err := m.Run(ctx)

	// No progress update may overwrite the final message
	session.hub.Close()
	closeTrace(session.file)
	<-watchDone

	msg := MatchAbortedMsg()
	if err != nil {
		slog.Error("Match aborted", "channel", channel, "error", err)
	} else {
		msg = MatchResultMsg(res)
	}
	if _, _, _, err := mm.apiClient.UpdateMessage(string(channel), session.ts(), msg); err != nil {
		slog.Error("Failed to update match message", "error", err, "channel", channel)
	}

	mm.mu.Lock()
	delete(mm.matches, channel)
	mm.finished[channel] = m.Store().Snapshot()
	mm.mu.Unlock()
}

func closeTrace(f *trace.File) {
	if f == nil {
		return
	}
	if err := f.Close(); err != nil {
		slog.Error("Failed to close trace log", "error", err)
	}
}

// isMilestone reports whether cur is worth telling the channel about.
// Snapshots may be skipped in between, so only counters are compared.
func isMilestone(prev, cur match.Snapshot) bool {
	if cur.TeamsFormed() > prev.TeamsFormed() {
		return true
	}
	return prev.RefereeStatus < match.RefereeRefereeing && cur.RefereeStatus >= match.RefereeRefereeing
}

// Snapshot returns the latest state of the match in channel, running or
// finished.
func (mm *MatchManager) Snapshot(channel SlackChannel) (match.Snapshot, bool) {
	mm.mu.Lock()
	session, running := mm.matches[channel]
	finished, ok := mm.finished[channel]
	mm.mu.Unlock()

	if running {
		if s, seen := session.hub.Last(); seen {
			return s, true
		}
	}
	return finished, ok
}

// Subscribe streams the snapshots of the match running in channel.
func (mm *MatchManager) Subscribe(channel SlackChannel) (<-chan match.Snapshot, func(), bool) {
	mm.mu.Lock()
	session, running := mm.matches[channel]
	mm.mu.Unlock()
	if !running {
		return nil, nil, false
	}
	ch, unsubscribe := session.hub.Subscribe()
	return ch, unsubscribe, true
}

// Running reports whether a match is in progress in channel.
func (mm *MatchManager) Running(channel SlackChannel) bool {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	_, ok := mm.matches[channel]
	return ok
}

// Shutdown cancels every running match and waits for them to wind down.
func (mm *MatchManager) Shutdown(ctx context.Context) {
	mm.mu.Lock()
	for _, session := range mm.matches {
		session.cancel()
	}
	mm.mu.Unlock()

	done := make(chan struct{})
	go func() {
		mm.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		slog.Warn("Match manager shutdown timed out", "error", ctx.Err())
	}
}

package engine

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/actions"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/commands"
	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/state"
)

const replayVersion = 1

// ErrReplayDiverged is returned when a recorded action is rejected on
// replay.
var ErrReplayDiverged = errors.New("replay diverged")

// ReplayEntry is one accepted action in wire form.
type ReplayEntry struct {
	PlayerID string          `json:"playerId"`
	Action   json.RawMessage `json:"action"`
}

// Replay is the initial state of a game plus every accepted action. The
// engine is deterministic, so replaying the entries reproduces every later
// state, including undo history.
type Replay struct {
	Initial state.GameState
	Entries []ReplayEntry
}

type replayHeader struct {
	GameID    string          `json:"gameId"`
	Version   int             `json:"version"`
	Timestamp time.Time       `json:"timestamp"`
	Count     int             `json:"count"`
	Initial   json.RawMessage `json:"initial"`
}

// NewReplay starts an empty journal.
func NewReplay(initial state.GameState) *Replay {
	return &Replay{Initial: initial.Clone()}
}

// Record appends an action.
func (r *Replay) Record(playerID string, a actions.Action) error {
	data, err := actions.Encode(a)
	if err != nil {
		return err
	}
	r.Entries = append(r.Entries, ReplayEntry{PlayerID: playerID, Action: data})
	return nil
}

// Size returns the number of recorded actions.
func (r *Replay) Size() int {
	return len(r.Entries)
}

// Copy returns an independent replay.
func (r *Replay) Copy() *Replay {
	return &Replay{Initial: r.Initial.Clone(), Entries: slices.Clone(r.Entries)}
}

// StateAt replays the first n actions and returns the state reached.
func (r *Replay) StateAt(e *Engine, n int) (state.GameState, error) {
	if n < 0 || n > len(r.Entries) {
		return state.GameState{}, fmt.Errorf("replay: index %d out of range [0,%d]", n, len(r.Entries))
	}
	s := r.Initial.Clone()
	history := commands.NewStack()
	for i, entry := range r.Entries[:n] {
		a, err := actions.Decode(entry.Action)
		if err != nil {
			return state.GameState{}, fmt.Errorf("replay entry %d: %w", i, err)
		}
		out := e.ProcessAction(s, history, entry.PlayerID, a)
		if !out.Accepted() {
			return state.GameState{}, fmt.Errorf("%w at entry %d: %s", ErrReplayDiverged, i, out.Error)
		}
		s = out.State
	}
	return s, nil
}

// Final replays every action.
func (r *Replay) Final(e *Engine) (state.GameState, error) {
	return r.StateAt(e, len(r.Entries))
}

// SaveToFile writes the replay to <directory>/<gameID>.replay as gzipped
// JSON lines: a header, then one entry per line.
func (r *Replay) SaveToFile(directory string) (string, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", fmt.Errorf("create replay directory: %w", err)
	}
	initial, err := state.Canonical(r.Initial)
	if err != nil {
		return "", err
	}
	filename := filepath.Join(directory, r.Initial.GameID+".replay")
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("create replay file: %w", err)
	}
	defer file.Close()

	zw := gzip.NewWriter(file)
	enc := json.NewEncoder(zw)
	header := replayHeader{
		GameID:    r.Initial.GameID,
		Version:   replayVersion,
		Timestamp: time.Now().UTC(),
		Count:     len(r.Entries),
		Initial:   initial,
	}
	if err := enc.Encode(header); err != nil {
		return "", fmt.Errorf("encode replay header: %w", err)
	}
	for i, entry := range r.Entries {
		if err := enc.Encode(entry); err != nil {
			return "", fmt.Errorf("encode replay entry %d: %w", i, err)
		}
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("flush replay: %w", err)
	}
	return filename, nil
}

// LoadReplay reads a file written by SaveToFile.
func LoadReplay(filename string) (*Replay, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open replay: %w", err)
	}
	defer file.Close()

	zr, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("open replay stream: %w", err)
	}
	defer zr.Close()

	dec := json.NewDecoder(bufio.NewReader(zr))
	var header replayHeader
	if err := dec.Decode(&header); err != nil {
		return nil, fmt.Errorf("decode replay header: %w", err)
	}
	if header.Version != replayVersion {
		return nil, fmt.Errorf("unsupported replay version: %d", header.Version)
	}
	initial, err := state.Decode(header.Initial)
	if err != nil {
		return nil, err
	}
	r := NewReplay(initial)
	for i := 0; i < header.Count; i++ {
		var entry ReplayEntry
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("decode replay entry %d: %w", i, err)
		}
		r.Entries = append(r.Entries, entry)
	}
	return r, nil
}

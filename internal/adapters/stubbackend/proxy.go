package stubbackend

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Data endpoints for development. The stub keeps a single clock and returns
// canned payloads shaped like the real backend's, so every page renders
// without a backend running.

func (b *Backend) requireToken(token string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.issued[token] {
		return unauthorized("Invalid token.")
	}
	return nil
}

// ToggleClock flips the stub clock and returns the new state.
func (b *Backend) ToggleClock(_ context.Context, token string) (json.RawMessage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.issued[token] {
		return nil, unauthorized("Invalid token.")
	}

	b.clockedIn = !b.clockedIn
	b.clockedAt = time.Now()
	return b.clockJSON(), nil
}

// ClockState returns the stub clock's current state.
func (b *Backend) ClockState(_ context.Context, token string) (json.RawMessage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.issued[token] {
		return nil, unauthorized("Invalid token.")
	}
	return b.clockJSON(), nil
}

// UserStats returns canned dashboard statistics.
func (b *Backend) UserStats(_ context.Context, token, userID string) (json.RawMessage, error) {
	if err := b.requireToken(token); err != nil {
		return nil, err
	}
	payload := map[string]any{
		"user_id":          userID,
		"hours_this_week":  32.5,
		"hours_this_month": 142.0,
		"overtime_hours":   2.5,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode stats: %w", err)
	}
	return raw, nil
}

// Forward answers team and user administration calls with empty collections.
func (b *Backend) Forward(_ context.Context, method, path, token string, _ json.RawMessage) (json.RawMessage, error) {
	if err := b.requireToken(token); err != nil {
		return nil, err
	}
	if method == "GET" {
		return json.RawMessage(`[]`), nil
	}
	return json.RawMessage(`{}`), nil
}

func (b *Backend) clockJSON() json.RawMessage {
	payload := map[string]any{
		"clocked_in": b.clockedIn,
	}
	if !b.clockedAt.IsZero() {
		payload["since"] = b.clockedAt.UTC().Format(time.RFC3339)
	}
	raw, _ := json.Marshal(payload)
	return raw
}

package events

import (
	"encoding/json"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

func TestDecodeMessage(t *testing.T) {
	event, err := newEvent(BalanceUpdated, BalanceUpdatedEvent{
		AccountID:  "acct-1",
		NewBalance: decimal.RequireFromString("80.00"),
		Change:     decimal.RequireFromString("-20.00"),
	})
	if err != nil {
		t.Fatalf("newEvent: %v", err)
	}
	raw, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	decoded, err := decodeMessage(redis.XMessage{ID: "1-0", Values: map[string]any{"event": string(raw)}})
	if err != nil {
		t.Fatalf("decodeMessage: %v", err)
	}
	if decoded.Type != BalanceUpdated {
		t.Errorf("expected %s got %s", BalanceUpdated, decoded.Type)
	}
	var payload BalanceUpdatedEvent
	if err := decoded.Decode(&payload); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if payload.AccountID != "acct-1" || !payload.Change.Equal(decimal.NewFromInt(-20)) {
		t.Errorf("unexpected payload: %+v", payload)
	}
}

func TestDecodeMessage_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
	}{
		{"missing event field", map[string]any{"other": "x"}},
		{"non-string event", map[string]any{"event": 42}},
		{"malformed json", map[string]any{"event": "{not json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decodeMessage(redis.XMessage{ID: "1-0", Values: tt.values}); err == nil {
				t.Errorf("[%s] expected error", tt.name)
			}
		})
	}
}

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func captureSlog(t *testing.T, event Event) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	NewSlogAdapter(slog.New(handler)).Log(event)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output %q: %v", buf.String(), err)
	}
	return entry
}

func TestSlogAdapterLogsFrameEvent(t *testing.T) {
	entry := captureSlog(t, Event{
		Timestamp: time.Now(),
		SessionID: "sess-1",
		Direction: DirectionOut,
		Layer:     LayerBus,
		Category:  CategoryMessage,
		Frame:     &FrameEvent{Data: []byte{0x40, 0x9E, 0x05}, Source: 4, Destination: 0, Result: TxAck},
	})

	want := map[string]any{
		"msg":       "cec",
		"session":   "sess-1",
		"direction": "OUT",
		"layer":     "BUS",
		"frame":     "40 9e 05",
		"header":    "4->0",
		"result":    "ACK",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s: got %v, want %v", k, entry[k], v)
		}
	}
}

func TestSlogAdapterLogsMessageEvent(t *testing.T) {
	entry := captureSlog(t, Event{
		Layer:    LayerProcessor,
		Category: CategoryMessage,
		Message:  &MessageEvent{Name: "GET_CEC_VERSION", Source: 0, Destination: 15, Disposition: DispositionIgnored},
	})

	if entry["disposition"] != "IGNORED" {
		t.Errorf("disposition: got %v, want IGNORED", entry["disposition"])
	}
	if _, ok := entry["detail"]; ok {
		t.Error("detail should be omitted when empty")
	}
}

func TestSlogAdapterLogsPingAndError(t *testing.T) {
	entry := captureSlog(t, Event{Category: CategoryControl, Ping: &PingEvent{Target: 8, Acked: true}})
	if entry["target"] != float64(8) || entry["acked"] != true {
		t.Errorf("ping attrs = %v", entry)
	}

	code := 2
	entry = captureSlog(t, Event{Category: CategoryError, Error: &ErrorEventData{Layer: LayerBus, Message: "nack", Code: &code}})
	if entry["error_msg"] != "nack" || entry["error_code"] != float64(2) {
		t.Errorf("error attrs = %v", entry)
	}
}

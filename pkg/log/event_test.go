package log

import "testing"

func TestDirectionString(t *testing.T) {
	tests := []struct {
		dir  Direction
		want string
	}{
		{DirectionIn, "IN"},
		{DirectionOut, "OUT"},
		{Direction(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.dir.String()
		if got != tt.want {
			t.Errorf("Direction(%d).String() = %q, want %q", tt.dir, got, tt.want)
		}
	}
}

func TestLayerString(t *testing.T) {
	tests := []struct {
		layer Layer
		want  string
	}{
		{LayerBus, "BUS"},
		{LayerProcessor, "PROCESSOR"},
		{LayerService, "SERVICE"},
		{Layer(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.layer.String(); got != tt.want {
			t.Errorf("Layer(%d).String() = %q, want %q", tt.layer, got, tt.want)
		}
	}
}

func TestTxResultString(t *testing.T) {
	tests := []struct {
		r    TxResult
		want string
	}{
		{TxNone, "-"},
		{TxAck, "ACK"},
		{TxNoAck, "NACK"},
		{TxFailed, "FAILED"},
		{TxQueued, "QUEUED"},
		{TxResult(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("TxResult(%d).String() = %q, want %q", tt.r, got, tt.want)
		}
	}
}

func TestDispositionAndEntityString(t *testing.T) {
	if got := DispositionIgnored.String(); got != "IGNORED" {
		t.Errorf("DispositionIgnored = %q", got)
	}
	if got := DispositionSent.String(); got != "SENT" {
		t.Errorf("DispositionSent = %q", got)
	}
	if got := StateEntityActiveSource.String(); got != "ACTIVE_SOURCE" {
		t.Errorf("StateEntityActiveSource = %q", got)
	}
	if got := CategoryControl.String(); got != "CONTROL" {
		t.Errorf("CategoryControl = %q", got)
	}
}

// Package commands implements the cec-log CLI commands.
package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Layer     *log.Layer
	Direction *log.Direction
	Category  *log.Category
	Peer      *uint8
}

func (f ViewFilter) toLogFilter() log.Filter {
	return log.Filter{
		Layer:     f.Layer,
		Direction: f.Direction,
		Category:  f.Category,
		Peer:      f.Peer,
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [session:id] [LA/PA] DIRECTION LAYER Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	session := shortenSessionID(event.SessionID)
	dir := event.Direction.String()

	var typeLabel string
	switch {
	case event.Frame != nil:
		typeLabel = "Frame"
	case event.Message != nil:
		typeLabel = event.Message.Name
	case event.StateChange != nil:
		typeLabel = "State"
	case event.Ping != nil:
		typeLabel = "Ping"
	case event.Error != nil:
		typeLabel = "Error"
	default:
		typeLabel = "Unknown"
	}

	layerStr := event.Layer.String()
	if event.Category == log.CategoryControl {
		layerStr = "CTRL"
	}

	local := strconv.Itoa(int(event.LocalAddress))
	if event.PhysicalAddress != "" {
		local += "/" + event.PhysicalAddress
	}

	fmt.Fprintf(w, "%s [session:%s] [%s] %-3s %s %s\n", ts, session, local, dir, layerStr, typeLabel)

	switch {
	case event.Frame != nil:
		formatFrameDetails(w, event.Frame)
	case event.Message != nil:
		formatMessageDetails(w, event.Message)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Ping != nil:
		formatPingDetails(w, event.Ping)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if id == "" {
		return "-"
	}
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func addressLabel(a uint8) string {
	return fmt.Sprintf("%d (%s)", a, cec.LogicalAddress(a&0x0F))
}

func opcodeLabel(op *uint8) string {
	if op == nil {
		return "POLLING"
	}
	return fmt.Sprintf("%s (0x%02x)", cec.OpCode(*op), *op)
}

// formatFrameDetails writes frame-specific details.
func formatFrameDetails(w io.Writer, frame *log.FrameEvent) {
	fmt.Fprintf(w, "  %s -> %s\n", addressLabel(frame.Source), addressLabel(frame.Destination))
	fmt.Fprintf(w, "  OpCode: %s\n", opcodeLabel(frame.OpCode))
	fmt.Fprintf(w, "  Data: %s (%d bytes)\n", hex.EncodeToString(frame.Data), len(frame.Data))
	if frame.Result != log.TxNone {
		fmt.Fprintf(w, "  Result: %s\n", frame.Result.String())
	}
}

// formatMessageDetails writes message-specific details.
func formatMessageDetails(w io.Writer, msg *log.MessageEvent) {
	fmt.Fprintf(w, "  %s -> %s\n", addressLabel(msg.Source), addressLabel(msg.Destination))
	fmt.Fprintf(w, "  OpCode: %s\n", opcodeLabel(msg.OpCode))
	fmt.Fprintf(w, "  Disposition: %s\n", msg.Disposition.String())
	if msg.Result != log.TxNone {
		fmt.Fprintf(w, "  Result: %s\n", msg.Result.String())
	}
	if msg.Detail != "" {
		fmt.Fprintf(w, "  Detail: %s\n", msg.Detail)
	}
}

// formatStateChangeDetails writes state change details.
func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity.String())
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatPingDetails(w io.Writer, p *log.PingEvent) {
	acked := "no ack"
	if p.Acked {
		acked = "acked"
	}
	fmt.Fprintf(w, "  Target: %s %s\n", addressLabel(p.Target), acked)
	if p.Purpose != "" {
		fmt.Fprintf(w, "  Purpose: %s\n", p.Purpose)
	}
}

// formatErrorDetails writes error details.
func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Code != nil {
		fmt.Fprintf(w, "  Code: %d\n", *err.Code)
	}
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// ParseLayerFlag parses a layer string from command-line flag (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	return parseLayer(s)
}

func parseLayer(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "bus":
		return log.LayerBus, nil
	case "processor":
		return log.LayerProcessor, nil
	case "service":
		return log.LayerService, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be bus, processor, or service)", s)
	}
}

// ParseDirectionFlag parses a direction string from command-line flag (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	return parseDirection(s)
}

func parseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "message":
		return log.CategoryMessage, nil
	case "control":
		return log.CategoryControl, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be message, control, state, or error)", s)
	}
}

// ParsePeerFlag parses a logical address (0-15).
func ParsePeerFlag(s string) (uint8, error) {
	return parseNibble(s, "peer")
}

func parseNibble(s, what string) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil || v > 15 {
		return 0, fmt.Errorf("invalid %s: %s (must be 0-15)", what, s)
	}
	return uint8(v), nil
}

// parseOpCode accepts a number ("0x82", "130") or an opcode name ("ACTIVE_SOURCE").
func parseOpCode(s string) (uint8, error) {
	if v, err := strconv.ParseUint(s, 0, 8); err == nil {
		return uint8(v), nil
	}
	want := strings.ToUpper(s)
	for i := 0; i <= 0xFF; i++ {
		if cec.OpCode(i).String() == want {
			return uint8(i), nil
		}
	}
	return 0, fmt.Errorf("invalid opcode: %s", s)
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.toLogFilter())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}

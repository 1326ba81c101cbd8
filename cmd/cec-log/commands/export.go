package commands

import (
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/devsettings/cecsource-go/pkg/log"
)

// RunExport exports the capture file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	return export(reader, format, w)
}

func export(reader *log.Reader, format string, w io.Writer) error {
	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

var csvHeader = []string{
	"timestamp", "session_id", "direction", "layer", "category",
	"local_address", "type", "source", "destination", "opcode", "data", "detail",
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := cw.Write(csvRow(event)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}

func csvRow(event log.Event) []string {
	var eventType, src, dst, op, data, detail string
	opcode := func(p *uint8) string {
		if p == nil {
			return ""
		}
		return fmt.Sprintf("0x%02x", *p)
	}

	switch {
	case event.Frame != nil:
		eventType = "frame"
		src = strconv.Itoa(int(event.Frame.Source))
		dst = strconv.Itoa(int(event.Frame.Destination))
		op = opcode(event.Frame.OpCode)
		data = hex.EncodeToString(event.Frame.Data)
		if event.Frame.Result != log.TxNone {
			detail = event.Frame.Result.String()
		}
	case event.Message != nil:
		eventType = event.Message.Name
		src = strconv.Itoa(int(event.Message.Source))
		dst = strconv.Itoa(int(event.Message.Destination))
		op = opcode(event.Message.OpCode)
		detail = event.Message.Disposition.String()
		if event.Message.Detail != "" {
			detail += " " + event.Message.Detail
		}
	case event.StateChange != nil:
		eventType = "state"
		detail = fmt.Sprintf("%s %s->%s", event.StateChange.Entity, event.StateChange.OldState, event.StateChange.NewState)
	case event.Ping != nil:
		eventType = "ping"
		src = strconv.Itoa(int(event.LocalAddress))
		dst = strconv.Itoa(int(event.Ping.Target))
		detail = strconv.FormatBool(event.Ping.Acked)
	case event.Error != nil:
		eventType = "error"
		detail = event.Error.Message
	default:
		eventType = "unknown"
	}

	return []string{
		event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
		event.SessionID,
		event.Direction.String(),
		event.Layer.String(),
		event.Category.String(),
		strconv.Itoa(int(event.LocalAddress)),
		eventType,
		src,
		dst,
		op,
		data,
		detail,
	}
}

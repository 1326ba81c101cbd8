package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/log"
)

// Stats holds aggregate statistics about a capture file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	MessagesByName    map[string]int
	MessagesByOutcome map[log.Disposition]int
	TransmitsByResult map[log.TxResult]int
	Pings             int
	PingsAcked        int
	Sessions          map[string]*SessionStats
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for one enable/disable cycle.
type SessionStats struct {
	FirstSeen    time.Time
	LastSeen     time.Time
	Events       int
	LocalAddress uint8
	Peers        map[uint8]int
}

func newStats() *Stats {
	return &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		MessagesByName:    make(map[string]int),
		MessagesByOutcome: make(map[log.Disposition]int),
		TransmitsByResult: make(map[log.TxResult]int),
		Sessions:          make(map[string]*SessionStats),
	}
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	sess, ok := s.Sessions[event.SessionID]
	if !ok {
		sess = &SessionStats{
			FirstSeen: event.Timestamp,
			LastSeen:  event.Timestamp,
			Peers:     make(map[uint8]int),
		}
		s.Sessions[event.SessionID] = sess
	}
	sess.Events++
	sess.LocalAddress = event.LocalAddress
	if event.Timestamp.After(sess.LastSeen) {
		sess.LastSeen = event.Timestamp
	}

	switch {
	case event.Frame != nil:
		if event.Direction == log.DirectionOut {
			s.TransmitsByResult[event.Frame.Result]++
		} else {
			sess.Peers[event.Frame.Source]++
		}
	case event.Message != nil:
		s.MessagesByName[event.Message.Name]++
		s.MessagesByOutcome[event.Message.Disposition]++
	case event.Ping != nil:
		s.Pings++
		if event.Ping.Acked {
			s.PingsAcked++
		}
	case event.Error != nil:
		s.Errors++
	}
}

// RunStats analyzes the capture file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := newStats()
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== CEC Capture Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerBus, log.LayerProcessor, log.LayerService} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryMessage, log.CategoryControl, log.CategoryState, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.MessagesByName) > 0 {
		fmt.Fprintln(w, "Messages:")
		names := make([]string, 0, len(stats.MessagesByName))
		for name := range stats.MessagesByName {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %-26s %d\n", name+":", stats.MessagesByName[name])
		}
		for _, d := range []log.Disposition{log.DispositionHandled, log.DispositionIgnored, log.DispositionUnhandled, log.DispositionSent} {
			if count := stats.MessagesByOutcome[d]; count > 0 {
				fmt.Fprintf(w, "  %-26s %d\n", d.String()+":", count)
			}
		}
		fmt.Fprintln(w)
	}

	if len(stats.TransmitsByResult) > 0 {
		fmt.Fprintln(w, "Transmits:")
		for _, r := range []log.TxResult{log.TxAck, log.TxNoAck, log.TxFailed, log.TxQueued} {
			if count := stats.TransmitsByResult[r]; count > 0 {
				fmt.Fprintf(w, "  %-12s %d\n", r.String()+":", count)
			}
		}
		fmt.Fprintln(w)
	}

	if stats.Pings > 0 {
		fmt.Fprintf(w, "Pings: %d (%d acked)\n", stats.Pings, stats.PingsAcked)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) > 0 {
		type sessionInfo struct {
			id    string
			stats *SessionStats
		}
		sessions := make([]sessionInfo, 0, len(stats.Sessions))
		for id, ss := range stats.Sessions {
			sessions = append(sessions, sessionInfo{id, ss})
		}
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, s := range sessions {
			duration := s.stats.LastSeen.Sub(s.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenSessionID(s.id), s.stats.Events, duration)
			fmt.Fprintf(w, "           Local: %s\n", cec.LogicalAddress(s.stats.LocalAddress&0x0F))
			if len(s.stats.Peers) > 0 {
				peers := make([]int, 0, len(s.stats.Peers))
				for p := range s.stats.Peers {
					peers = append(peers, int(p))
				}
				sort.Ints(peers)
				fmt.Fprint(w, "           Heard from:")
				for _, p := range peers {
					fmt.Fprintf(w, " %d", p)
				}
				fmt.Fprintln(w)
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}

// Command cec-log is a tool for viewing and analyzing CEC capture files.
//
// Capture files are written by cec-source when started with the -capture
// flag. Each record is one CBOR-encoded event from the bus, the message
// processor or the source service.
//
// Usage:
//
//	cec-log <command> [flags] <file.clog>
//
// Commands:
//
//	view     View capture file in human-readable format
//	export   Export capture file to JSONL or CSV format
//	filter   Filter capture file and write to new file
//	stats    Show statistics about the capture file
//
// Examples:
//
//	# View all events
//	cec-log view source.clog
//
//	# View only raw frames sent by this device
//	cec-log view -layer bus -direction out source.clog
//
//	# View traffic to or from the TV
//	cec-log view -peer 0 source.clog
//
//	# Keep only Active Source traffic of one session
//	cec-log filter -session 1f0c2a4e -opcode ACTIVE_SOURCE -o as.clog source.clog
//
//	# Export to CSV
//	cec-log export -format csv -o source.csv source.clog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/devsettings/cecsource-go/cmd/cec-log/commands"
)

const usage = `cec-log - CEC Capture Analyzer

Usage:
  cec-log <command> [flags] <file.clog>

Commands:
  view     View capture file in human-readable format
  export   Export capture file to JSONL or CSV format
  filter   Filter capture file and write to new file
  stats    Show statistics about the capture file

Use "cec-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// parseArgs parses fs and returns the single capture file argument.
func parseArgs(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func usageFor(fs *flag.FlagSet, header string) func() {
	return func() {
		fmt.Fprint(os.Stderr, header)
		fs.PrintDefaults()
	}
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = usageFor(fs, `cec-log view - View capture file in human-readable format

Usage:
  cec-log view [flags] <file.clog>

Flags:
`)

	layer := fs.String("layer", "", "Filter by layer (bus, processor, service)")
	direction := fs.String("direction", "", "Filter by direction (in, out)")
	category := fs.String("category", "", "Filter by category (message, control, state, error)")
	peer := fs.String("peer", "", "Filter by peer logical address (0-15)")

	path := parseArgs(fs, args)

	var filter commands.ViewFilter
	if *layer != "" {
		l, err := commands.ParseLayerFlag(*layer)
		if err != nil {
			fatal(err)
		}
		filter.Layer = &l
	}
	if *direction != "" {
		d, err := commands.ParseDirectionFlag(*direction)
		if err != nil {
			fatal(err)
		}
		filter.Direction = &d
	}
	if *category != "" {
		c, err := commands.ParseCategoryFlag(*category)
		if err != nil {
			fatal(err)
		}
		filter.Category = &c
	}
	if *peer != "" {
		p, err := commands.ParsePeerFlag(*peer)
		if err != nil {
			fatal(err)
		}
		filter.Peer = &p
	}

	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fatal(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = usageFor(fs, `cec-log export - Export capture file to JSONL or CSV format

Usage:
  cec-log export [flags] <file.clog>

Flags:
`)

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	path := parseArgs(fs, args)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fatal(err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = usageFor(fs, `cec-log filter - Filter capture file and write to new file

Usage:
  cec-log filter [flags] <file.clog>

Flags:
`)

	var opts commands.FilterOptions
	fs.StringVar(&opts.Output, "o", "", "Output file (required)")
	fs.StringVar(&opts.SessionID, "session", "", "Filter by session ID")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	fs.StringVar(&opts.Layer, "layer", "", "Filter by layer (bus, processor, service)")
	fs.StringVar(&opts.Direction, "direction", "", "Filter by direction (in, out)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (message, control, state, error)")
	fs.StringVar(&opts.Peer, "peer", "", "Filter by peer logical address (0-15)")
	fs.StringVar(&opts.OpCode, "opcode", "", "Filter by opcode (number or name, e.g. 0x82 or ACTIVE_SOURCE)")

	path := parseArgs(fs, args)

	if opts.Output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	n, err := commands.RunFilter(path, opts)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Filtered %d events to %s\n", n, opts.Output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = usageFor(fs, `cec-log stats - Show statistics about the capture file

Usage:
  cec-log stats <file.clog>

`)

	path := parseArgs(fs, args)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fatal(err)
	}
}

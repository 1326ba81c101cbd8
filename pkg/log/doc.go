// Package log provides structured capture of CEC bus traffic.
//
// This package defines the Logger interface and Event types for recording
// what happened on the bus: raw frames in and out, decoded messages and how
// the processor dealt with them, pings, state changes and send failures.
// It is separate from operational logging (slog). A capture is a complete
// machine-readable trace for debugging interoperability problems with a
// particular TV or AV receiver.
//
// # Basic Usage
//
//	// Development: print captured events via slog
//	cfg.CaptureLogger = log.NewSlogAdapter(slog.Default())
//
//	// Field units: append to a capture file
//	cfg.CaptureLogger, _ = log.NewFileLogger("/var/log/cec/source.clog")
//
//	// Both
//	cfg.CaptureLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
//   - Bus layer: raw frame bytes and transmit result (FrameEvent), pings (PingEvent)
//   - Processor layer: decoded messages and their disposition (MessageEvent)
//   - Service layer: state changes (StateChangeEvent)
//
// Errors at any layer use ErrorEventData.
//
// # File Format
//
// Capture files are a stream of CBOR-encoded events with integer keys and the
// .clog extension. The cec-log tool views, filters and exports them.
package log

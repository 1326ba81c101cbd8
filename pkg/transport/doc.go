// Package transport defines the boundary between the CEC processor and the
// bus driver.
//
// # Stack
//
//	┌────────────────────────────────┐
//	│   processor (decode/dispatch)  │
//	├────────────────────────────────┤
//	│   LoggingBus (capture, opt.)   │
//	├────────────────────────────────┤
//	│   Bus: linuxcec | Loopback     │
//	├────────────────────────────────┤
//	│   CEC line (one wire, ~400bps) │
//	└────────────────────────────────┘
//
// A Bus delivers received frames serially to its listeners and transmits
// frames synchronously (SendTo, Ping) or fire-and-forget (SendToAsync).
//
// # Send Failures
//
// Sends fail routinely: the destination is in standby and does not
// acknowledge, another initiator wins arbitration, or the adapter is gone.
// Every failure wraps one of ErrNoAck, ErrIO or ErrBus. Callers on the
// frame-processing path treat all of them as "send failed, continue";
// IsSendFailure tells them apart from programming errors.
package transport

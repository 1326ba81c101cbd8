// Package cec provides the HDMI-CEC wire layer used by the source processor.
//
// A CEC frame is a header byte followed by an optional opcode and operands:
//
//	┌──────────────────┬─────────┬──────────────────┐
//	│ header           │ opcode  │ operands         │
//	│ src<<4 | dst     │ 1 byte  │ 0..14 bytes      │
//	└──────────────────┴─────────┴──────────────────┘
//
// A header-only frame is a polling message. Decode turns a raw frame into a
// Header and one Message from a closed set of message types; opcodes this
// package does not model decode to Unhandled. Encode is the inverse.
//
// # Addressing
//
// Logical addresses are 4-bit values. Address 15 is both the broadcast
// destination and the "unregistered" source. Physical addresses are the
// 16-bit topology path of a device, written as four nibbles ("2.0.0.0").
package cec

// Package linuxcec drives a CEC adapter through the Linux kernel CEC
// framework (/dev/cecN).
//
// The adapter opens the device as initiator and pass-through follower so
// every received message, including the ones the kernel could answer
// itself, reaches the processor. Logical address allocation is delegated
// to the kernel (ClaimLogicalAddress).
package linuxcec

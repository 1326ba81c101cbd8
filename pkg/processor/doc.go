// Package processor is the CEC source message processor.
//
// It decodes frames from a transport.Bus, filters them by destination,
// dispatches each message to exactly one handler, keeps the device
// directory and active-source state current, answers requests addressed to
// this device and queues notifications for the host.
//
// # Destination Filter
//
//	Broadcast only: REQUEST_ACTIVE_SOURCE, ACTIVE_SOURCE, ROUTING_CHANGE,
//	                ROUTING_INFORMATION, SET_STREAM_PATH
//	Direct only:    GET_CEC_VERSION, GIVE_OSD_NAME, GIVE_PHYSICAL_ADDRESS,
//	                GIVE_DEVICE_VENDOR_ID, GIVE_DEVICE_POWER_STATUS,
//	                ABORT, FEATURE_ABORT
//	Either:         everything else, including polling
//
// A message that fails the filter is dropped without a state change or a
// reply.
//
// # Send Failures
//
// Replies sent while handling a frame never fail the frame: no-ack, I/O and
// bus errors are logged and processing continues. Commands started by the
// host (Processor.SendStandby and friends) return the send error instead.
//
// # Liveness
//
// Probe pings every peer address. A peer that answers is marked present and
// asked for its physical address, OSD name, vendor ID and power status; a
// peer that does not is reset to defaults and, if it was present, reported
// removed. ProbeLoop repeats Probe on an interval.
package processor

// Package service provides the host-facing CEC source service.
//
// SourceService ties the lower-level components into one API for a
// playback device on an HDMI-CEC bus:
//   - Opening the bus adapter, retrying with backoff while it is absent
//   - Logical address allocation and physical address discovery
//   - Frame processing and the peer directory
//   - Liveness probing on hotplug, resume and a fixed interval
//   - Vendor adaptation from the sink's EDID
//   - Persisted settings (enabled, One Touch Play, OSD name, vendor ID)
//   - Host commands (standby, key presses, One Touch Play)
//
// Example usage:
//
//	cfg := service.DefaultConfig()
//	cfg.Logger = slog.Default()
//
//	svc, err := service.NewSourceService(cfg, bus, edid.FileReader{Path: edidPath})
//	svc.RegisterSink(sink)
//	svc.Start(ctx)
//	defer svc.Stop()
//
//	svc.PerformOTPAction(ctx)
//	records := svc.GetDeviceList()
//
// # Lifecycle
//
// The service is enabled or disabled by the persisted cecEnabled setting.
// Enabling opens the bus; a failed open is retried in the background and
// commands return ErrNoConnection until it succeeds. Disabling stops frame
// intake and probing, clears the vendor quirk and reports this device as no
// longer active source.
//
// # Events
//
// Directory and active-source changes, standby requests and key presses are
// delivered to registered notify.Listener and notify.Sink values on a
// dedicated goroutine, in registration order.
package service

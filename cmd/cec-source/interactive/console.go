// Package interactive provides the interactive command-line interface
// for cec-source.
package interactive

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/devsettings/cecsource-go/pkg/cec"
	"github.com/devsettings/cecsource-go/pkg/notify"
	"github.com/devsettings/cecsource-go/pkg/service"
	"github.com/devsettings/cecsource-go/pkg/transport"
)

// SinkControl swaps the EDID of a simulated sink.
type SinkControl interface {
	Plug(manufacturer string, pa cec.PhysicalAddress) error
	Unplug()
}

// Simulation gives the console access to a simulated bus.
type Simulation struct {
	Bus  *transport.Loopback
	Sink SinkControl
}

// Console handles interactive mode for cec-source.
type Console struct {
	svc *service.SourceService
	sim *Simulation
	rl  *readline.Instance
	out io.Writer
}

// New creates a console. sim is nil when running against a real adapter.
func New(svc *service.SourceService, sim *Simulation) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "cec> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(sim != nil),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	c := &Console{svc: svc, sim: sim, rl: rl, out: rl.Stdout()}
	svc.RegisterListener(notify.ListenerFunc(c.printEvent))
	return c, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
func (c *Console) Stderr() io.Writer {
	return c.rl.Stderr()
}

// Run starts the interactive command loop.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}

		if !c.execute(ctx, line) {
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}
	}
}

func completer(simulated bool) readline.AutoCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem("help"),
		readline.PcItem("status"),
		readline.PcItem("devices"),
		readline.PcItem("enable"),
		readline.PcItem("disable"),
		readline.PcItem("standby"),
		readline.PcItem("request-active"),
		readline.PcItem("otp"),
		readline.PcItem("otp-config", readline.PcItem("on"), readline.PcItem("off")),
		readline.PcItem("key"),
		readline.PcItem("name"),
		readline.PcItem("vendor"),
		readline.PcItem("hotplug", readline.PcItem("on"), readline.PcItem("off")),
		readline.PcItem("power",
			readline.PcItem("on"), readline.PcItem("standby"),
			readline.PcItem("light_sleep"), readline.PcItem("deep_sleep")),
		readline.PcItem("quit"),
	}
	if simulated {
		items = append(items,
			readline.PcItem("inject"),
			readline.PcItem("peer", readline.PcItem("add"), readline.PcItem("remove")),
			readline.PcItem("lost"),
		)
	}
	return readline.NewPrefixCompleter(items...)
}

// execute runs one command line. It returns false when the console should exit.
func (c *Console) execute(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		c.printHelp()

	case "status", "s":
		c.cmdStatus()

	case "devices", "list", "ls":
		c.cmdDevices(args)

	case "enable":
		c.report(c.svc.SetEnabled(true))

	case "disable":
		c.report(c.svc.SetEnabled(false))

	case "standby":
		c.report(c.svc.SendStandbyMessage(ctx))

	case "request-active", "ra":
		c.report(c.svc.RequestActiveSource(ctx))

	case "otp":
		c.report(c.svc.PerformOTPAction(ctx))

	case "otp-config":
		c.cmdOTPConfig(args)

	case "key", "k":
		c.cmdKey(ctx, args)

	case "name":
		c.cmdName(ctx, args)

	case "vendor":
		c.cmdVendor(ctx, args)

	case "hotplug", "hp":
		c.cmdHotplug(ctx, args)

	case "power":
		c.cmdPower(ctx, args)

	case "inject":
		c.cmdInject(args)

	case "peer":
		c.cmdPeer(args)

	case "lost":
		c.cmdLost()

	case "quit", "exit", "q":
		return false

	default:
		fmt.Fprintf(c.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
CEC Source Commands:
  Status:
    status                 - Show service state and this device's identity
    devices [-a]           - List discovered devices (-a: all slots)

  Settings:
    enable | disable       - Enable or disable CEC (persisted)
    otp-config on|off      - Enable or disable One Touch Play (persisted)
    name <osd name>        - Set the OSD name (persisted, max 14 chars)
    vendor [hex]           - Show or set the vendor ID (persisted)

  Commands:
    standby                - Broadcast Standby
    request-active         - Broadcast Request Active Source
    otp                    - One Touch Play (Image View On + Active Source)
    key <addr> <key>       - Send a key press, e.g. key 0 volume-up

  Host Signals:
    hotplug on [mfr] [pa]  - Sink connected (simulation: EDID maker and address)
    hotplug off            - Sink disconnected
    power <mode>           - Host power mode: on, standby, light_sleep, deep_sleep`)

	if c.sim != nil {
		fmt.Fprintln(c.out, `
  Simulation:
    inject <from> <to> <hex>        - Inject a frame, e.g. inject 0 4 8f
    peer add <addr> <type> [name]   - Add a peer, e.g. peer add 5 audio Soundbar
    peer remove <addr>              - Remove a peer
    lost                            - Simulate adapter loss`)
	}

	fmt.Fprintln(c.out, `
  General:
    help                   - Show this help
    quit                   - Exit`)
}

func (c *Console) report(err error) {
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(c.out, "OK")
}

func (c *Console) printEvent(e notify.Event) {
	fmt.Fprintf(c.out, "[EVENT] %s\n", e)
}

// cmdStatus shows the service status.
func (c *Console) cmdStatus() {
	id := c.svc.Identity()
	stats := c.svc.ProbeStats()

	fmt.Fprintln(c.out, "\nSource Status")
	fmt.Fprintln(c.out, "-------------------------------------------")
	fmt.Fprintf(c.out, "  Service State:   %s\n", c.svc.State())
	fmt.Fprintf(c.out, "  Adapter:         %s\n", c.svc.LinkState())
	if sid := c.svc.SessionID(); sid != "" {
		fmt.Fprintf(c.out, "  Session:         %s\n", sid)
	}
	fmt.Fprintf(c.out, "  Logical Address: %d (%s)\n", uint8(id.LogicalAddress), id.LogicalAddress)
	fmt.Fprintf(c.out, "  Physical Addr:   %s\n", id.PhysicalAddress)
	fmt.Fprintf(c.out, "  OSD Name:        %q\n", id.OSDName)
	fmt.Fprintf(c.out, "  Vendor ID:       %s\n", id.VendorID.Hex())
	fmt.Fprintf(c.out, "  Power Status:    %s\n", id.PowerStatus)
	fmt.Fprintf(c.out, "  Host Power:      %s\n", c.svc.PowerMode())
	fmt.Fprintf(c.out, "  Sink Connected:  %t\n", c.svc.SinkConnected())
	fmt.Fprintf(c.out, "  Active Source:   %t\n", c.svc.GetActiveSourceStatus())
	fmt.Fprintf(c.out, "  OTP Enabled:     %t\n", c.svc.OTPEnabled())
	if stats.Runs > 0 {
		fmt.Fprintf(c.out, "  Probes:          %d (last %s, %d present)\n",
			stats.Runs, stats.LastRun.Format("15:04:05"), len(stats.Last.Present))
	}
	fmt.Fprintln(c.out)
}

// cmdDevices lists the device directory.
func (c *Console) cmdDevices(args []string) {
	all := len(args) > 0 && args[0] == "-a"

	var shown int
	for _, r := range c.svc.GetDeviceList() {
		if !all && !r.Present {
			continue
		}
		if shown == 0 {
			fmt.Fprintf(c.out, "\n  %-3s %-16s %-9s %-14s %-14s %-7s %-8s %s\n",
				"LA", "Name", "PA", "Type", "Power", "Vendor", "Version", "Present")
		}
		shown++
		fmt.Fprintf(c.out, "  %-3d %-16q %-9s %-14s %-14s %-7s %-8s %t\n",
			uint8(r.LogicalAddress), r.OSDName, r.PhysicalAddress, r.DeviceType,
			r.PowerStatus, r.Vendor(), r.CECVersion, r.Present)
	}
	if shown == 0 {
		fmt.Fprintln(c.out, "No devices discovered")
		return
	}
	fmt.Fprintln(c.out)
}

func (c *Console) cmdOTPConfig(args []string) {
	if len(args) < 1 {
		fmt.Fprintf(c.out, "One Touch Play: %t\n", c.svc.OTPEnabled())
		return
	}
	on, err := parseOnOff(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	c.report(c.svc.SetOTPEnabled(on))
}

// cmdKey sends a key press and release.
func (c *Console) cmdKey(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(c.out, "Usage: key <addr> <key>")
		fmt.Fprintln(c.out, "  Keys: select up down left right home back volume-up volume-down mute play stop pause 0-9 or a code like 0x41")
		return
	}
	addr, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Invalid address: %s\n", args[0])
		return
	}
	key, err := ParseKey(strings.Join(args[1:], " "))
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	c.report(c.svc.SendKeyPressEvent(ctx, addr, int(key)))
}

func (c *Console) cmdName(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintf(c.out, "OSD name: %q\n", c.svc.OSDName())
		return
	}
	c.report(c.svc.SetOSDName(ctx, strings.Join(args, " ")))
}

func (c *Console) cmdVendor(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintf(c.out, "Vendor ID: %s\n", c.svc.VendorID())
		return
	}
	id, err := service.ParseVendorID(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	c.report(c.svc.SetVendorID(ctx, id))
}

// cmdHotplug signals a sink (dis)connect. In simulation the sink's EDID is
// replaced first so the service reads the new one.
func (c *Console) cmdHotplug(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(c.out, "Usage: hotplug on [manufacturer] [physical-address] | hotplug off")
		return
	}
	on, err := parseOnOff(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}

	if c.sim != nil && c.sim.Sink != nil {
		if on {
			mfr, pa := "GSM", cec.NewPhysicalAddress(1, 0, 0, 0)
			if len(args) > 1 {
				mfr = args[1]
			}
			if len(args) > 2 {
				if pa, err = cec.ParsePhysicalAddress(args[2]); err != nil {
					fmt.Fprintf(c.out, "Error: %v\n", err)
					return
				}
			}
			if err := c.sim.Sink.Plug(mfr, pa); err != nil {
				fmt.Fprintf(c.out, "Error: %v\n", err)
				return
			}
			if c.sim.Bus != nil {
				c.sim.Bus.SetPhysicalAddress(pa)
			}
		} else {
			c.sim.Sink.Unplug()
			if c.sim.Bus != nil {
				c.sim.Bus.SetPhysicalAddress(cec.InvalidPhysicalAddress)
			}
		}
	}

	c.svc.OnHotplug(ctx, on)
	fmt.Fprintln(c.out, "OK")
}

func (c *Console) cmdPower(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintf(c.out, "Host power mode: %s\n", c.svc.PowerMode())
		return
	}
	next, err := service.ParsePowerMode(strings.ToUpper(args[0]))
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	c.svc.OnPowerModeChanged(ctx, c.svc.PowerMode(), next)
	fmt.Fprintf(c.out, "Host power mode: %s\n", next)
}

// cmdInject queues a frame on the simulated bus as if a peer sent it.
func (c *Console) cmdInject(args []string) {
	if !c.requireSimulation() {
		return
	}
	if len(args) < 2 {
		fmt.Fprintln(c.out, "Usage: inject <from> <to> [hex opcode+operands]")
		return
	}
	from, err1 := parseAddress(args[0])
	to, err2 := parseAddress(args[1])
	if err := errors.Join(err1, err2); err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	body, err := hex.DecodeString(strings.Join(args[2:], ""))
	if err != nil {
		fmt.Fprintf(c.out, "Invalid hex: %v\n", err)
		return
	}

	frame := append([]byte{cec.Header{Source: from, Destination: to}.Byte()}, body...)
	c.sim.Bus.Inject(frame)
	c.sim.Bus.Sync()
	fmt.Fprintf(c.out, "Injected %s\n", hex.EncodeToString(frame))
}

func (c *Console) cmdPeer(args []string) {
	if !c.requireSimulation() {
		return
	}
	if len(args) < 2 {
		fmt.Fprintln(c.out, "Usage: peer add <addr> <type> [name] | peer remove <addr>")
		return
	}
	addr, err := parseAddress(args[1])
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}

	switch args[0] {
	case "add":
		if len(args) < 3 {
			fmt.Fprintln(c.out, "Usage: peer add <addr> <type> [name]")
			return
		}
		t, err := cec.ParseDeviceType(strings.ToLower(args[2]))
		if err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
			return
		}
		name := addr.String()
		if len(args) > 3 {
			name = strings.Join(args[3:], " ")
		}
		c.sim.Bus.AddPeer(transport.Peer{
			Address:         addr,
			PhysicalAddress: cec.InvalidPhysicalAddress,
			DeviceType:      t,
			OSDName:         name,
			Version:         cec.Version1_4,
			PowerStatus:     cec.PowerStatusOn,
		})
		fmt.Fprintf(c.out, "Peer %d added\n", uint8(addr))
	case "remove", "rm":
		c.sim.Bus.RemovePeer(addr)
		fmt.Fprintf(c.out, "Peer %d removed\n", uint8(addr))
	default:
		fmt.Fprintf(c.out, "Unknown peer command: %s\n", args[0])
	}
}

func (c *Console) cmdLost() {
	if !c.requireSimulation() {
		return
	}
	c.svc.NotifyBusLost(transport.ErrIO)
	fmt.Fprintln(c.out, "Adapter loss signalled")
}

func (c *Console) requireSimulation() bool {
	if c.sim == nil || c.sim.Bus == nil {
		fmt.Fprintln(c.out, "Only available with -simulate")
		return false
	}
	return true
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", s)
	}
}

func parseAddress(s string) (cec.LogicalAddress, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil || v > 15 {
		return 0, fmt.Errorf("invalid logical address %q (must be 0-15)", s)
	}
	return cec.LogicalAddress(v), nil
}

// ParseKey accepts a key name ("volume-up", "Volume Up", "5") or a code
// ("0x41").
func ParseKey(s string) (cec.UICommand, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseUint(s, 0, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid key code %q", s)
		}
		return cec.UICommand(v), nil
	}
	if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		return cec.UINumber0 + cec.UICommand(s[0]-'0'), nil
	}

	want := normalizeKey(s)
	for code := 0; code <= 0x7F; code++ {
		k := cec.UICommand(code)
		if normalizeKey(k.String()) == want {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", s)
}

func normalizeKey(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

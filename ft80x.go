package ft80x

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
)

// Transport clock ceilings from the datasheet. The chip tolerates at most
// 11MHz until its PLL is running and 30MHz afterward. A board declaring
// more is misconfigured; Register fails fast without touching the bus.
const (
	// MaxInitFrequency is the bus clock ceiling during bring-up.
	MaxInitFrequency = 11 * physic.MegaHertz
	// MaxOpFrequency is the bus clock ceiling once the chip is running.
	MaxOpFrequency = 30 * physic.MegaHertz
)

// powerSettle is the mandatory delay between deasserting PD_N and the
// first bus transaction. Hardware contract, not a tunable.
const powerSettle = 20 * time.Millisecond

// Errors returned by this package, wrapped with the "ft80x:" prefix.
var (
	// ErrNotFound is returned when the chip or a named device cannot be
	// found: an identity mismatch during Register, or an unknown name
	// passed to Unlink.
	ErrNotFound = errors.New("device not found")
	// ErrExists is returned by Register when the variant's device name
	// is already registered.
	ErrExists = errors.New("device already registered")
	// ErrTooManyRefs is returned by Open when the reference count would
	// overflow.
	ErrTooManyRefs = errors.New("too many open references")
	// ErrUnlinked is returned for operations on a device that has been
	// removed from the registry.
	ErrUnlinked = errors.New("device unlinked")
	// ErrClosed is returned for operations on a closed handle.
	ErrClosed = errors.New("handle closed")
	// ErrInvalidArgument is returned when a request is rejected before
	// any bus transaction: bad lengths, misaligned or out-of-range
	// offsets, nil output locations.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotSupported is returned by Control for an unrecognized
	// request.
	ErrNotSupported = errors.New("request not supported")
	// ErrHalted is returned for operations on a halted device.
	ErrHalted = errors.New("halted")
)

func wrap(err error) error {
	if err == nil || strings.HasPrefix(err.Error(), "ft80x") {
		return err
	}
	return fmt.Errorf("ft80x: %w", err)
}

// Config is the board-supplied lower half: the capabilities the driver
// borrows from board bring-up code for the lifetime of the device. The
// driver never mutates it.
type Config struct {
	// PowerDown asserts (true) or deasserts (false) the chip's PD_N
	// line. Required.
	PowerDown func(down bool) error

	// Destroy, if non-nil, releases board-owned resources. It is called
	// exactly once, when the device has been unlinked and the last open
	// handle is closed.
	Destroy func()

	// InitFrequency is the bus clock used during bring-up. Must be
	// positive and at most MaxInitFrequency.
	InitFrequency physic.Frequency

	// OpFrequency is the bus clock used once the chip is running. Must
	// be positive and at most MaxOpFrequency.
	OpFrequency physic.Frequency
}

func (c *Config) validate() error {
	if c.PowerDown == nil {
		return errors.New("ft80x: Config.PowerDown is required")
	}
	if c.InitFrequency <= 0 || c.InitFrequency > MaxInitFrequency {
		return fmt.Errorf("ft80x: init frequency %s outside (0, %s]", c.InitFrequency, MaxInitFrequency)
	}
	if c.OpFrequency <= 0 || c.OpFrequency > MaxOpFrequency {
		return fmt.Errorf("ft80x: operating frequency %s outside (0, %s]", c.OpFrequency, MaxOpFrequency)
	}
	return nil
}

// Dev is the device handle for one registered FT80x.
//
// All register traffic is serialized behind a single lock; at most one
// goroutine is inside the transport for a given device at any time.
type Dev struct {
	t     Transport
	lower *Config

	mu        sync.Mutex // Guards everything below and all bus traffic
	freq      physic.Frequency
	crefs     uint8
	unlinked  bool
	destroyed bool
	halted    bool
}

// Register brings up the chip behind t and publishes it in the package
// registry under the compiled variant's name ("ft800" or "ft801").
//
// Registration is all-or-nothing: a configuration error, an identity
// mismatch (ErrNotFound) or any transport failure leaves no device
// registered. Call once per physical chip.
func Register(t Transport, cfg *Config) (*Dev, error) {
	if t == nil {
		return nil, errors.New("ft80x: transport is required")
	}
	if cfg == nil {
		return nil, errors.New("ft80x: Config is required")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	d := &Dev{t: t, lower: cfg}
	if err := d.initialize(); err != nil {
		return nil, err
	}
	if err := registryAdd(devName, d); err != nil {
		return nil, err
	}
	return d, nil
}

// initialize drives the power-up sequence from the datasheet. Strictly
// ordered, no retries; the first failure aborts bring-up.
func (d *Dev) initialize() error {
	// Deassert PD_N, then give the chip its mandatory settle time
	// before any bus transaction.
	if err := d.lower.PowerDown(false); err != nil {
		return wrap(err)
	}
	time.Sleep(powerSettle)

	// Switch to the external clock and wake the core, at the slow
	// bring-up bus clock.
	if err := d.setSpeed(d.lower.InitFrequency); err != nil {
		return wrap(err)
	}
	if err := d.hostCommand(CmdClkExt); err != nil {
		return wrap(err)
	}
	if err := d.hostCommand(CmdActive); err != nil {
		return wrap(err)
	}

	// Verify that the chip on the bus is the variant this driver was
	// compiled for.
	id, err := d.readWord(regID)
	if err != nil {
		return wrap(err)
	}
	if id&idMask != expectedID {
		return fmt.Errorf("ft80x: bad chip ID %#02x: %w", id&idMask, ErrNotFound)
	}
	rom, err := d.readWord(romChipid)
	if err != nil {
		return wrap(err)
	}
	if rom != romID {
		return fmt.Errorf("ft80x: bad ROM chip ID %#08x: %w", rom, ErrNotFound)
	}

	// Disable the pixel clock while the video timings are programmed.
	if err := d.writeByte(regPClk, 0); err != nil {
		return wrap(err)
	}
	if err := d.writeTimings(&profile); err != nil {
		return wrap(err)
	}

	// Bootstrap display list: clear to black and display, so the chip
	// has a valid list before the first swap.
	if err := d.writeWord(ramDL+0, ClearColorRGB(0, 0, 0)); err != nil {
		return wrap(err)
	}
	if err := d.writeWord(ramDL+4, Clear(true, true, true)); err != nil {
		return wrap(err)
	}
	if err := d.writeWord(ramDL+8, Display()); err != nil {
		return wrap(err)
	}
	if err := d.writeByte(regDLSwap, dlSwapFrame); err != nil {
		return wrap(err)
	}

	// Raise the chip's own GPIO bit 7, the display-enable line of the
	// panel, preserving the other bits.
	dir, err := d.readByte(regGPIODir)
	if err != nil {
		return wrap(err)
	}
	if err := d.writeByte(regGPIODir, dir|gpioDisplayEnable); err != nil {
		return wrap(err)
	}
	out, err := d.readByte(regGPIO)
	if err != nil {
		return wrap(err)
	}
	if err := d.writeByte(regGPIO, out|gpioDisplayEnable); err != nil {
		return wrap(err)
	}

	// Backlight PWM setup is board specific and left to board code.

	// Start the pixel clock; video output begins with the bootstrap
	// list. The bus can then run at full speed.
	if err := d.writeByte(regPClk, profile.pclk); err != nil {
		return wrap(err)
	}
	if err := d.setSpeed(d.lower.OpFrequency); err != nil {
		return wrap(err)
	}
	return nil
}

// writeTimings programs every timing register of the profile, in the
// profile's fixed order. The pixel clock must be off while this runs.
func (d *Dev) writeTimings(tm *timings) error {
	for _, w := range []struct {
		reg uint32
		val uint16
	}{
		{regHCycle, tm.hcycle},
		{regHOffset, tm.hoffset},
		{regHSync0, tm.hsync0},
		{regHSync1, tm.hsync1},
		{regVCycle, tm.vcycle},
		{regVOffset, tm.voffset},
		{regVSync0, tm.vsync0},
		{regVSync1, tm.vsync1},
	} {
		if err := d.writeHword(w.reg, w.val); err != nil {
			return err
		}
	}
	if err := d.writeByte(regSwizzle, tm.swizzle); err != nil {
		return err
	}
	if err := d.writeByte(regPClkPol, tm.pclkPol); err != nil {
		return err
	}
	if err := d.writeByte(regCSpread, tm.cspread); err != nil {
		return err
	}
	if err := d.writeHword(regHSize, tm.hsize); err != nil {
		return err
	}
	return d.writeHword(regVSize, tm.vsize)
}

// Register/command protocol engine. Thin encode/decode over the
// transport; the caller holds d.mu, and each call is exactly one
// transport transaction. Values are little-endian on the wire.

func (d *Dev) readByte(addr uint32) (uint8, error) {
	var b [1]byte
	err := d.t.ReadMem(addr, b[:])
	return b[0], err
}

func (d *Dev) readHword(addr uint32) (uint16, error) {
	var b [2]byte
	if err := d.t.ReadMem(addr, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func (d *Dev) readWord(addr uint32) (uint32, error) {
	var b [4]byte
	if err := d.t.ReadMem(addr, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func (d *Dev) writeByte(addr uint32, v uint8) error {
	return d.t.WriteMem(addr, []byte{v})
}

func (d *Dev) writeHword(addr uint32, v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return d.t.WriteMem(addr, b[:])
}

func (d *Dev) writeWord(addr uint32, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return d.t.WriteMem(addr, b[:])
}

// writeBlock copies p verbatim into chip memory at addr. Bounds are the
// caller's responsibility; this stays a thin wrapper.
func (d *Dev) writeBlock(addr uint32, p []byte) error {
	return d.t.WriteMem(addr, p)
}

func (d *Dev) hostCommand(cmd byte) error {
	return d.t.HostCommand(cmd)
}

func (d *Dev) setSpeed(f physic.Frequency) error {
	if err := d.t.SetSpeed(f); err != nil {
		return err
	}
	d.freq = f
	return nil
}

// Frequency returns the current transport clock rate.
func (d *Dev) Frequency() physic.Frequency {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.freq
}

// Name returns the registry name of the device, derived from the
// compiled chip variant.
func (d *Dev) Name() string {
	return devName
}

// Halt stops video output and powers the core down. The device stays
// registered but rejects further register traffic; re-register to use it
// again.
//
// Halt implements conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.destroyed {
		return wrap(ErrUnlinked)
	}
	if d.halted {
		return nil
	}
	if err := d.writeByte(regPClk, 0); err != nil {
		return wrap(err)
	}
	if err := d.hostCommand(CmdPwrDown); err != nil {
		return wrap(err)
	}
	d.halted = true
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("ft80x.Dev{%s, %s %dx%d}", devName, profile.name, profile.hsize, profile.vsize)
}

var _ conn.Resource = &Dev{}

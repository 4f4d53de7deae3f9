package ft80x

// Memory map. The FT80x exposes a 4MB address space; the display list
// window and the control registers live at fixed addresses that must match
// the datasheet bit-for-bit or the chip will not respond.
const (
	ramG      uint32 = 0x000000 // Main graphics RAM
	romChipid uint32 = 0x0c0000 // ROM chip identification word
	ramDL     uint32 = 0x100000 // Display list RAM
	ramPal    uint32 = 0x102000 // Palette RAM

	// RAMDLSize is the size of the display list RAM window. A display
	// list, and any offset read back from it, must fit inside this
	// window.
	RAMDLSize = 8 * 1024
)

// Control registers (FT800/FT801 address map).
const (
	regID        uint32 = 0x102400
	regFrames    uint32 = 0x102404
	regClock     uint32 = 0x102408
	regFrequency uint32 = 0x10240c
	regCPUReset  uint32 = 0x10241c
	regHCycle    uint32 = 0x102428
	regHOffset   uint32 = 0x10242c
	regHSize     uint32 = 0x102430
	regHSync0    uint32 = 0x102434
	regHSync1    uint32 = 0x102438
	regVCycle    uint32 = 0x10243c
	regVOffset   uint32 = 0x102440
	regVSize     uint32 = 0x102444
	regVSync0    uint32 = 0x102448
	regVSync1    uint32 = 0x10244c
	regDLSwap    uint32 = 0x102450
	regRotate    uint32 = 0x102454
	regOutBits   uint32 = 0x102458
	regDither    uint32 = 0x10245c
	regSwizzle   uint32 = 0x102460
	regCSpread   uint32 = 0x102464
	regPClkPol   uint32 = 0x102468
	regPClk      uint32 = 0x10246c
	regGPIODir   uint32 = 0x10248c
	regGPIO      uint32 = 0x102490
	regTracker   uint32 = 0x109000
)

// regID reads back 0x7c in its low byte on every chip of the family.
const (
	idMask     = 0xff
	expectedID = 0x7c
)

// REG_DLSWAP values.
const (
	dlSwapLine  = 1 // Swap at the next horizontal line
	dlSwapFrame = 2 // Swap at the next frame boundary
)

// GPIO bit 7 drives the display-enable line of the attached panel.
const gpioDisplayEnable = 1 << 7

// Host commands. These are sent as a bare 3-byte sequence over the
// transport, outside of any register transaction, and change the chip's
// power and clock state. They can be issued directly on a Transport; the
// driver only uses CmdClkExt, CmdActive and CmdPwrDown itself.
const (
	CmdActive  byte = 0x00 // Switch from Standby/Sleep to Active
	CmdStandby byte = 0x41 // PLL and oscillator on, clock gated off
	CmdSleep   byte = 0x42 // PLL and oscillator off
	CmdPwrDown byte = 0x50 // Core off, register state lost
	CmdClkExt  byte = 0x44 // Select the external clock source
	CmdClkInt  byte = 0x48 // Select the internal clock source
	CmdClk48M  byte = 0x62 // PLL at 48MHz
	CmdClk36M  byte = 0x61 // PLL at 36MHz
	CmdCoreRst byte = 0x68 // Reset the core
)

// Display list word encoders for the small bootstrap vocabulary the driver
// itself needs. The driver otherwise treats display lists as opaque words;
// composing full lists is up to the caller.

// ClearColorRGB encodes a CLEAR_COLOR_RGB display list command.
func ClearColorRGB(r, g, b uint8) uint32 {
	return 0x02<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Clear encodes a CLEAR display list command. c, s and t select clearing
// of the color, stencil and tag buffers.
func Clear(c, s, t bool) uint32 {
	v := uint32(0x26) << 24
	if c {
		v |= 1 << 2
	}
	if s {
		v |= 1 << 1
	}
	if t {
		v |= 1
	}
	return v
}

// Display encodes the DISPLAY command that terminates a display list.
func Display() uint32 {
	return 0
}

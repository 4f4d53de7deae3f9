// Package ft80x controls a FT800/FT801 embedded video engine via SPI or I2C.
//
// The FT80x renders frames from display lists: opaque, word-aligned
// command buffers written into its 8KiB display list RAM. This driver
// performs the timing-sensitive bring-up of the chip, exposes a
// character-device style handle surface (open, write a display list,
// read results back, close), and manages the device's lifetime across
// concurrent opens, closes and unlinking. It deliberately does not
// interpret display list contents; composing them is the caller's job.
//
// # Hardware Connection
//
// Connect the FT80x via SPI (Mode0, 8-bit):
//
//	Chip Pin    System Pin
//	GND         GND
//	VCC         3.3V
//	SCK         SPI Clock (SCLK)
//	MOSI        SPI Data Out (MOSI)
//	MISO        SPI Data In (MISO)
//	CS#         SPI Chip Select
//	PD#         GPIO (power down, any available pin)
//
// or via I2C (AD1/AD0 strapped for DefaultI2CAddr). The bus clock must
// not exceed 11MHz until the chip is running and 30MHz after; the board
// declares its actual rates in Config and the driver switches between
// them during bring-up.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"encoding/binary"
//
//		"periph.io/x/conn/v3/gpio"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/physic"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/ft80x"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Open SPI bus and the power-down GPIO pin
//		port, _ := spireg.Open("")
//		pd := gpioreg.ByName("GPIO24")
//
//		t, _ := ft80x.NewSPI(port)
//		dev, _ := ft80x.Register(t, &ft80x.Config{
//			PowerDown: func(down bool) error {
//				// PD# is active low.
//				return pd.Out(gpio.Level(!down))
//			},
//			InitFrequency: 10 * physic.MegaHertz,
//			OpFrequency:   30 * physic.MegaHertz,
//		})
//
//		f, _ := dev.Open()
//		defer f.Close()
//
//		// Write a one-frame display list: clear to blue, display.
//		dl := make([]byte, 12)
//		binary.LittleEndian.PutUint32(dl[0:], ft80x.ClearColorRGB(0, 0, 255))
//		binary.LittleEndian.PutUint32(dl[4:], ft80x.Clear(true, true, true))
//		binary.LittleEndian.PutUint32(dl[8:], ft80x.Display())
//		f.Write(dl)
//	}
//
// # Device Lifecycle
//
// Register publishes the device in a process-wide registry under the
// compiled variant's name ("ft800" or "ft801"); ByName looks it up.
// A device may be opened up to 255 times concurrently. Unlink removes it
// from the registry while handles stay usable; the board's Destroy hook
// runs once the last handle is closed (or immediately when none are
// open). All handle operations on one device are serialized by a single
// lock, so register traffic from concurrent callers never interleaves.
//
// # Build-Time Selection
//
// The chip variant and the panel geometry are compile-time choices,
// matching the fixed-selection design of the hardware:
//
//	(default)           FT800, WQVGA 480x272
//	-tags ft801         FT801 instead of FT800
//	-tags ft80x_qvga    QVGA 320x240 panel timings
//
// # Limitations
//
// Reading from a handle always reports end-of-input; the chip has no
// byte-stream read semantics. There is no readiness notification: after
// issuing a tracking or result-producing command, poll with GetTracker or
// GetResult32. Backlight PWM setup is board specific and not performed by
// the driver.
//
// # Datasheet
//
// https://brtchip.com/wp-content/uploads/Support/Documentation/Datasheets/ICs/EVE/DS_FT800_Embedded_Video_Engine.pdf
package ft80x

package ft80x

import (
	"bytes"
	"testing"

	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spitest"
)

// The SPI wire format: MEM_WRITE carries a 0b10 prefix on the first
// address byte, MEM_READ a 0b00 prefix plus one dummy byte before the
// chip starts clocking data out, host commands are a bare 3-byte
// sequence. These bytes must match the datasheet exactly.
func TestSPIFraming(t *testing.T) {
	p := &spitest.Playback{
		Playback: conntest.Playback{
			Ops: []conntest.IO{
				// Host command CLKEXT.
				{W: []byte{0x44, 0x00, 0x00}},
				// MEM_WRITE REG_PCLK <- 5.
				{W: []byte{0x90, 0x24, 0x6c, 0x05}},
				// MEM_READ REG_ID: 3 address bytes, dummy, 4 data
				// bytes clocked out while MOSI idles.
				{
					W: []byte{0x10, 0x24, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
					R: []byte{0x00, 0x00, 0x00, 0x00, 0x7c, 0x00, 0x00, 0x00},
				},
				// MEM_WRITE of a block at RAM_DL.
				{W: []byte{0x90, 0x00, 0x00, 0x07, 0x00, 0x00, 0x26, 0x00, 0x00, 0x00, 0x00}},
			},
			DontPanic: true,
		},
	}
	tr, err := NewSPI(p)
	if err != nil {
		t.Fatalf("NewSPI() = %v", err)
	}

	if err := tr.HostCommand(CmdClkExt); err != nil {
		t.Fatalf("HostCommand() = %v", err)
	}
	if err := tr.WriteMem(regPClk, []byte{5}); err != nil {
		t.Fatalf("WriteMem() = %v", err)
	}
	got := make([]byte, 4)
	if err := tr.ReadMem(regID, got); err != nil {
		t.Fatalf("ReadMem() = %v", err)
	}
	if want := []byte{0x7c, 0x00, 0x00, 0x00}; !bytes.Equal(got, want) {
		t.Errorf("ReadMem() = %#v, want %#v", got, want)
	}
	if err := tr.WriteMem(ramDL, []byte{0x07, 0x00, 0x00, 0x26, 0x00, 0x00, 0x00, 0x00}); err != nil {
		t.Fatalf("WriteMem() block = %v", err)
	}
	if err := tr.SetSpeed(11 * physic.MegaHertz); err != nil {
		t.Fatalf("SetSpeed() = %v", err)
	}

	if err := p.Close(); err != nil {
		t.Errorf("unconsumed playback: %v", err)
	}
}

func TestSPIRequiresPort(t *testing.T) {
	if _, err := NewSPI(nil); err == nil {
		t.Error("NewSPI(nil) succeeded")
	}
}

// I2C framing is SPI framing minus the read dummy byte: the address goes
// out as a write, the data comes back after a repeated start.
func TestI2CFraming(t *testing.T) {
	b := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			// Host command ACTIVE.
			{Addr: 0x23, W: []byte{0x00, 0x00, 0x00}},
			// MEM_WRITE REG_PCLK <- 0.
			{Addr: 0x23, W: []byte{0x90, 0x24, 0x6c, 0x00}},
			// MEM_READ ROM_CHIPID.
			{Addr: 0x23, W: []byte{0x0c, 0x00, 0x00}, R: []byte{0x00, 0x08, 0x00, 0x01}},
		},
		DontPanic: true,
	}
	tr, err := NewI2C(b, DefaultI2CAddr)
	if err != nil {
		t.Fatalf("NewI2C() = %v", err)
	}

	if err := tr.HostCommand(CmdActive); err != nil {
		t.Fatalf("HostCommand() = %v", err)
	}
	if err := tr.WriteMem(regPClk, []byte{0}); err != nil {
		t.Fatalf("WriteMem() = %v", err)
	}
	got := make([]byte, 4)
	if err := tr.ReadMem(romChipid, got); err != nil {
		t.Fatalf("ReadMem() = %v", err)
	}
	if want := []byte{0x00, 0x08, 0x00, 0x01}; !bytes.Equal(got, want) {
		t.Errorf("ReadMem() = %#v, want %#v", got, want)
	}
	if err := tr.SetSpeed(400 * physic.KiloHertz); err != nil {
		t.Fatalf("SetSpeed() = %v", err)
	}

	if err := b.Close(); err != nil {
		t.Errorf("unconsumed playback: %v", err)
	}
}

func TestI2CValidation(t *testing.T) {
	if _, err := NewI2C(nil, DefaultI2CAddr); err == nil {
		t.Error("NewI2C(nil bus) succeeded")
	}
	b := &i2ctest.Playback{DontPanic: true}
	if _, err := NewI2C(b, 0); err == nil {
		t.Error("NewI2C(addr 0) succeeded")
	}
	if _, err := NewI2C(b, 0x80); err == nil {
		t.Error("NewI2C(addr 0x80) succeeded")
	}
}

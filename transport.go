package ft80x

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Transport is the uniform register-access contract the driver runs on.
// Implementations own the byte-exact bus framing; the driver never sees
// raw bus traffic. Every method maps to a single bus transaction.
//
// A Transport is not safe for concurrent use; the owning Dev serializes
// all access behind its lock.
type Transport interface {
	// ReadMem reads len(p) bytes of chip memory starting at addr.
	ReadMem(addr uint32, p []byte) error
	// WriteMem writes p to chip memory starting at addr.
	WriteMem(addr uint32, p []byte) error
	// HostCommand issues a bare host command, outside of any register
	// transaction. See the Cmd* constants.
	HostCommand(cmd byte) error
	// SetSpeed caps the bus clock rate for subsequent transactions.
	SetSpeed(f physic.Frequency) error
	fmt.Stringer
}

// Memory transaction prefixes. The upper two bits of the first address
// byte select the transaction type; the remaining 22 bits address chip
// memory.
const (
	memRead  = 0x00
	memWrite = 0x80
	addrMask = 0x3f
)

// SPI is the Transport implementation over an SPI port.
type SPI struct {
	p spi.PortCloser
	c spi.Conn
}

// NewSPI returns a Transport running the FT80x SPI protocol on p.
//
// The port is connected in Mode0 with 8-bit words at the chip's 30MHz
// ceiling; the effective rate is governed through SetSpeed, which the
// driver drives from the board's declared frequencies.
func NewSPI(p spi.PortCloser) (*SPI, error) {
	if p == nil {
		return nil, errors.New("ft80x: SPI port is required")
	}
	c, err := p.Connect(30*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, wrap(err)
	}
	return &SPI{p: p, c: c}, nil
}

// ReadMem issues a MEM_READ transaction: three address bytes, one dummy
// byte, then len(p) clocked-out bytes, all in one full-duplex transfer.
func (s *SPI) ReadMem(addr uint32, p []byte) error {
	w := make([]byte, 4+len(p))
	w[0] = memRead | byte(addr>>16)&addrMask
	w[1] = byte(addr >> 8)
	w[2] = byte(addr)
	r := make([]byte, len(w))
	if err := s.c.Tx(w, r); err != nil {
		return err
	}
	copy(p, r[4:])
	return nil
}

// WriteMem issues a MEM_WRITE transaction: three address bytes with the
// write prefix, then the payload.
func (s *SPI) WriteMem(addr uint32, p []byte) error {
	w := make([]byte, 3+len(p))
	w[0] = memWrite | byte(addr>>16)&addrMask
	w[1] = byte(addr >> 8)
	w[2] = byte(addr)
	copy(w[3:], p)
	return s.c.Tx(w, nil)
}

// HostCommand sends the three-byte host command sequence.
func (s *SPI) HostCommand(cmd byte) error {
	return s.c.Tx([]byte{cmd, 0x00, 0x00}, nil)
}

// SetSpeed caps the SPI clock. The chip accepts at most 11MHz until its
// PLL is running and 30MHz afterward; the driver enforces those ceilings
// before calling here.
func (s *SPI) SetSpeed(f physic.Frequency) error {
	return s.p.LimitSpeed(f)
}

func (s *SPI) String() string {
	return fmt.Sprintf("ft80x.SPI{%s}", s.p)
}

// DefaultI2CAddr is the FT80x slave address with AD1/AD0 strapped low.
const DefaultI2CAddr uint16 = 0x23

// I2C is the Transport implementation over an I2C bus.
type I2C struct {
	b i2c.Bus
	d i2c.Dev
}

// NewI2C returns a Transport running the FT80x I2C protocol for the
// device at addr on b. Use DefaultI2CAddr unless the AD1/AD0 straps say
// otherwise.
func NewI2C(b i2c.Bus, addr uint16) (*I2C, error) {
	if b == nil {
		return nil, errors.New("ft80x: I2C bus is required")
	}
	if addr == 0 || addr > 0x7f {
		return nil, fmt.Errorf("ft80x: invalid I2C address %#x", addr)
	}
	return &I2C{b: b, d: i2c.Dev{Bus: b, Addr: addr}}, nil
}

// ReadMem writes the three address bytes then reads len(p) bytes in the
// same transaction. I2C framing has no dummy byte.
func (i *I2C) ReadMem(addr uint32, p []byte) error {
	w := [3]byte{
		memRead | byte(addr>>16)&addrMask,
		byte(addr >> 8),
		byte(addr),
	}
	return i.d.Tx(w[:], p)
}

// WriteMem writes the prefixed address bytes followed by the payload.
func (i *I2C) WriteMem(addr uint32, p []byte) error {
	w := make([]byte, 3+len(p))
	w[0] = memWrite | byte(addr>>16)&addrMask
	w[1] = byte(addr >> 8)
	w[2] = byte(addr)
	copy(w[3:], p)
	return i.d.Tx(w, nil)
}

// HostCommand sends the three-byte host command sequence.
func (i *I2C) HostCommand(cmd byte) error {
	return i.d.Tx([]byte{cmd, 0x00, 0x00}, nil)
}

// SetSpeed caps the bus clock rate.
func (i *I2C) SetSpeed(f physic.Frequency) error {
	return i.b.SetSpeed(f)
}

func (i *I2C) String() string {
	return fmt.Sprintf("ft80x.I2C{%s, %#x}", i.b, i.d.Addr)
}

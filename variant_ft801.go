//go:build ft801

package ft80x

// FT801 chip variant, selected with the ft801 build tag. The FT801 is the
// capacitive-touch sibling of the FT800; the register protocol is
// identical, only the ROM identity differs.
const (
	devName = "ft801"
	romID   = 0x01000801
)

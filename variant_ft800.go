//go:build !ft801

package ft80x

// FT800 chip variant, the default.
const (
	devName = "ft800"
	romID   = 0x01000800
)

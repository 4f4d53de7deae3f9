//go:build ft80x_qvga

package ft80x

// QVGA 320x240 panel timings, selected with the ft80x_qvga build tag.
var profile = timings{
	name:    "QVGA",
	hcycle:  408,
	hoffset: 70,
	hsync0:  0,
	hsync1:  10,
	vcycle:  263,
	voffset: 13,
	vsync0:  0,
	vsync1:  2,
	swizzle: 0,
	pclkPol: 0,
	cspread: 1,
	hsize:   320,
	vsize:   240,
	pclk:    5,
}

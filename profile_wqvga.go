//go:build !ft80x_qvga

package ft80x

// WQVGA 480x272 panel timings, the default geometry.
var profile = timings{
	name:    "WQVGA",
	hcycle:  548,
	hoffset: 43,
	hsync0:  0,
	hsync1:  41,
	vcycle:  292,
	voffset: 12,
	vsync0:  0,
	vsync1:  10,
	swizzle: 0,
	pclkPol: 1,
	cspread: 1,
	hsize:   480,
	vsize:   272,
	pclk:    5,
}

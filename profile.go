package ft80x

// timings holds the video timing values for one display geometry. The
// active profile is selected at build time (see profile_wqvga.go and
// profile_qvga.go); the fields are written to the chip in the fixed order
// of initialize, with the pixel clock divider applied last.
type timings struct {
	name    string
	hcycle  uint16 // Total clocks per line
	hoffset uint16 // Horizontal image start, pixels from the left
	hsync0  uint16 // Start of the HSYNC pulse, falling edge
	hsync1  uint16 // End of the HSYNC pulse, rising edge
	vcycle  uint16 // Total lines per screen
	voffset uint16 // Vertical image start, lines from the top
	vsync0  uint16 // Start of the VSYNC pulse, falling edge
	vsync1  uint16 // End of the VSYNC pulse, rising edge
	swizzle uint8  // RGB output pin arrangement
	pclkPol uint8  // Pixel clock polarity
	cspread uint8  // Color clock spread to reduce switching noise
	hsize   uint16 // Image width in pixels
	vsize   uint16 // Image height in pixels
	pclk    uint8  // Pixel clock divider; written only once timing is set
}

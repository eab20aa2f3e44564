// Package egsim simulates small embedded displays on a desktop host.
//
// A Display is an in-memory pixel buffer with a chosen color encoding
// (monochrome through RGB888). It implements drivers.Displayer from
// tinygo.org/x/drivers, so graphics code written against hardware
// display drivers (tinyfont, tinydraw, ...) runs against the simulator
// unchanged.
//
// Rasterization turns a Display plus Settings (pixel scale, spacing
// between pixels, color theme) into an Image, a byte-exact RGB or
// grayscale raster that can be shown in a window (package
// egsim/window), written to a PNG, or compared against a reference
// PNG for regression testing.
//
// Screenshot and CI checks are driven by environment variables
// understood by the window package: EG_SIMULATOR_DUMP,
// EG_SIMULATOR_DUMP_RAW, EG_SIMULATOR_CHECK and EG_SIMULATOR_CHECK_RAW.
package egsim

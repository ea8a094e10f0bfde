// Package sink renders composed fog frames to output formats.
//
// SVG is the native format; PNG and PDF convert from it via rsvg-convert
// and therefore need librsvg installed. JSON emits the frame structure
// itself for hosts that render with their own drawing primitives.
//
// The three SVG passes mirror how a live table composites fog: base cell
// fills first, then cloud puff decoration, then the edge glow.
package sink

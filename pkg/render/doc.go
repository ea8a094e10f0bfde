// Package render provides format conversion shared by the render sinks.
//
// The SVG sink under cloud/sink is the native renderer; PNG and PDF are
// produced by converting its SVG output with rsvg-convert. The DOT debug
// view of the region graph lives under regiongraph.
package render

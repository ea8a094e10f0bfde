// Package io provides JSON import and export for fog scenarios.
//
// # Overview
//
// A scenario is a snapshot of a fog table: the cell size and the painted
// cells with their creators, optionally followed by a list of operations to
// replay on top. The format is designed for:
//
//   - Rendering a table offline, without a live session
//   - Fixtures for tests and demos
//   - Round-trip preservation: import, mutate, export, re-import identically
//
// # JSON Format
//
//	{
//	  "cell_size": 50,
//	  "cells": [
//	    {"col": 0, "row": 0, "creator": "alice"},
//	    {"col": 1, "row": 0, "creator": "alice"}
//	  ],
//	  "ops": [
//	    {"kind": "paint_rect", "col": 3, "row": 3, "col2": 5, "row2": 5, "creator": "gm"}
//	  ]
//	}
//
// # Fields
//
// Required:
//   - cell_size: Positive cell edge length in pixels
//
// Optional:
//   - cells: Initial painted cells; a repeated coordinate follows
//     last-writer-wins, like live paints
//   - ops: Operations replayed in order after the initial cells
//
// The persistence of a live session's cell set is the collaborator layer's
// concern; scenarios exist for offline tooling, not as the session store
// format.
package io

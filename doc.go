// Package region implements pixel regions: arbitrary sets of integer pixels
// represented as sorted, coalesced bands of non-overlapping rectangles.
//
// # Overview
//
// A Region is the workhorse of clipping and damage tracking in a display
// server. Window clip lists, exposure computation, copy-area ordering and
// dirty-rectangle tracking for rotated outputs are all expressed as set
// operations on regions:
//
//	var clip region.Region
//	win := region.NewBox(region.Rect(0, 0, 640, 480))
//	child := region.NewBox(region.Rect(100, 100, 300, 200))
//	if err := clip.Subtract(win, child); err != nil {
//	    // allocation failed, clip is broken
//	}
//	for band := range clip.Bands() {
//	    // rectangles sharing y1 and y2, left to right
//	}
//
// # Representation
//
// Rectangles are stored "YX-banded": sorted by y1 then x1, grouped into bands
// with identical y1 and y2, never touching or overlapping within a band, and
// vertically adjacent bands with identical x extents are always merged. An
// empty region and a single-rectangle region need no rectangle storage; the
// single rectangle is the region's extents.
//
// # Errors
//
// The only failure is allocation failure, reported by the configured
// Allocator. A region whose allocation fails becomes broken: every operation
// returns ErrBroken, and every operation reading a broken region breaks its
// destination. Destroy, Reset, or a Copy from a valid region repairs it.
//
// # Concurrency
//
// Regions are not safe for concurrent mutation. Read-only accessors may be
// called concurrently when no goroutine mutates the region.
//
// # Coordinate System
//
// Coordinates are int32. Boxes are half-open: a box covers the pixels
// x1 <= x < x2, y1 <= y < y2. Y increases downward.
package region

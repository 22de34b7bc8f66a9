package raster

import (
	"image"
	"image/color"

	"github.com/gogpu/region"
)

// DrawLine draws a zero-width line from p0 to p1, both endpoints included,
// clipped to clip (nil for the whole pixmap). It returns the painted
// region.
func DrawLine(dst *Pixmap, clip *region.Region, p0, p1 image.Point, c color.RGBA) (*region.Region, error) {
	return DrawPolyline(dst, clip, []image.Point{p0, p1}, c)
}

// DrawPolyline draws connected zero-width segments through pts. Shared
// vertices are painted once.
func DrawPolyline(dst *Pixmap, clip *region.Region, pts []image.Point, c color.RGBA) (*region.Region, error) {
	if len(pts) == 0 {
		return region.New(), nil
	}
	var runs []region.Box
	if len(pts) == 1 {
		runs = append(runs, pixelBox(pts[0].X, pts[0].Y))
	}
	for i := 1; i < len(pts); i++ {
		runs = lineRuns(runs, pts[i-1], pts[i])
	}

	line, err := region.NewRects(runs, false)
	if err != nil {
		return nil, err
	}
	if err := line.Intersect(line, clipOrBounds(dst, clip)); err != nil {
		return nil, err
	}
	return FillRegion(dst, line, c)
}

// lineRuns appends the pixels of the Bresenham line p0-p1 as one box per
// horizontal run.
func lineRuns(runs []region.Box, p0, p1 image.Point) []region.Box {
	x, y := p0.X, p0.Y
	dx, dy := abs(p1.X-x), -abs(p1.Y-y)
	sx, sy := 1, 1
	if p1.X < x {
		sx = -1
	}
	if p1.Y < y {
		sy = -1
	}
	e := dx + dy
	start := x
	for {
		if x == p1.X && y == p1.Y {
			return append(runs, runBox(start, x, y))
		}
		nx, ny := x, y
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			nx += sx
		}
		if e2 <= dx {
			e += dx
			ny += sy
		}
		if ny != y {
			runs = append(runs, runBox(start, x, y))
			start = nx
		}
		x, y = nx, ny
	}
}

func runBox(x0, x1, y int) region.Box {
	return region.Rect(int32(min(x0, x1)), int32(y), int32(max(x0, x1)+1), int32(y+1))
}

func pixelBox(x, y int) region.Box {
	return runBox(x, x, y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

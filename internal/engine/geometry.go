package engine

import "encoding/json"

// Simplify compresses a freehand polyline with the Ramer–Douglas–Peucker
// algorithm. tolerance is the maximum perpendicular deviation, in pixels,
// a dropped point may have had from the simplified line; larger values
// compress harder. Inputs with fewer than 3 points are returned as-is.
//
// Simplify is pure: it reads no engine state and is typically called by
// the host once, when a freehand stroke is finalized.
func Simplify(points []Point, tolerance float64) []Point {
	if len(points) < 3 {
		return points
	}
	return douglasPeucker(points, tolerance)
}

// SimplifyJSON is the serialized-boundary form of Simplify. A payload
// that fails to parse yields an empty list.
func SimplifyJSON(data []byte, tolerance float64) []byte {
	var points []Point
	if err := json.Unmarshal(data, &points); err != nil {
		logger().Debug("rejected points payload", "err", err)
		return []byte("[]")
	}
	if points == nil {
		return []byte("[]")
	}
	out, err := json.Marshal(Simplify(points, tolerance))
	if err != nil {
		return []byte("[]")
	}
	return out
}

func douglasPeucker(points []Point, tolerance float64) []Point {
	if len(points) < 3 {
		return points
	}

	start, end := points[0], points[len(points)-1]
	maxDist := 0.0
	maxIdx := 0
	for i := 1; i < len(points)-1; i++ {
		if d := perpendicularDistance(points[i], start, end); d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= tolerance {
		// Every interior point is within tolerance of the chord.
		return []Point{start, end}
	}

	left := douglasPeucker(points[:maxIdx+1], tolerance)
	right := douglasPeucker(points[maxIdx:], tolerance)
	// The split point is the last of left and the first of right.
	return append(left[:len(left)-1:len(left)-1], right...)
}

// perpendicularDistance is the distance from p to the segment a-b,
// clamped to the segment's extent. A zero-length segment degenerates to
// the distance to the coincident point.
func perpendicularDistance(p, a, b Point) float64 {
	d := b.Sub(a)
	lenSq := d.Dot(d)
	if lenSq == 0 {
		return p.Distance(a)
	}

	t := p.Sub(a).Dot(d) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	proj := Point{X: a.X + t*d.X, Y: a.Y + t*d.Y}
	return p.Distance(proj)
}

package dxf

import "math"

// BoundingBox returns the bounding box of a Line entity.
// Returns (minX, minY, maxX, maxY).
func (l *Line) BoundingBox() (minX, minY, maxX, maxY float64) {
	minX = math.Min(l.X1, l.X2)
	maxX = math.Max(l.X1, l.X2)
	minY = math.Min(l.Y1, l.Y2)
	maxY = math.Max(l.Y1, l.Y2)
	return
}

// BoundingBox returns the bounding box of a Circle entity.
// Returns (minX, minY, maxX, maxY).
func (c *Circle) BoundingBox() (minX, minY, maxX, maxY float64) {
	return c.CenterX - c.Radius, c.CenterY - c.Radius,
		c.CenterX + c.Radius, c.CenterY + c.Radius
}

// BoundingBox returns the bounding box of an Arc entity.
// Returns (minX, minY, maxX, maxY).
func (a *Arc) BoundingBox() (minX, minY, maxX, maxY float64) {
	// Start with the center point
	minX, maxX = a.CenterX, a.CenterX
	minY, maxY = a.CenterY, a.CenterY

	// Check start and end points
	startRad := a.StartAngle * math.Pi / 180.0
	endRad := a.EndAngle * math.Pi / 180.0

	startX := a.CenterX + a.Radius*math.Cos(startRad)
	startY := a.CenterY + a.Radius*math.Sin(startRad)
	endX := a.CenterX + a.Radius*math.Cos(endRad)
	endY := a.CenterY + a.Radius*math.Sin(endRad)

	minX = math.Min(minX, math.Min(startX, endX))
	maxX = math.Max(maxX, math.Max(startX, endX))
	minY = math.Min(minY, math.Min(startY, endY))
	maxY = math.Max(maxY, math.Max(startY, endY))

	// Check quadrant extrema (0°, 90°, 180°, 270°)
	checkAngle := func(angle float64) {
		if a.containsAngle(angle) {
			x := a.CenterX + a.Radius*math.Cos(angle*math.Pi/180.0)
			y := a.CenterY + a.Radius*math.Sin(angle*math.Pi/180.0)
			minX = math.Min(minX, x)
			maxX = math.Max(maxX, x)
			minY = math.Min(minY, y)
			maxY = math.Max(maxY, y)
		}
	}

	checkAngle(0)   // Right
	checkAngle(90)  // Top
	checkAngle(180) // Left
	checkAngle(270) // Bottom

	return
}

// containsAngle checks if the arc contains a specific angle.
func (a *Arc) containsAngle(angle float64) bool {
	start := a.StartAngle
	end := a.EndAngle

	// Normalize angles to 0-360
	for start < 0 {
		start += 360
	}
	for start >= 360 {
		start -= 360
	}
	for end < 0 {
		end += 360
	}
	for end >= 360 {
		end -= 360
	}
	for angle < 0 {
		angle += 360
	}
	for angle >= 360 {
		angle -= 360
	}

	if start <= end {
		return angle >= start && angle <= end
	}
	// Arc crosses 0°
	return angle >= start || angle <= end
}

// BoundingBox returns the bounding box of an Ellipse entity.
// Returns (minX, minY, maxX, maxY).
func (e *Ellipse) BoundingBox() (minX, minY, maxX, maxY float64) {
	// Calculate major axis length
	majorLength := math.Sqrt(e.MajorAxisX*e.MajorAxisX + e.MajorAxisY*e.MajorAxisY)
	minorLength := majorLength * e.MinorRatio

	// Get angle of major axis
	tilt := math.Atan2(e.MajorAxisY, e.MajorAxisX)
	cos := math.Cos(tilt)
	sin := math.Sin(tilt)

	// Calculate bounding box considering rotation
	a := majorLength * cos
	b := minorLength * sin
	c := majorLength * sin
	d := minorLength * cos

	halfWidth := math.Sqrt(a*a + b*b)
	halfHeight := math.Sqrt(c*c + d*d)

	minX = e.CenterX - halfWidth
	maxX = e.CenterX + halfWidth
	minY = e.CenterY - halfHeight
	maxY = e.CenterY + halfHeight
	return
}

// BoundingBox returns the bounding box of a Point entity.
// Returns (x, y, x, y) since it's a single point.
func (p *Point) BoundingBox() (minX, minY, maxX, maxY float64) {
	return p.X, p.Y, p.X, p.Y
}

// BoundingBox returns the approximate bounding box of a Text entity.
// Note: This is a simplified calculation that doesn't account for actual font metrics.
// Returns (minX, minY, maxX, maxY).
func (t *Text) BoundingBox() (minX, minY, maxX, maxY float64) {
	// Simplified: estimate width as height * length * 0.6 (typical aspect ratio)
	estimatedWidth := t.Height * float64(len(t.Content)) * 0.6

	if t.Rotation == 0 {
		return t.X, t.Y, t.X + estimatedWidth, t.Y + t.Height
	}

	// For rotated text, calculate the corners and find min/max
	angle := t.Rotation * math.Pi / 180.0
	cos := math.Cos(angle)
	sin := math.Sin(angle)

	// Four corners of the text box
	corners := [][2]float64{
		{0, 0},
		{estimatedWidth, 0},
		{estimatedWidth, t.Height},
		{0, t.Height},
	}

	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)

	for _, corner := range corners {
		x := t.X + corner[0]*cos - corner[1]*sin
		y := t.Y + corner[0]*sin + corner[1]*cos
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}

	return
}

// BoundingBox returns the bounding box of a Solid entity.
// Returns (minX, minY, maxX, maxY).
func (s *Solid) BoundingBox() (minX, minY, maxX, maxY float64) {
	minX = math.Min(math.Min(s.X1, s.X2), math.Min(s.X3, s.X4))
	maxX = math.Max(math.Max(s.X1, s.X2), math.Max(s.X3, s.X4))
	minY = math.Min(math.Min(s.Y1, s.Y2), math.Min(s.Y3, s.Y4))
	maxY = math.Max(math.Max(s.Y1, s.Y2), math.Max(s.Y3, s.Y4))
	return
}

// BoundingBox returns the bounding box of the entire Document, encompassing
// every entity except INSERTs, which are skipped. Used by the writer to populate $EXTMIN/$EXTMAX. Returns all
// zeros for an empty document.
func (d *Document) BoundingBox() (minX, minY, maxX, maxY float64) {
	if len(d.Entities) == 0 {
		return 0, 0, 0, 0
	}

	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)

	for _, entity := range d.Entities {
		var eMinX, eMinY, eMaxX, eMaxY float64

		switch e := entity.(type) {
		case *Line:
			eMinX, eMinY, eMaxX, eMaxY = e.BoundingBox()
		case *Circle:
			eMinX, eMinY, eMaxX, eMaxY = e.BoundingBox()
		case *Arc:
			eMinX, eMinY, eMaxX, eMaxY = e.BoundingBox()
		case *Ellipse:
			eMinX, eMinY, eMaxX, eMaxY = e.BoundingBox()
		case *Point:
			eMinX, eMinY, eMaxX, eMaxY = e.BoundingBox()
		case *Text:
			eMinX, eMinY, eMaxX, eMaxY = e.BoundingBox()
		case *Solid:
			eMinX, eMinY, eMaxX, eMaxY = e.BoundingBox()
		default:
			continue
		}

		minX = math.Min(minX, eMinX)
		maxX = math.Max(maxX, eMaxX)
		minY = math.Min(minY, eMinY)
		maxY = math.Max(maxY, eMaxY)
	}

	return
}

// FilterByLayer returns all entities on a specific layer.
func (d *Document) FilterByLayer(layerName string) []Entity {
	var filtered []Entity

	for _, entity := range d.Entities {
		var layer string
		switch e := entity.(type) {
		case *Line:
			layer = e.Layer
		case *Circle:
			layer = e.Layer
		case *Arc:
			layer = e.Layer
		case *Ellipse:
			layer = e.Layer
		case *Point:
			layer = e.Layer
		case *Text:
			layer = e.Layer
		case *Solid:
			layer = e.Layer
		case *Insert:
			layer = e.Layer
		default:
			continue
		}

		if layer == layerName {
			filtered = append(filtered, entity)
		}
	}

	return filtered
}

// CountByType returns a map of entity type names to their counts.
func (d *Document) CountByType() map[string]int {
	counts := make(map[string]int)

	for _, entity := range d.Entities {
		counts[entity.EntityType()]++
	}

	return counts
}

package dxf

import (
	"fmt"
	"math"

	"github.com/hinoki-cad/jww2dxf/internal/affine"
	"github.com/hinoki-cad/jww2dxf/jww"
)

// convertEntitiesExploded converts doc's top-level entities with
// options.ExplodeInserts semantics: every Block reference is recursively
// flattened into its block definition's geometry under the composed
// transform instead of being emitted as an INSERT. Cycles, missing block
// definitions, and nesting beyond options.MaxBlockNesting are recorded as
// diagnostics rather than treated as fatal errors.
func convertEntitiesExploded(doc *jww.Document, options ConvertOptions) ([]Entity, []string) {
	blockDefs := make(map[uint32]*jww.BlockDef, len(doc.BlockDefs))
	for i := range doc.BlockDefs {
		bd := &doc.BlockDefs[i]
		blockDefs[bd.Number] = bd
	}

	var unsupported []string
	stack := make([]uint32, 0, options.MaxBlockNesting)
	entities := explodeEntities(doc, doc.Entities, blockDefs, affine.Identity(), &stack, &unsupported, options)
	return entities, unsupported
}

func explodeEntities(
	doc *jww.Document,
	src []jww.Entity,
	blockDefs map[uint32]*jww.BlockDef,
	transform affine.Transform2D,
	stack *[]uint32,
	unsupported *[]string,
	options ConvertOptions,
) []Entity {
	var out []Entity

	for _, e := range src {
		block, isBlock := e.(*jww.Block)
		if !isBlock {
			converted := convertEntity(e, doc)
			if converted == nil {
				*unsupported = append(*unsupported, e.Type())
				continue
			}
			for _, ce := range converted {
				out = append(out, transformEntityForExplode(ce, transform)...)
			}
			continue
		}

		if len(*stack) >= options.MaxBlockNesting {
			*unsupported = append(*unsupported, fmt.Sprintf("BLOCK_DEPTH_LIMIT(%d)", block.DefNumber))
			continue
		}
		if stackContains(*stack, block.DefNumber) {
			*unsupported = append(*unsupported, fmt.Sprintf("BLOCK_CYCLE(%d)", block.DefNumber))
			continue
		}
		bd, ok := blockDefs[block.DefNumber]
		if !ok {
			*unsupported = append(*unsupported, fmt.Sprintf("UNRESOLVED_BLOCK(%d)", block.DefNumber))
			continue
		}

		*stack = append(*stack, block.DefNumber)
		childTransform := transform.Compose(affine.FromInsert(block.RefX, block.RefY, block.ScaleX, block.ScaleY, block.Rotation))
		expanded := explodeEntities(doc, bd.Entities, blockDefs, childTransform, stack, unsupported, options)
		*stack = (*stack)[:len(*stack)-1]
		out = append(out, expanded...)
	}

	return out
}

func stackContains(stack []uint32, n uint32) bool {
	for _, v := range stack {
		if v == n {
			return true
		}
	}
	return false
}

// transformEntityForExplode applies transform to a single already-converted
// DXF entity, returning one or more resulting entities (curved shapes may
// flatten to several line segments).
func transformEntityForExplode(entity Entity, transform affine.Transform2D) []Entity {
	switch v := entity.(type) {
	case *Line:
		x1, y1 := transform.ApplyPoint(v.X1, v.Y1)
		x2, y2 := transform.ApplyPoint(v.X2, v.Y2)
		return []Entity{&Line{Layer: v.Layer, Color: v.Color, LineType: v.LineType, X1: x1, Y1: y1, X2: x2, Y2: y2}}

	case *Circle:
		return transformCircleForExplode(v, transform)

	case *Arc:
		return transformArcForExplode(v, transform)

	case *Ellipse:
		return transformEllipseForExplode(v, transform)

	case *Point:
		x, y := transform.ApplyPoint(v.X, v.Y)
		return []Entity{&Point{Layer: v.Layer, Color: v.Color, LineType: v.LineType, X: x, Y: y}}

	case *Text:
		x, y := transform.ApplyPoint(v.X, v.Y)
		height := math.Max(v.Height*math.Abs(transform.AverageScale()), 0.1)
		return []Entity{&Text{
			Layer:    v.Layer,
			Color:    v.Color,
			LineType: v.LineType,
			X:        x,
			Y:        y,
			Height:   height,
			Rotation: v.Rotation + transform.RotationDeg(),
			Content:  v.Content,
			Style:    v.Style,
		}}

	case *Solid:
		x1, y1 := transform.ApplyPoint(v.X1, v.Y1)
		x2, y2 := transform.ApplyPoint(v.X2, v.Y2)
		x3, y3 := transform.ApplyPoint(v.X3, v.Y3)
		x4, y4 := transform.ApplyPoint(v.X4, v.Y4)
		return []Entity{&Solid{
			Layer: v.Layer, Color: v.Color, LineType: v.LineType,
			X1: x1, Y1: y1, X2: x2, Y2: y2, X3: x3, Y3: y3, X4: x4, Y4: y4,
		}}

	case *Insert:
		x, y := transform.ApplyPoint(v.X, v.Y)
		return []Entity{&Insert{
			Layer:     v.Layer,
			Color:     v.Color,
			LineType:  v.LineType,
			BlockName: v.BlockName,
			X:         x,
			Y:         y,
			ScaleX:    v.ScaleX,
			ScaleY:    v.ScaleY,
			Rotation:  v.Rotation + transform.RotationDeg(),
		}}
	}

	return nil
}

func transformCircleForExplode(circle *Circle, transform affine.Transform2D) []Entity {
	centerX, centerY := transform.ApplyPoint(circle.CenterX, circle.CenterY)
	ux, uy := transform.ApplyVector(circle.Radius, 0.0)
	vx, vy := transform.ApplyVector(0.0, circle.Radius)

	lu := math.Hypot(ux, uy)
	lv := math.Hypot(vx, vy)
	if lu <= 1e-12 && lv <= 1e-12 {
		return []Entity{&Point{Layer: circle.Layer, Color: circle.Color, LineType: circle.LineType, X: centerX, Y: centerY}}
	}

	denom := lu * lv
	dot := 0.0
	if denom > 1e-12 {
		dot = (ux*vx + uy*vy) / denom
	}
	if nearlyEqual(lu, lv) && math.Abs(dot) < 1e-6 {
		return []Entity{&Circle{
			Layer: circle.Layer, Color: circle.Color, LineType: circle.LineType,
			CenterX: centerX, CenterY: centerY, Radius: (lu + lv) / 2.0,
		}}
	}

	majorX, majorY, minorRatio := ux, uy, 1.0
	if lu >= lv {
		if lu > 1e-12 {
			minorRatio = lv / lu
		}
	} else {
		majorX, majorY = vx, vy
		if lv > 1e-12 {
			minorRatio = lu / lv
		}
	}

	return []Entity{&Ellipse{
		Layer: circle.Layer, Color: circle.Color, LineType: circle.LineType,
		CenterX: centerX, CenterY: centerY,
		MajorAxisX: majorX, MajorAxisY: majorY,
		MinorRatio: minorRatio,
		StartParam: 0.0,
		EndParam:   2.0 * math.Pi,
	}}
}

func transformArcForExplode(arc *Arc, transform affine.Transform2D) []Entity {
	start := arc.StartAngle
	end := arc.EndAngle
	if end < start {
		end += 360.0
	}
	sweep := math.Abs(end - start)
	segments := clampInt(int(math.Ceil((sweep/360.0)*96.0)), 8, 192)

	points := make([][2]float64, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := start + (end-start)*float64(i)/float64(segments)
		rad := t * math.Pi / 180.0
		x := arc.CenterX + arc.Radius*math.Cos(rad)
		y := arc.CenterY + arc.Radius*math.Sin(rad)
		px, py := transform.ApplyPoint(x, y)
		points = append(points, [2]float64{px, py})
	}

	return pointsToLines(points, arc.Layer, arc.Color, arc.LineType)
}

func transformEllipseForExplode(ellipse *Ellipse, transform affine.Transform2D) []Entity {
	start := ellipse.StartParam
	end := ellipse.EndParam
	if end <= start {
		end += 2.0 * math.Pi
	}
	span := math.Abs(end - start)
	segments := clampInt(int(math.Ceil((span/(2.0*math.Pi))*128.0)), 12, 256)

	majorX := ellipse.MajorAxisX
	majorY := ellipse.MajorAxisY
	minorX := -majorY * ellipse.MinorRatio
	minorY := majorX * ellipse.MinorRatio

	points := make([][2]float64, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := start + (end-start)*float64(i)/float64(segments)
		x := ellipse.CenterX + majorX*math.Cos(t) + minorX*math.Sin(t)
		y := ellipse.CenterY + majorY*math.Cos(t) + minorY*math.Sin(t)
		px, py := transform.ApplyPoint(x, y)
		points = append(points, [2]float64{px, py})
	}

	return pointsToLines(points, ellipse.Layer, ellipse.Color, ellipse.LineType)
}

func pointsToLines(points [][2]float64, layer string, color int, lineType string) []Entity {
	if len(points) < 2 {
		return nil
	}
	out := make([]Entity, 0, len(points)-1)
	for i := 0; i+1 < len(points); i++ {
		out = append(out, &Line{
			Layer: layer, Color: color, LineType: lineType,
			X1: points[i][0], Y1: points[i][1],
			X2: points[i+1][0], Y2: points[i+1][1],
		})
	}
	return out
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(math.Max(math.Abs(a), math.Abs(b)), 1.0)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package dxf

import (
	"fmt"
	"math"

	"github.com/hinoki-cad/jww2dxf/jww"
)

// ConvertDocument converts a JWW (Jw_cad) document to a DXF document using
// DefaultConvertOptions (block references are preserved as INSERT entities,
// not exploded).
func ConvertDocument(doc *jww.Document) *Document {
	return ConvertDocumentWithOptions(doc, DefaultConvertOptions())
}

// ConvertDocumentWithOptions converts a JWW document to a DXF document.
//
// This function transforms JWW entities into their DXF equivalents:
//   - JWW layers are converted to DXF layers with appropriate mapping
//   - JWW entities (Line, Arc, Point, Text, Solid, Block, Dimension) are
//     converted to their DXF equivalents
//   - JWW block definitions are converted to DXF blocks
//
// When options.ExplodeInserts is true, Block (INSERT) references are
// recursively flattened into their constituent geometry instead of being
// emitted as DXF INSERT entities; unresolved or excessively nested
// references are recorded in Document.UnsupportedEntities rather than
// aborting the conversion.
func ConvertDocumentWithOptions(doc *jww.Document, options ConvertOptions) *Document {
	dxfDoc := NewDocument()
	dxfDoc.Layers = convertLayers(doc)

	var entities []Entity
	if options.ExplodeInserts {
		entities, dxfDoc.UnsupportedEntities = convertEntitiesExploded(doc, options)
	} else {
		for _, b := range convertBlocks(doc) {
			dxfDoc.AddBlock(b)
		}
		entities, dxfDoc.UnsupportedEntities = convertEntities(doc.Entities, doc)
	}
	for _, e := range entities {
		dxfDoc.AddEntity(e)
	}

	return dxfDoc
}

// convertLayers creates DXF layers from JWW layer groups.
// JWW has 16 layer groups with 16 layers each (256 total layers).
// Each JWW layer is converted to a single DXF layer with a name like "0-0" or "F-A".
// Layer properties (frozen, locked) are preserved in the conversion.
func convertLayers(doc *jww.Document) []Layer {
	var layers []Layer

	for gLay := 0; gLay < 16; gLay++ {
		lg := &doc.LayerGroups[gLay]
		for lay := 0; lay < 16; lay++ {
			l := &lg.Layers[lay]
			name := l.Name
			if name == "" {
				name = fmt.Sprintf("%X-%X", gLay, lay)
			}

			layers = append(layers, Layer{
				Name:     name,
				Color:    (gLay*16+lay)%255 + 1,
				LineType: "CONTINUOUS",
				Frozen:   l.State == 0,
				Locked:   l.Protect != 0,
			})
		}
	}

	return layers
}

// convertEntities converts a flat list of JWW entities to DXF entities,
// collecting the bare type name of anything that could not be converted
// into a diagnostics slice.
func convertEntities(src []jww.Entity, doc *jww.Document) ([]Entity, []string) {
	var entities []Entity
	var unsupported []string

	for _, e := range src {
		converted := convertEntity(e, doc)
		if converted == nil {
			unsupported = append(unsupported, e.Type())
			continue
		}
		entities = append(entities, converted...)
	}

	return entities, unsupported
}

// convertEntity converts a single JWW entity to zero, one, or two DXF
// entities.
//
// Supported conversions:
//   - jww.Line -> dxf.Line
//   - jww.Arc -> dxf.Circle (full circles), dxf.Arc, or dxf.Ellipse
//   - jww.Point -> dxf.Point (temporary construction points produce an
//     empty result, which is not a conversion failure)
//   - jww.Text -> dxf.Text
//   - jww.Solid -> dxf.Solid
//   - jww.Block -> dxf.Insert
//   - jww.Dimension -> dxf.Line (witness line) + dxf.Text (measurement label)
//
// Returns nil for unsupported entity types.
func convertEntity(e jww.Entity, doc *jww.Document) []Entity {
	base := e.Base()
	layerName := getLayerName(doc, base.LayerGroup, base.Layer)
	color := mapColor(base.PenColor)
	lineType := mapLineType(base.PenStyle)

	switch v := e.(type) {
	case *jww.Line:
		return []Entity{convertLine(v, layerName, color, lineType)}

	case *jww.Arc:
		return []Entity{convertArc(v, layerName, color, lineType)}

	case *jww.Point:
		if v.IsTemporary {
			return []Entity{}
		}
		return []Entity{NewPoint(v.X, v.Y,
			WithPointLayer(layerName), WithPointColor(color), WithPointLineType(lineType))}

	case *jww.Text:
		return []Entity{convertText(v, layerName, color, lineType)}

	case *jww.Solid:
		return []Entity{NewSolid(v.Point1X, v.Point1Y, v.Point2X, v.Point2Y, v.Point3X, v.Point3Y, v.Point4X, v.Point4Y,
			WithSolidLayer(layerName), WithSolidColor(color), WithSolidLineType(lineType))}

	case *jww.Block:
		blockName := getBlockName(doc, v.DefNumber)
		return []Entity{NewInsert(blockName, v.RefX, v.RefY,
			WithInsertLayer(layerName), WithInsertColor(color), WithInsertLineType(lineType),
			WithInsertScale(v.ScaleX, v.ScaleY), WithInsertRotation(radToDeg(v.Rotation)))}

	case *jww.Dimension:
		line := convertLine(&v.Line, layerName, color, lineType)
		text := convertText(&v.Text, layerName, color, lineType)
		return []Entity{line, text}
	}

	return nil
}

func convertLine(v *jww.Line, layer string, color int, lineType string) *Line {
	return NewLine(v.StartX, v.StartY, v.EndX, v.EndY,
		WithLineLayer(layer), WithLineColor(color), WithLineType(lineType))
}

func convertText(v *jww.Text, layer string, color int, lineType string) *Text {
	height := v.SizeY
	if height <= 0.0 {
		height = 2.5
	}
	return NewText(v.StartX, v.StartY, v.Content,
		WithTextLayer(layer), WithTextColor(color), WithTextLineType(lineType),
		WithTextHeight(height), WithTextRotation(v.Angle), WithTextStyle("STANDARD"))
}

// convertArc converts a JWW Arc/circle/ellipse entity to its DXF
// equivalent: Circle for full circles with no flatness, Ellipse when the
// minor/major ratio departs from 1.0, Arc otherwise.
func convertArc(v *jww.Arc, layer string, color int, lineType string) Entity {
	if v.IsFullCircle && v.Flatness == 1.0 {
		return NewCircle(v.CenterX, v.CenterY, v.Radius,
			WithCircleLayer(layer), WithCircleColor(color), WithCircleLineType(lineType))
	}

	if v.Flatness != 1.0 {
		// DXF requires MinorRatio <= 1.0; if JWW's flatness is inverted,
		// swap which axis is major and rotate a quarter turn.
		majorRadius := v.Radius
		minorRatio := v.Flatness
		tiltAngle := v.TiltAngle

		if minorRatio > 1.0 {
			majorRadius = v.Radius * v.Flatness
			minorRatio = 1.0 / v.Flatness
			tiltAngle = v.TiltAngle + math.Pi/2
		}

		majorAxisX := majorRadius * math.Cos(tiltAngle)
		majorAxisY := majorRadius * math.Sin(tiltAngle)

		startParam := v.StartAngle
		endParam := v.StartAngle + v.ArcAngle
		if v.IsFullCircle {
			startParam = 0
			endParam = 2 * math.Pi
		}

		return NewEllipse(v.CenterX, v.CenterY, majorAxisX, majorAxisY, minorRatio, startParam, endParam,
			WithEllipseLayer(layer), WithEllipseColor(color), WithEllipseLineType(lineType))
	}

	return NewArc(v.CenterX, v.CenterY, v.Radius, radToDeg(v.StartAngle), radToDeg(v.StartAngle+v.ArcAngle),
		WithArcLayer(layer), WithArcColor(color), WithArcLineType(lineType))
}

// convertBlocks converts JWW block definitions to DXF blocks.
// Each JWW block definition is converted to a DXF block with all its
// entities converted to DXF equivalents.
func convertBlocks(doc *jww.Document) []Block {
	var blocks []Block

	for _, bd := range doc.BlockDefs {
		block := Block{
			Name:  getBlockName(doc, bd.Number),
			BaseX: 0,
			BaseY: 0,
		}

		entities, _ := convertEntities(bd.Entities, doc)
		block.Entities = entities

		blocks = append(blocks, block)
	}

	return blocks
}

// getLayerName returns the DXF layer name for a given JWW layer group and layer.
// If the layer has a custom name, it is used. Otherwise, a default name
// in the format "G-L" (e.g., "0-0", "F-A") is generated using hexadecimal notation.
func getLayerName(doc *jww.Document, layerGroup, layer uint16) string {
	if int(layerGroup) < 16 && int(layer) < 16 {
		lg := &doc.LayerGroups[layerGroup]
		l := &lg.Layers[layer]
		if l.Name != "" {
			return l.Name
		}
	}
	return fmt.Sprintf("%X-%X", layerGroup, layer)
}

// getBlockName returns the block name for a given JWW block definition number.
// If the block has a custom name, it is used. Otherwise, a default name
// like "BLOCK_1" is generated.
func getBlockName(doc *jww.Document, defNumber uint32) string {
	for _, bd := range doc.BlockDefs {
		if bd.Number == defNumber {
			if bd.Name != "" {
				return bd.Name
			}
			break
		}
	}
	return fmt.Sprintf("BLOCK_%d", defNumber)
}

// mapColor maps a JWW pen color number to a DXF ACI (AutoCAD Color Index).
//
// JWW's pen colors 1-9 map onto AutoCAD's standard palette by hue rather
// than by index; the basic colors that look alike (white/black at 1 and
// 8, say) are folded onto the same ACI entry. Anything outside that table
// is treated as a raw SXF/extended color value and passed through modulo
// the ACI range.
func mapColor(jwwColor uint16) int {
	switch jwwColor {
	case 1, 8:
		return 7
	case 2:
		return 5
	case 3:
		return 1
	case 4:
		return 6
	case 5:
		return 3
	case 6:
		return 4
	case 7:
		return 2
	case 9:
		return 8
	default:
		c := int(jwwColor) % 255
		if c < 1 {
			c = 1
		}
		return c
	}
}

// mapLineType maps a JWW pen style (線種) number to a DXF line type name.
func mapLineType(penStyle byte) string {
	switch penStyle {
	case 0:
		return "CONTINUOUS"
	case 1:
		return "DASHED"
	case 2:
		return "DASHDOT"
	case 3:
		return "DOT"
	case 4:
		return "DASHED2"
	default:
		return "BYLAYER"
	}
}

// radToDeg converts an angle from radians to degrees.
// This is used for converting JWW angle values (in radians) to DXF angle values (in degrees).
func radToDeg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// Package dxf provides types and generation functions for the DXF (Drawing Exchange Format) file format.
//
// DXF is an ASCII-based CAD data file format developed by Autodesk for enabling
// data interoperability between AutoCAD and other programs.
//
// This package provides:
//   - DXF document structure representation
//   - Entity types (Line, Arc, Circle, Text, etc.)
//   - Layer and block definitions
//   - DXF file writing capabilities
//
// Basic usage:
//
//	doc := &dxf.Document{
//	    Layers: []dxf.Layer{
//	        {Name: "0", Color: 7, LineType: "CONTINUOUS"},
//	    },
//	    Entities: []dxf.Entity{
//	        &dxf.Line{Layer: "0", X1: 0, Y1: 0, X2: 100, Y2: 100},
//	    },
//	}
//
//	w := dxf.NewWriter(outputFile)
//	w.WriteDocument(doc)
package dxf

// Document represents a complete DXF document structure.
// It contains layer definitions, drawing entities, and optional block definitions.
type Document struct {
	// Layers contains the layer definitions used by entities.
	Layers []Layer

	// Entities contains all drawing entities in the document.
	Entities []Entity

	// Blocks contains reusable block definitions.
	Blocks []Block

	// UnsupportedEntities records a soft diagnostic string for every source
	// entity that could not be converted or resolved: a bare type name for
	// an entity kind with no DXF equivalent, or one of
	// "BLOCK_CYCLE(n)"/"BLOCK_DEPTH_LIMIT(n)"/"UNRESOLVED_BLOCK(n)" emitted
	// by the explode engine. Conversion never fails because of these; they
	// are purely informational.
	UnsupportedEntities []string
}

// ConvertOptions controls how ConvertDocumentWithOptions maps a JWW
// document to DXF.
type ConvertOptions struct {
	// ExplodeInserts, when true, recursively flattens every block
	// reference into its constituent geometry under the composed 2D
	// affine transform instead of emitting an INSERT entity. The
	// resulting document has no block table and no INSERT entities.
	ExplodeInserts bool

	// MaxBlockNesting bounds how many block references may be nested
	// inside one another during explosion before the traversal aborts
	// that branch with a BLOCK_DEPTH_LIMIT diagnostic. Ignored unless
	// ExplodeInserts is true.
	MaxBlockNesting int
}

// DefaultConvertOptions returns the non-exploding default: INSERT entities
// are preserved and the block table is emitted normally.
func DefaultConvertOptions() ConvertOptions {
	return ConvertOptions{ExplodeInserts: false, MaxBlockNesting: 32}
}

// Layer represents a DXF layer definition.
// Layers are used to organize entities by grouping related objects together.
type Layer struct {
	// Name is the layer name (e.g., "0" for the default layer).
	Name string

	// Color is the AutoCAD Color Index (ACI) value (1-255).
	// Common values: 1=red, 2=yellow, 3=green, 4=cyan, 5=blue, 6=magenta, 7=white/black.
	Color int

	// LineType specifies the line pattern (e.g., "CONTINUOUS", "DASHED").
	LineType string

	// Frozen indicates if the layer is frozen (not visible and not printable).
	Frozen bool

	// Locked indicates if the layer is locked (visible but not editable).
	Locked bool
}

// Entity is the interface implemented by all DXF drawing entities.
// Each entity must provide its type name, the common attributes every DXF
// entity record carries (layer/color/line type), and its type-specific
// body as group code/value pairs. The writer is responsible for the
// shared record header (handle, owner, layer, color, line type); entities
// only describe their own geometry.
type Entity interface {
	// EntityType returns the DXF entity type name (e.g., "LINE", "CIRCLE", "TEXT").
	EntityType() string

	// Header returns the entity's layer name, ACI color, and line type.
	Header() (layer string, color int, lineType string)

	// DataGroupCodes returns the entity's type-specific group code/value
	// pairs, excluding the shared record header.
	DataGroupCodes() []GroupCode
}

// GroupCode represents a DXF group code and its associated value.
// DXF files are structured as pairs of group codes (integers) and values.
// Group codes indicate the type of data element (e.g., 0=entity type, 10=X coordinate, 8=layer name).
type GroupCode struct {
	// Code is the DXF group code integer (0-999).
	Code int

	// Value is the associated value (string, int, or float64).
	Value interface{}
}

// Line represents a DXF LINE entity.
// A line is defined by two points in 2D or 3D space.
type Line struct {
	// Layer is the name of the layer this entity belongs to.
	Layer string

	// Color is the ACI color number (0 = BYLAYER, 1-255 = specific colors).
	Color int

	// LineType specifies the line pattern (e.g., "CONTINUOUS", "DASHED").
	LineType string

	// X1, Y1 are the coordinates of the line's start point.
	X1, Y1 float64

	// X2, Y2 are the coordinates of the line's end point.
	X2, Y2 float64
}

// EntityType returns "LINE".
func (l *Line) EntityType() string { return "LINE" }

// Header returns the line's layer, color, and line type.
func (l *Line) Header() (string, int, string) { return l.Layer, l.Color, l.LineType }

// DataGroupCodes returns the DXF group codes for this line's geometry.
func (l *Line) DataGroupCodes() []GroupCode {
	return []GroupCode{
		{10, l.X1},
		{20, l.Y1},
		{30, 0.0},
		{11, l.X2},
		{21, l.Y2},
		{31, 0.0},
	}
}

// Circle represents a DXF CIRCLE entity.
// A circle is defined by its center point and radius.
type Circle struct {
	// Layer is the name of the layer this entity belongs to.
	Layer string

	// Color is the ACI color number (0 = BYLAYER).
	Color int

	// LineType specifies the line pattern for the circle outline.
	LineType string

	// CenterX, CenterY are the coordinates of the circle's center point.
	CenterX float64
	CenterY float64

	// Radius is the circle's radius.
	Radius float64
}

// EntityType returns "CIRCLE".
func (c *Circle) EntityType() string { return "CIRCLE" }

// Header returns the circle's layer, color, and line type.
func (c *Circle) Header() (string, int, string) { return c.Layer, c.Color, c.LineType }

// DataGroupCodes returns the DXF group codes for this circle's geometry.
func (c *Circle) DataGroupCodes() []GroupCode {
	return []GroupCode{
		{10, c.CenterX},
		{20, c.CenterY},
		{30, 0.0},
		{40, c.Radius},
	}
}

// Arc represents a DXF ARC entity.
// An arc is a portion of a circle defined by center, radius, and start/end angles.
type Arc struct {
	// Layer is the name of the layer this entity belongs to.
	Layer string

	// Color is the ACI color number (0 = BYLAYER).
	Color int

	// LineType specifies the line pattern for the arc.
	LineType string

	// CenterX, CenterY are the coordinates of the arc's center point.
	CenterX float64
	CenterY float64

	// Radius is the arc's radius.
	Radius float64

	// StartAngle is the starting angle in degrees (0-360).
	StartAngle float64

	// EndAngle is the ending angle in degrees (0-360).
	EndAngle float64
}

// EntityType returns "ARC".
func (a *Arc) EntityType() string { return "ARC" }

// Header returns the arc's layer, color, and line type.
func (a *Arc) Header() (string, int, string) { return a.Layer, a.Color, a.LineType }

// DataGroupCodes returns the DXF group codes for this arc's geometry.
func (a *Arc) DataGroupCodes() []GroupCode {
	return []GroupCode{
		{10, a.CenterX},
		{20, a.CenterY},
		{30, 0.0},
		{40, a.Radius},
		{50, a.StartAngle},
		{51, a.EndAngle},
	}
}

// Ellipse represents a DXF ELLIPSE entity.
// An ellipse is defined by center point, major/minor axes, and optional start/end parameters for partial ellipses.
type Ellipse struct {
	// Layer is the name of the layer this entity belongs to.
	Layer string

	// Color is the ACI color number (0 = BYLAYER).
	Color int

	// LineType specifies the line pattern for the ellipse.
	LineType string

	// CenterX, CenterY are the coordinates of the ellipse's center point.
	CenterX float64
	CenterY float64

	// MajorAxisX, MajorAxisY are the endpoint of the major axis relative to the center.
	MajorAxisX float64
	MajorAxisY float64

	// MinorRatio is the ratio of minor axis to major axis (0.0 to 1.0).
	MinorRatio float64

	// StartParam is the start parameter in radians (0.0 for full ellipse).
	StartParam float64

	// EndParam is the end parameter in radians (2*PI for full ellipse).
	EndParam float64
}

// EntityType returns "ELLIPSE".
func (e *Ellipse) EntityType() string { return "ELLIPSE" }

// Header returns the ellipse's layer, color, and line type.
func (e *Ellipse) Header() (string, int, string) { return e.Layer, e.Color, e.LineType }

// DataGroupCodes returns the DXF group codes for this ellipse's geometry.
func (e *Ellipse) DataGroupCodes() []GroupCode {
	return []GroupCode{
		{10, e.CenterX},
		{20, e.CenterY},
		{30, 0.0},
		{11, e.MajorAxisX},
		{21, e.MajorAxisY},
		{31, 0.0},
		{40, e.MinorRatio},
		{41, e.StartParam},
		{42, e.EndParam},
	}
}

// Point represents a DXF POINT entity.
// A point is a single location in 2D or 3D space.
type Point struct {
	// Layer is the name of the layer this entity belongs to.
	Layer string

	// Color is the ACI color number (0 = BYLAYER).
	Color int

	// LineType specifies the line pattern for the point marker.
	LineType string

	// X, Y are the coordinates of the point.
	X, Y float64
}

// EntityType returns "POINT".
func (p *Point) EntityType() string { return "POINT" }

// Header returns the point's layer, color, and line type.
func (p *Point) Header() (string, int, string) { return p.Layer, p.Color, p.LineType }

// DataGroupCodes returns the DXF group codes for this point's geometry.
func (p *Point) DataGroupCodes() []GroupCode {
	return []GroupCode{
		{10, p.X},
		{20, p.Y},
		{30, 0.0},
	}
}

// Text represents a DXF TEXT entity.
// Text entities display a single line of text at a specified location.
type Text struct {
	// Layer is the name of the layer this entity belongs to.
	Layer string

	// Color is the ACI color number (0 = BYLAYER).
	Color int

	// LineType specifies the line pattern applied to the text entity.
	LineType string

	// X, Y are the coordinates of the text insertion point.
	X, Y float64

	// Height is the text height in drawing units.
	Height float64

	// Rotation is the text rotation angle in degrees.
	Rotation float64

	// Content is the actual text string to display.
	Content string

	// Style is the text style name (e.g., "STANDARD").
	Style string
}

// EntityType returns "TEXT".
func (t *Text) EntityType() string { return "TEXT" }

// Header returns the text's layer, color, and line type.
func (t *Text) Header() (string, int, string) { return t.Layer, t.Color, t.LineType }

// DataGroupCodes returns the DXF group codes for this text's geometry and content.
func (t *Text) DataGroupCodes() []GroupCode {
	codes := []GroupCode{
		{10, t.X},
		{20, t.Y},
		{30, 0.0},
		{40, t.Height},
		{1, EscapeUnicode(t.Content)},
	}
	if t.Rotation != 0 {
		codes = append(codes, GroupCode{50, t.Rotation})
	}
	if t.Style != "" {
		codes = append(codes, GroupCode{7, EscapeUnicode(t.Style)})
	}
	return codes
}

// Solid represents a DXF SOLID entity (filled triangle or quadrilateral).
// Solids are used to create filled areas and hatching patterns.
type Solid struct {
	// Layer is the name of the layer this entity belongs to.
	Layer string

	// Color is the ACI color number (0 = BYLAYER).
	Color int

	// LineType specifies the line pattern applied to the solid's outline.
	LineType string

	// X1, Y1 are the coordinates of the first corner point.
	X1, Y1 float64

	// X2, Y2 are the coordinates of the second corner point.
	X2, Y2 float64

	// X3, Y3 are the coordinates of the third corner point.
	X3, Y3 float64

	// X4, Y4 are the coordinates of the fourth corner point (same as X3, Y3 for triangles).
	X4, Y4 float64
}

// EntityType returns "SOLID".
func (s *Solid) EntityType() string { return "SOLID" }

// Header returns the solid's layer, color, and line type.
func (s *Solid) Header() (string, int, string) { return s.Layer, s.Color, s.LineType }

// DataGroupCodes returns the DXF group codes for this solid's geometry.
func (s *Solid) DataGroupCodes() []GroupCode {
	return []GroupCode{
		{10, s.X1},
		{20, s.Y1},
		{30, 0.0},
		{11, s.X2},
		{21, s.Y2},
		{31, 0.0},
		{12, s.X3},
		{22, s.Y3},
		{32, 0.0},
		{13, s.X4},
		{23, s.Y4},
		{33, 0.0},
	}
}

// Insert represents a DXF INSERT entity (block reference).
// Inserts allow reusing block definitions with different positions, scales, and rotations.
type Insert struct {
	// Layer is the name of the layer this entity belongs to.
	Layer string

	// Color is the ACI color number (0 = BYLAYER).
	Color int

	// LineType specifies the line pattern applied to the insert reference.
	LineType string

	// BlockName is the name of the block definition to insert.
	BlockName string

	// X, Y are the coordinates of the insertion point.
	X, Y float64

	// ScaleX is the X-axis scale factor.
	ScaleX float64

	// ScaleY is the Y-axis scale factor.
	ScaleY float64

	// Rotation is the rotation angle in degrees.
	Rotation float64
}

// EntityType returns "INSERT".
func (i *Insert) EntityType() string { return "INSERT" }

// Header returns the insert's layer, color, and line type.
func (i *Insert) Header() (string, int, string) { return i.Layer, i.Color, i.LineType }

// DataGroupCodes returns the DXF group codes for this block reference.
func (i *Insert) DataGroupCodes() []GroupCode {
	return []GroupCode{
		{2, EscapeUnicode(i.BlockName)},
		{10, i.X},
		{20, i.Y},
		{30, 0.0},
		{41, i.ScaleX},
		{42, i.ScaleY},
		{43, 1.0}, // ScaleZ
		{50, i.Rotation},
	}
}

// Block represents a DXF block definition.
// Blocks are reusable collections of entities that can be inserted multiple times
// via Insert entities with different transformations.
type Block struct {
	// Name is the unique block name.
	Name string

	// BaseX, BaseY are the coordinates of the block's base point.
	BaseX float64
	BaseY float64

	// Entities contains the entities that comprise this block.
	Entities []Entity
}

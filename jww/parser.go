package jww

import (
	"fmt"
	"io"
	"os"
)

// Parse reads a JWW (Jw_cad) file from r and returns a parsed Document.
//
// The function reads the entire file into memory, validates the JWW
// signature, and parses the binary structure according to the MFC CArchive
// serialization format. It extracts layer information, drawing entities,
// and block definitions.
//
// Returns an error if the file cannot be read, the signature is invalid,
// or the entity list cannot be located.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("jww: reading input: %w", err)
	}
	return ParseDocument(data)
}

// ReadDocumentFromFile opens path and parses it as a JWW document.
func ReadDocumentFromFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("jww: reading %s: %w", path, err)
	}
	return ParseDocument(data)
}

// ParseDocument parses a complete in-memory JWW file.
func ParseDocument(data []byte) (*Document, error) {
	if !IsSignature(data) {
		return nil, ErrInvalidSignature
	}

	hr := NewReader(data)
	doc, err := parseHeader(hr)
	if err != nil {
		return nil, err
	}

	entityListOffset := findEntityListOffset(data, doc.Version)
	if entityListOffset < 0 {
		return nil, ErrEntityListNotFound
	}

	er := NewReader(data[entityListOffset:])
	entities, err := parseEntityList(er, doc.Version)
	if err != nil {
		return nil, fmt.Errorf("jww: parsing entity list: %w", err)
	}
	doc.Entities = entities

	blockDataStart := entityListOffset + er.BytesRead()
	if blockDataStart < len(data) {
		br := NewReader(data[blockDataStart:])
		if blockDefs, err := parseBlockDefList(br, doc.Version); err == nil {
			doc.BlockDefs = blockDefs
		}
	}

	return doc, nil
}

// findEntityListOffset scans data for the anchor that marks the start of
// the top-level entity list: a 0xFFFF class-registration marker whose
// schema matches the file's version and whose class name is an 8..32 byte
// ASCII string starting with "CData". The entity list itself begins two
// bytes before the anchor (a u16 entity count precedes it).
func findEntityListOffset(data []byte, version uint32) int {
	if len(data) < 128 {
		return -1
	}

	schemaLo := byte(version & 0xFF)
	schemaHi := byte((version >> 8) & 0xFF)

	for i := 100; i+20 < len(data); i++ {
		if data[i] != 0xFF || data[i+1] != 0xFF {
			continue
		}
		if data[i+2] != schemaLo || data[i+3] != schemaHi {
			continue
		}
		nameLen := int(data[i+4]) | int(data[i+5])<<8
		if nameLen < 8 || nameLen > 32 {
			continue
		}
		if i+6+nameLen > len(data) {
			continue
		}
		className := data[i+6 : i+6+nameLen]
		if len(className) >= 5 && string(className[:5]) == "CData" && i >= 2 {
			return i - 2
		}
	}

	return -1
}

// parseEntityList reads the top-level entity list: a u16 count followed by
// that many PID-tracked records.
func parseEntityList(r *Reader, version uint32) ([]Entity, error) {
	count, err := r.ReadU16()
	if err != nil {
		return nil, UnexpectedEOFError("entity count")
	}

	entities := make([]Entity, 0, count)
	classes := make(map[uint32]string)
	nextPID := uint32(1)

	for i := uint32(0); i < uint32(count); i++ {
		entity, newPID, err := parseEntityWithPIDTracking(r, version, classes, nextPID)
		if err != nil {
			return entities, fmt.Errorf("entity %d/%d: %w", i+1, count, err)
		}
		nextPID = newPID
		if entity != nil {
			entities = append(entities, entity)
		}
	}

	return entities, nil
}

// parseEntityWithPIDTracking reads one class-dictionary-tracked record from
// the entity list.
//
// classID == 0xFFFF registers a new class: a schema WORD (discarded), a
// name-length WORD, and the class name bytes, assigned the next PID
// immediately. classID == 0x8000 is the sentinel/terminator: it consumes
// no PID and parses to nothing. Any other classID is `pid & 0x7FFF`,
// looked up in classes.
//
// After a non-sentinel record is fully parsed (whether it was a fresh
// registration or a reference to one), the PID counter advances once more
// — so a single 0xFFFF record consumes two PIDs in total: one at
// registration, one after the record completes.
func parseEntityWithPIDTracking(r *Reader, version uint32, classes map[uint32]string, nextPID uint32) (Entity, uint32, error) {
	classID, err := r.ReadU16()
	if err != nil {
		return nil, nextPID, UnexpectedEOFError("class id")
	}

	var className string

	switch {
	case classID == 0xFFFF:
		if _, err := r.ReadU16(); err != nil { // schema version, unused
			return nil, nextPID, UnexpectedEOFError("class schema")
		}
		nameLen, err := r.ReadU16()
		if err != nil {
			return nil, nextPID, UnexpectedEOFError("class name length")
		}
		nameBuf, err := r.ReadBytes(int(nameLen))
		if err != nil {
			return nil, nextPID, UnexpectedEOFError("class name")
		}
		className = string(nameBuf)
		classes[nextPID] = className
		nextPID++
	case classID == 0x8000:
		return nil, nextPID, nil
	default:
		classPID := uint32(classID & 0x7FFF)
		name, ok := classes[classPID]
		if !ok {
			return nil, nextPID, UnknownClassPIDError(classPID)
		}
		className = name
	}

	entity, err := parseEntityByClassName(r, version, className)
	if err != nil {
		return nil, nextPID, err
	}

	nextPID++
	return entity, nextPID, nil
}

func parseEntityByClassName(r *Reader, version uint32, className string) (Entity, error) {
	switch className {
	case "CDataSen":
		return parseLine(r, version)
	case "CDataEnko":
		return parseArc(r, version)
	case "CDataTen":
		return parsePoint(r, version)
	case "CDataMoji":
		return parseText(r, version)
	case "CDataSolid":
		return parseSolid(r, version)
	case "CDataBlock":
		return parseBlock(r, version)
	case "CDataSunpou":
		return parseDimension(r, version)
	default:
		return nil, UnknownEntityClassError(className)
	}
}

// parseBlockDefList reads the block-definition list that follows the
// entity list: a u32 count, then that many records. A count over 10,000 is
// treated as corrupt and the whole section is abandoned (returning no
// error, since the file may simply have no block definitions at all). A
// parse error partway through keeps the block defs already parsed.
func parseBlockDefList(r *Reader, version uint32) ([]BlockDef, error) {
	count, err := r.ReadU32()
	if err != nil {
		return nil, UnexpectedEOFError("block def count")
	}
	if count > 10000 {
		return nil, nil
	}

	blockDefs := make([]BlockDef, 0, count)
	classes := make(map[uint16]string)
	nextID := uint16(1)

	for i := uint32(0); i < count; i++ {
		bd, newID, err := parseBlockDefWithTracking(r, version, classes, nextID)
		if err != nil {
			return blockDefs, nil
		}
		nextID = newID
		if bd != nil {
			blockDefs = append(blockDefs, *bd)
		}
	}

	return blockDefs, nil
}

// parseBlockDefWithTracking reads one block definition. Its class
// dictionary is independent of the entity list's (fresh map, fresh
// counter) and, unlike the entity list, the id counter only advances at
// registration time — there is no unconditional post-record increment,
// since a block-definition list uses one fixed class per call rather than
// dispatching per record.
func parseBlockDefWithTracking(r *Reader, version uint32, classes map[uint16]string, nextID uint16) (*BlockDef, uint16, error) {
	classID, err := r.ReadU16()
	if err != nil {
		return nil, nextID, UnexpectedEOFError("block def class id")
	}

	switch classID {
	case 0xFFFF:
		if _, err := r.ReadU16(); err != nil { // schema version, unused
			return nil, nextID, UnexpectedEOFError("block def class schema")
		}
		nameLen, err := r.ReadU16()
		if err != nil {
			return nil, nextID, UnexpectedEOFError("block def class name length")
		}
		nameBuf, err := r.ReadBytes(int(nameLen))
		if err != nil {
			return nil, nextID, UnexpectedEOFError("block def class name")
		}
		classes[nextID] = string(nameBuf)
		nextID++
	case 0x8000:
		return nil, nextID, nil
	}

	base, err := parseEntityBase(r, version)
	if err != nil {
		return nil, nextID, err
	}

	bd := &BlockDef{EntityBase: *base}

	number, err := r.ReadU32()
	if err != nil {
		return nil, nextID, UnexpectedEOFError("block def number")
	}
	bd.Number = number

	ref, err := r.ReadU32()
	if err != nil {
		return nil, nextID, UnexpectedEOFError("block def is_referenced")
	}
	bd.IsReferenced = ref != 0

	if err := r.Skip(4); err != nil { // CTime
		return nil, nextID, UnexpectedEOFError("block def ctime")
	}

	name, err := r.ReadCString()
	if err != nil {
		return nil, nextID, UnexpectedEOFError("block def name")
	}
	bd.Name = name

	nested, err := parseEntityList(r, version)
	if err != nil {
		return bd, nextID, nil
	}
	bd.Entities = nested

	return bd, nextID, nil
}

// parseDimension reads a dimension entity (JWW class: CDataSunpou): a
// witness line, a text label, and, from Ver.4.20 onward, an SXF mode word
// plus two auxiliary lines and four auxiliary points.
func parseDimension(r *Reader, version uint32) (Entity, error) {
	base, err := parseEntityBase(r, version)
	if err != nil {
		return nil, err
	}

	line, err := parseLine(r, version)
	if err != nil {
		return nil, err
	}

	text, err := parseText(r, version)
	if err != nil {
		return nil, err
	}

	dim := &Dimension{EntityBase: *base, Line: *line, Text: *text}

	if version >= 420 {
		sxfMode, err := r.ReadU16()
		if err != nil {
			return nil, UnexpectedEOFError("dimension sxf mode")
		}
		dim.SxfMode = &sxfMode

		auxLines := make([]Line, 0, 2)
		for i := 0; i < 2; i++ {
			l, err := parseLine(r, version)
			if err != nil {
				return nil, err
			}
			auxLines = append(auxLines, *l)
		}
		dim.AuxLines = auxLines

		auxPoints := make([]Point, 0, 4)
		for i := 0; i < 4; i++ {
			p, err := parsePoint(r, version)
			if err != nil {
				return nil, err
			}
			auxPoints = append(auxPoints, *p)
		}
		dim.AuxPoints = auxPoints
	}

	return dim, nil
}

// parseEntityBase reads the fields shared by every entity type: the curve
// group, pen style/color/width (width only in Ver.3.51+), layer, layer
// group, and flag.
func parseEntityBase(r *Reader, version uint32) (*EntityBase, error) {
	base := &EntityBase{}

	group, err := r.ReadU32()
	if err != nil {
		return nil, UnexpectedEOFError("entity group")
	}
	base.Group = group

	penStyle, err := r.ReadU8()
	if err != nil {
		return nil, UnexpectedEOFError("entity pen style")
	}
	base.PenStyle = penStyle

	penColor, err := r.ReadU16()
	if err != nil {
		return nil, UnexpectedEOFError("entity pen color")
	}
	base.PenColor = penColor

	if version >= 351 {
		penWidth, err := r.ReadU16()
		if err != nil {
			return nil, UnexpectedEOFError("entity pen width")
		}
		base.PenWidth = penWidth
	}

	layer, err := r.ReadU16()
	if err != nil {
		return nil, UnexpectedEOFError("entity layer")
	}
	base.Layer = layer

	layerGroup, err := r.ReadU16()
	if err != nil {
		return nil, UnexpectedEOFError("entity layer group")
	}
	base.LayerGroup = layerGroup

	flag, err := r.ReadU16()
	if err != nil {
		return nil, UnexpectedEOFError("entity flag")
	}
	base.Flag = flag

	return base, nil
}

// parseLine reads a line entity (JWW class: CDataSen).
func parseLine(r *Reader, version uint32) (*Line, error) {
	base, err := parseEntityBase(r, version)
	if err != nil {
		return nil, err
	}

	line := &Line{EntityBase: *base}
	if line.StartX, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("line start x")
	}
	if line.StartY, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("line start y")
	}
	if line.EndX, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("line end x")
	}
	if line.EndY, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("line end y")
	}

	return line, nil
}

// parseArc reads an arc/circle/ellipse entity (JWW class: CDataEnko).
func parseArc(r *Reader, version uint32) (*Arc, error) {
	base, err := parseEntityBase(r, version)
	if err != nil {
		return nil, err
	}

	arc := &Arc{EntityBase: *base}
	if arc.CenterX, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("arc center x")
	}
	if arc.CenterY, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("arc center y")
	}
	if arc.Radius, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("arc radius")
	}
	if arc.StartAngle, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("arc start angle")
	}
	if arc.ArcAngle, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("arc angle")
	}
	if arc.TiltAngle, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("arc tilt angle")
	}
	if arc.Flatness, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("arc flatness")
	}
	fullCircle, err := r.ReadU32()
	if err != nil {
		return nil, UnexpectedEOFError("arc is_full_circle")
	}
	arc.IsFullCircle = fullCircle != 0

	return arc, nil
}

// parsePoint reads a point entity (JWW class: CDataTen). The auxiliary
// (code, angle, scale) triple is present only when pen_style == 100.
func parsePoint(r *Reader, version uint32) (*Point, error) {
	base, err := parseEntityBase(r, version)
	if err != nil {
		return nil, err
	}

	pt := &Point{EntityBase: *base}
	if pt.X, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("point x")
	}
	if pt.Y, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("point y")
	}
	tmp, err := r.ReadU32()
	if err != nil {
		return nil, UnexpectedEOFError("point is_temporary")
	}
	pt.IsTemporary = tmp != 0

	if base.PenStyle == 100 {
		if pt.Code, err = r.ReadU32(); err != nil {
			return nil, UnexpectedEOFError("point code")
		}
		if pt.Angle, err = r.ReadFloat64(); err != nil {
			return nil, UnexpectedEOFError("point angle")
		}
		if pt.Scale, err = r.ReadFloat64(); err != nil {
			return nil, UnexpectedEOFError("point scale")
		}
	}

	return pt, nil
}

// parseText reads a text entity (JWW class: CDataMoji).
func parseText(r *Reader, version uint32) (*Text, error) {
	base, err := parseEntityBase(r, version)
	if err != nil {
		return nil, err
	}

	txt := &Text{EntityBase: *base}
	if txt.StartX, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("text start x")
	}
	if txt.StartY, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("text start y")
	}
	if txt.EndX, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("text end x")
	}
	if txt.EndY, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("text end y")
	}
	if txt.TextType, err = r.ReadU32(); err != nil {
		return nil, UnexpectedEOFError("text type")
	}
	if txt.SizeX, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("text size x")
	}
	if txt.SizeY, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("text size y")
	}
	if txt.Spacing, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("text spacing")
	}
	if txt.Angle, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("text angle")
	}
	if txt.FontName, err = r.ReadCString(); err != nil {
		return nil, UnexpectedEOFError("text font name")
	}
	if txt.Content, err = r.ReadCString(); err != nil {
		return nil, UnexpectedEOFError("text content")
	}

	return txt, nil
}

// parseSolid reads a solid-fill entity (JWW class: CDataSolid). Corners
// are stored on disk in the order p1, p4, p2, p3 but normalized to
// p1..p4 order in memory. The extended color DWORD is read only when
// pen_color == 10.
func parseSolid(r *Reader, version uint32) (*Solid, error) {
	base, err := parseEntityBase(r, version)
	if err != nil {
		return nil, err
	}

	solid := &Solid{EntityBase: *base}
	if solid.Point1X, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("solid p1 x")
	}
	if solid.Point1Y, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("solid p1 y")
	}
	if solid.Point4X, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("solid p4 x")
	}
	if solid.Point4Y, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("solid p4 y")
	}
	if solid.Point2X, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("solid p2 x")
	}
	if solid.Point2Y, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("solid p2 y")
	}
	if solid.Point3X, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("solid p3 x")
	}
	if solid.Point3Y, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("solid p3 y")
	}

	if base.PenColor == 10 {
		if solid.Color, err = r.ReadU32(); err != nil {
			return nil, UnexpectedEOFError("solid color")
		}
	}

	return solid, nil
}

// parseBlock reads a block-insert entity (JWW class: CDataBlock).
func parseBlock(r *Reader, version uint32) (*Block, error) {
	base, err := parseEntityBase(r, version)
	if err != nil {
		return nil, err
	}

	block := &Block{EntityBase: *base}
	if block.RefX, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("block ref x")
	}
	if block.RefY, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("block ref y")
	}
	if block.ScaleX, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("block scale x")
	}
	if block.ScaleY, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("block scale y")
	}
	if block.Rotation, err = r.ReadFloat64(); err != nil {
		return nil, UnexpectedEOFError("block rotation")
	}
	if block.DefNumber, err = r.ReadU32(); err != nil {
		return nil, UnexpectedEOFError("block def number")
	}

	return block, nil
}

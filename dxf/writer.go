package dxf

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// modelSpaceBlock and paperSpaceBlock are the two layout blocks every DXF
// document carries regardless of user-defined blocks.
const (
	modelSpaceBlock = "*Model_Space"
	paperSpaceBlock = "*Paper_Space"
)

// lineTypePattern describes a named DXF line type's description and dash
// pattern (positive = dash length, negative = gap length).
type lineTypePattern struct {
	description string
	pattern     []float64
}

var lineTypePatterns = map[string]lineTypePattern{
	"BYLAYER":    {"", nil},
	"BYBLOCK":    {"", nil},
	"CONTINUOUS": {"Solid line", nil},
	"DASHED":     {"Dashed line", []float64{0.6, -0.3}},
	"DASHED2":    {"Dashed line x2", []float64{1.2, -0.6}},
	"DASHDOT":    {"Dash dot", []float64{0.6, -0.2, 0.1, -0.2}},
	"DOT":        {"Dotted line", []float64{0.1, -0.1}},
}

// AsciiWriter serializes DXF documents to an io.Writer in ASCII DXF
// (AC1015/R2000) format. It manages handle generation and pre-registers
// BLOCK_RECORD entries so entity/block owner handles (group 330) can be
// resolved before the TABLES and BLOCKS sections are written.
type AsciiWriter struct {
	w    io.Writer
	err  error
	next int

	blockRecordOrder   []string
	blockRecordHandles map[string]string
}

// NewWriter creates an AsciiWriter that writes to w, with the handle
// counter starting at 1.
func NewWriter(w io.Writer) *AsciiWriter {
	return &AsciiWriter{
		w:                  w,
		next:               1,
		blockRecordHandles: make(map[string]string),
	}
}

func (w *AsciiWriter) allocHandle() string {
	h := fmt.Sprintf("%X", w.next)
	w.next++
	return h
}

// registerBlockRecord pre-allocates a BLOCK_RECORD handle for name if one
// doesn't already exist, tracking insertion order for writeBlockRecordTable.
func (w *AsciiWriter) registerBlockRecord(name string) {
	if _, ok := w.blockRecordHandles[name]; ok {
		return
	}
	w.blockRecordOrder = append(w.blockRecordOrder, name)
	w.blockRecordHandles[name] = w.allocHandle()
}

func (w *AsciiWriter) blockRecordHandle(name string) string {
	return w.blockRecordHandles[name]
}

// ensureBlockRecordTable pre-registers every block record this document
// will need an owner handle for: the two standard layout blocks, then
// every user-defined block, all before anything else is written.
func (w *AsciiWriter) ensureBlockRecordTable(doc *Document) {
	w.registerBlockRecord(modelSpaceBlock)
	w.registerBlockRecord(paperSpaceBlock)
	for _, b := range doc.Blocks {
		w.registerBlockRecord(b.Name)
	}
}

// EscapeUnicode converts control characters and non-ASCII runes to DXF's
// \U+XXXX escape form, maps newlines to the DXF paragraph break \P, and
// drops carriage returns. Backslashes are escaped so they are not mistaken
// for the start of another control sequence.
func EscapeUnicode(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == '\r':
			// dropped
		case r == '\n':
			sb.WriteString("\\P")
		case r == '\\':
			sb.WriteString("\\\\")
		case r >= 0x20 && r < 0x7F:
			sb.WriteRune(r)
		default:
			fmt.Fprintf(&sb, "\\U+%04X", r)
		}
	}
	return sb.String()
}

// WriteDocument writes a complete DXF document: HEADER, TABLES, BLOCKS,
// ENTITIES, OBJECTS, then EOF.
func (w *AsciiWriter) WriteDocument(doc *Document) error {
	w.ensureBlockRecordTable(doc)

	if err := w.writeHeader(doc); err != nil {
		return err
	}
	if err := w.writeTables(doc); err != nil {
		return err
	}
	if err := w.writeBlocksSection(doc); err != nil {
		return err
	}
	if err := w.writeEntitiesSection(doc); err != nil {
		return err
	}
	if err := w.writeObjectsSection(); err != nil {
		return err
	}
	w.groupStr(0, "EOF")
	return w.err
}

func (w *AsciiWriter) writeHeader(doc *Document) error {
	if err := w.sectionStart("HEADER"); err != nil {
		return err
	}

	w.groupStr(9, "$ACADVER")
	w.groupStr(1, "AC1015")

	w.groupStr(9, "$DWGCODEPAGE")
	w.groupStr(3, "ANSI_1252")

	w.groupStr(9, "$MEASUREMENT")
	w.groupI(70, 1)

	w.groupStr(9, "$TEXTSTYLE")
	w.groupStr(7, "STANDARD")

	w.groupStr(9, "$CLAYER")
	w.groupStr(8, "0")

	w.groupStr(9, "$CELTYPE")
	w.groupStr(6, "BYLAYER")

	w.groupStr(9, "$CECOLOR")
	w.groupI(62, 256)

	minX, minY, maxX, maxY := doc.BoundingBox()
	w.groupStr(9, "$EXTMIN")
	w.groupF(10, minX)
	w.groupF(20, minY)
	w.groupF(30, 0.0)

	w.groupStr(9, "$EXTMAX")
	w.groupF(10, maxX)
	w.groupF(20, maxY)
	w.groupF(30, 0.0)

	return w.sectionEnd()
}

func (w *AsciiWriter) writeTables(doc *Document) error {
	if err := w.sectionStart("TABLES"); err != nil {
		return err
	}
	w.writeLTypeTable(doc)
	w.writeLayerTable(doc)
	w.writeStyleTable()
	w.writeBlockRecordTable()
	return w.sectionEnd()
}

func (w *AsciiWriter) collectLineTypes(doc *Document) map[string]struct{} {
	types := map[string]struct{}{"BYLAYER": {}, "BYBLOCK": {}, "CONTINUOUS": {}}
	for _, l := range doc.Layers {
		if l.LineType != "" {
			types[l.LineType] = struct{}{}
		}
	}
	collect := func(entities []Entity) {
		for _, e := range entities {
			_, _, lt := e.Header()
			if lt != "" {
				types[lt] = struct{}{}
			}
		}
	}
	collect(doc.Entities)
	for _, b := range doc.Blocks {
		collect(b.Entities)
	}
	return types
}

func (w *AsciiWriter) writeLTypeTable(doc *Document) {
	names := w.collectLineTypes(doc)
	sorted := sortedKeys(names)

	w.groupStr(0, "TABLE")
	w.groupStr(2, "LTYPE")
	w.writeHandle()
	w.groupI(70, len(sorted))

	for _, name := range sorted {
		pat, ok := lineTypePatterns[name]
		if !ok {
			pat = lineTypePattern{description: "", pattern: nil}
		}
		w.groupStr(0, "LTYPE")
		w.writeHandle()
		w.groupStr(2, name)
		w.groupI(70, 0)
		w.groupStr(3, pat.description)
		w.groupI(72, 65)
		w.groupI(73, len(pat.pattern))
		total := 0.0
		for _, v := range pat.pattern {
			if v < 0 {
				total -= v
			} else {
				total += v
			}
		}
		w.groupF(40, total)
		for _, v := range pat.pattern {
			w.groupF(49, v)
		}
	}

	w.groupStr(0, "ENDTAB")
}

func (w *AsciiWriter) writeLayerTable(doc *Document) {
	dedup := make(map[string]Layer, len(doc.Layers))
	var order []string
	for _, l := range doc.Layers {
		if _, ok := dedup[l.Name]; !ok {
			dedup[l.Name] = l
			order = append(order, l.Name)
		}
	}

	w.groupStr(0, "TABLE")
	w.groupStr(2, "LAYER")
	w.writeHandle()
	w.groupI(70, len(order)+1)

	w.groupStr(0, "LAYER")
	w.writeHandle()
	w.groupStr(2, "0")
	w.groupI(70, 0)
	w.groupI(62, 7)
	w.groupStr(6, "CONTINUOUS")

	for _, name := range order {
		l := dedup[name]
		w.groupStr(0, "LAYER")
		w.writeHandle()
		w.groupStr(2, EscapeUnicode(l.Name))
		flags := 0
		if l.Frozen {
			flags |= 1
		}
		if l.Locked {
			flags |= 4
		}
		w.groupI(70, flags)
		w.groupI(62, l.Color)
		w.groupStr(6, l.LineType)
	}

	w.groupStr(0, "ENDTAB")
}

func (w *AsciiWriter) writeStyleTable() {
	w.groupStr(0, "TABLE")
	w.groupStr(2, "STYLE")
	w.writeHandle()
	w.groupI(70, 1)

	w.groupStr(0, "STYLE")
	w.writeHandle()
	w.groupStr(2, "STANDARD")
	w.groupI(70, 0)
	w.groupF(40, 0.0)
	w.groupF(41, 1.0)
	w.groupF(50, 0.0)
	w.groupI(71, 0)
	w.groupF(42, 2.5)
	w.groupStr(3, "txt")
	w.groupStr(4, "")

	w.groupStr(0, "ENDTAB")
}

func (w *AsciiWriter) writeBlockRecordTable() {
	w.groupStr(0, "TABLE")
	w.groupStr(2, "BLOCK_RECORD")
	w.writeHandle()
	w.groupI(70, len(w.blockRecordOrder))

	for _, name := range w.blockRecordOrder {
		w.groupStr(0, "BLOCK_RECORD")
		w.groupStr(5, w.blockRecordHandle(name))
		w.groupStr(330, "0")
		w.groupStr(100, "AcDbSymbolTableRecord")
		w.groupStr(100, "AcDbBlockTableRecord")
		w.groupStr(2, EscapeUnicode(name))
	}

	w.groupStr(0, "ENDTAB")
}

func (w *AsciiWriter) writeBlocksSection(doc *Document) error {
	if err := w.sectionStart("BLOCKS"); err != nil {
		return err
	}

	w.writeBlockDefinition(modelSpaceBlock, 0, 0, nil, w.blockRecordHandle(modelSpaceBlock))
	w.writeBlockDefinition(paperSpaceBlock, 0, 0, nil, w.blockRecordHandle(paperSpaceBlock))

	for _, b := range doc.Blocks {
		w.writeBlockDefinition(b.Name, b.BaseX, b.BaseY, b.Entities, w.blockRecordHandle(b.Name))
	}

	return w.sectionEnd()
}

func (w *AsciiWriter) writeBlockDefinition(name string, baseX, baseY float64, entities []Entity, ownerHandle string) {
	escaped := EscapeUnicode(name)

	w.groupStr(0, "BLOCK")
	w.writeHandle()
	if ownerHandle != "" {
		w.groupStr(330, ownerHandle)
	}
	w.groupStr(100, "AcDbEntity")
	w.groupStr(8, "0")
	w.groupStr(100, "AcDbBlockBegin")
	w.groupStr(2, escaped)
	w.groupI(70, 0)
	w.groupF(10, baseX)
	w.groupF(20, baseY)
	w.groupF(30, 0.0)
	w.groupStr(3, escaped)
	w.groupStr(1, "")

	for _, e := range entities {
		w.writeEntity(e, ownerHandle)
	}

	w.groupStr(0, "ENDBLK")
	w.writeHandle()
	if ownerHandle != "" {
		w.groupStr(330, ownerHandle)
	}
	w.groupStr(100, "AcDbEntity")
	w.groupStr(8, "0")
	w.groupStr(100, "AcDbBlockEnd")
}

func (w *AsciiWriter) writeEntitiesSection(doc *Document) error {
	if err := w.sectionStart("ENTITIES"); err != nil {
		return err
	}
	owner := w.blockRecordHandle(modelSpaceBlock)
	for _, e := range doc.Entities {
		w.writeEntity(e, owner)
	}
	return w.sectionEnd()
}

func (w *AsciiWriter) writeObjectsSection() error {
	if err := w.sectionStart("OBJECTS"); err != nil {
		return err
	}
	w.groupStr(0, "DICTIONARY")
	w.writeHandle()
	w.groupStr(330, "0")
	w.groupStr(100, "AcDbDictionary")
	w.groupI(281, 1)
	return w.sectionEnd()
}

// entityHeader writes the record fields shared by every entity: its type,
// a fresh handle, an optional owner (group 330), layer, color, and line
// type.
func (w *AsciiWriter) entityHeader(entityType, layer string, color int, lineType, ownerHandle string) {
	w.groupStr(0, entityType)
	w.writeHandle()
	if ownerHandle != "" {
		w.groupStr(330, ownerHandle)
	}
	w.groupStr(8, EscapeUnicode(layer))
	w.groupI(62, color)
	w.groupStr(6, lineType)
}

func (w *AsciiWriter) writeEntity(e Entity, ownerHandle string) {
	layer, color, lineType := e.Header()
	w.entityHeader(e.EntityType(), layer, color, lineType, ownerHandle)
	for _, gc := range e.DataGroupCodes() {
		w.writeGroupCode(gc.Code, gc.Value)
	}
}

func (w *AsciiWriter) sectionStart(name string) error {
	w.groupStr(0, "SECTION")
	w.groupStr(2, name)
	return w.err
}

func (w *AsciiWriter) sectionEnd() error {
	w.groupStr(0, "ENDSEC")
	return w.err
}

func (w *AsciiWriter) writeHandle() {
	w.groupStr(5, w.allocHandle())
}

func (w *AsciiWriter) groupStr(code int, value string) {
	w.writeGroupCode(code, value)
}

func (w *AsciiWriter) groupI(code int, value int) {
	w.writeGroupCode(code, value)
}

func (w *AsciiWriter) groupF(code int, value float64) {
	w.writeGroupCode(code, value)
}

// writeGroupCode writes a single DXF group code/value pair: the code
// right-justified in a 3-character field, then the value on the next
// line. Floats are written with exactly 12 fixed decimal digits, matching
// the precision AutoCAD itself emits for AC1015 geometry.
func (w *AsciiWriter) writeGroupCode(code int, value interface{}) {
	if w.err != nil {
		return
	}
	var line string
	switch v := value.(type) {
	case string:
		line = fmt.Sprintf("%3d\n%s\n", code, v)
	case int:
		line = fmt.Sprintf("%3d\n%d\n", code, v)
	case float64:
		line = fmt.Sprintf("%3d\n%.12f\n", code, v)
	default:
		line = fmt.Sprintf("%3d\n%v\n", code, v)
	}
	_, err := io.WriteString(w.w, line)
	if err != nil {
		w.err = err
	}
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ToString serializes a DXF Document to a string in ASCII DXF format.
func ToString(doc *Document) string {
	var sb strings.Builder
	w := NewWriter(&sb)
	_ = w.WriteDocument(doc)
	return sb.String()
}

// WriteDocumentToFile serializes doc and writes it to path, creating or
// truncating the file.
func WriteDocumentToFile(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dxf: creating %s: %w", path, err)
	}
	w := NewWriter(f)
	if err := w.WriteDocument(doc); err != nil {
		f.Close()
		return fmt.Errorf("dxf: writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("dxf: closing %s: %w", path, err)
	}
	return nil
}

package jww

import "fmt"

// jwwSignature is the fixed 8-byte magic every JWW file begins with.
var jwwSignature = []byte("JwwData.")

// IsSignature reports whether data begins with the JWW magic bytes.
func IsSignature(data []byte) bool {
	if len(data) < len(jwwSignature) {
		return false
	}
	for i, b := range jwwSignature {
		if data[i] != b {
			return false
		}
	}
	return true
}

// parseHeader reads the fixed-size header: signature, version, memo, paper
// size, write-layer-group, and the 16 layer groups' state/scale/protect
// fields (but not names, which live further into the file and are filled
// in separately by parseLayerNames).
func parseHeader(r *Reader) (*Document, error) {
	sig, err := r.ReadBytes(len(jwwSignature))
	if err != nil {
		return nil, UnexpectedEOFError("signature")
	}
	for i, b := range jwwSignature {
		if sig[i] != b {
			return nil, ErrInvalidSignature
		}
	}

	doc := &Document{}

	version, err := r.ReadU32()
	if err != nil {
		return nil, UnexpectedEOFError("version")
	}
	doc.Version = version

	memo, err := r.ReadCString()
	if err != nil {
		return nil, UnexpectedEOFError("memo")
	}
	doc.Memo = memo

	paperSize, err := r.ReadU32()
	if err != nil {
		return nil, UnexpectedEOFError("paper size")
	}
	doc.PaperSize = paperSize

	writeGLay, err := r.ReadU32()
	if err != nil {
		return nil, UnexpectedEOFError("write layer group")
	}
	doc.WriteLayerGroup = writeGLay

	for g := 0; g < 16; g++ {
		lg := &doc.LayerGroups[g]

		state, err := r.ReadU32()
		if err != nil {
			return nil, UnexpectedEOFError(fmt.Sprintf("layer group %d state", g))
		}
		lg.State = state

		writeLay, err := r.ReadU32()
		if err != nil {
			return nil, UnexpectedEOFError(fmt.Sprintf("layer group %d write layer", g))
		}
		lg.WriteLayer = writeLay

		scale, err := r.ReadFloat64()
		if err != nil {
			return nil, UnexpectedEOFError(fmt.Sprintf("layer group %d scale", g))
		}
		lg.Scale = scale

		protect, err := r.ReadU32()
		if err != nil {
			return nil, UnexpectedEOFError(fmt.Sprintf("layer group %d protect", g))
		}
		lg.Protect = protect

		for l := 0; l < 16; l++ {
			layState, err := r.ReadU32()
			if err != nil {
				return nil, UnexpectedEOFError(fmt.Sprintf("layer group %d layer %d state", g, l))
			}
			lg.Layers[l].State = layState

			layProtect, err := r.ReadU32()
			if err != nil {
				return nil, UnexpectedEOFError(fmt.Sprintf("layer group %d layer %d protect", g, l))
			}
			lg.Layers[l].Protect = layProtect
		}
	}

	if err := parseLayerNames(r, version, &doc.LayerGroups); err != nil {
		applyDefaultLayerNames(&doc.LayerGroups)
	} else {
		applyDefaultLayerNamesForBlanks(&doc.LayerGroups)
	}

	return doc, nil
}

// parseLayerNames reads the best-effort layer/group name block that
// follows the fixed header fields in Ver.3.00+ files. It returns an error
// (causing the caller to fall back to fully default names) if the version
// predates the block's existence or any read fails; on success, only the
// names that came back empty are replaced with defaults afterward.
func parseLayerNames(r *Reader, version uint32, groups *[16]LayerGroup) error {
	if version < 300 {
		return fmt.Errorf("jww: layer name block requires version >= 300, have %d", version)
	}

	// dummy DWORD(14) + dimension DWORD(5) + dummy DWORD(1) + max draw width DWORD(1)
	if err := r.Skip((14 + 5 + 1 + 1) * 4); err != nil {
		return err
	}
	// printer origin(16) + printer scale(8) + printer set(4) + memori mode(4)
	// + memori min(8) + memori x/y(16) + memori origin x/y(16)
	if err := r.Skip(16 + 8 + 4 + 4 + 8 + 16 + 16); err != nil {
		return err
	}

	for g := 0; g < 16; g++ {
		for l := 0; l < 16; l++ {
			name, err := r.ReadCString()
			if err != nil {
				return err
			}
			groups[g].Layers[l].Name = name
		}
	}

	for g := 0; g < 16; g++ {
		name, err := r.ReadCString()
		if err != nil {
			return err
		}
		groups[g].Name = name
	}

	return nil
}

// applyDefaultLayerNames assigns deterministic default names to every
// group and layer, used when the name block could not be read at all.
func applyDefaultLayerNames(groups *[16]LayerGroup) {
	for g := 0; g < 16; g++ {
		groups[g].Name = fmt.Sprintf("Group%X", g)
		for l := 0; l < 16; l++ {
			groups[g].Layers[l].Name = fmt.Sprintf("%X-%X", g, l)
		}
	}
}

// applyDefaultLayerNamesForBlanks fills in default names only where the
// name block left a group or layer name empty, used after a successful
// (but possibly sparse) name-block read.
func applyDefaultLayerNamesForBlanks(groups *[16]LayerGroup) {
	for g := 0; g < 16; g++ {
		if groups[g].Name == "" {
			groups[g].Name = fmt.Sprintf("Group%X", g)
		}
		for l := 0; l < 16; l++ {
			if groups[g].Layers[l].Name == "" {
				groups[g].Layers[l].Name = fmt.Sprintf("%X-%X", g, l)
			}
		}
	}
}

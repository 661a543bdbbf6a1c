package jww

import "sort"

// EntityCounts returns the number of entities of each type in entities,
// keyed by the same strings Entity.Type() returns.
func EntityCounts(entities []Entity) map[string]int {
	counts := make(map[string]int)
	for _, e := range entities {
		counts[e.Type()]++
	}
	return counts
}

// BlockDefNameMap maps each block definition's Number to its Name.
func BlockDefNameMap(blockDefs []BlockDef) map[uint32]string {
	names := make(map[uint32]string, len(blockDefs))
	for _, bd := range blockDefs {
		names[bd.Number] = bd.Name
	}
	return names
}

// ResolveBlockName returns the name of the block definition with the given
// number, if one exists.
func ResolveBlockName(blockDefs []BlockDef, number uint32) (string, bool) {
	for _, bd := range blockDefs {
		if bd.Number == number {
			return bd.Name, true
		}
	}
	return "", false
}

// BlockReferenceValidation summarizes how many BlockRef entities in a
// document resolve against its block definitions.
type BlockReferenceValidation struct {
	TotalReferences      int
	ResolvedReferences   int
	UnresolvedDefNumbers []uint32
}

// HasUnresolved reports whether any block reference failed to resolve.
func (v BlockReferenceValidation) HasUnresolved() bool {
	return len(v.UnresolvedDefNumbers) > 0
}

// ValidateBlockReferences walks every top-level entity and every block
// definition's nested entities, collecting each Block entity's DefNumber,
// and reports how many resolve against doc.BlockDefs.
func ValidateBlockReferences(doc *Document) BlockReferenceValidation {
	names := BlockDefNameMap(doc.BlockDefs)

	var refs []uint32
	refs = append(refs, collectBlockRefNumbers(doc.Entities)...)
	for _, bd := range doc.BlockDefs {
		refs = append(refs, collectBlockRefNumbers(bd.Entities)...)
	}

	unresolvedSet := make(map[uint32]struct{})
	resolved := 0
	for _, n := range refs {
		if _, ok := names[n]; ok {
			resolved++
		} else {
			unresolvedSet[n] = struct{}{}
		}
	}

	unresolved := make([]uint32, 0, len(unresolvedSet))
	for n := range unresolvedSet {
		unresolved = append(unresolved, n)
	}
	sort.Slice(unresolved, func(i, j int) bool { return unresolved[i] < unresolved[j] })

	return BlockReferenceValidation{
		TotalReferences:      len(refs),
		ResolvedReferences:   resolved,
		UnresolvedDefNumbers: unresolved,
	}
}

func collectBlockRefNumbers(entities []Entity) []uint32 {
	var nums []uint32
	for _, e := range entities {
		if b, ok := e.(*Block); ok {
			nums = append(nums, b.DefNumber)
		}
	}
	return nums
}

// Command jwwdxf converts a single JWW file to DXF, writing it to the file
// named by --output or to stdout; with -v it also prints a summary of the
// drawing to stderr.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"

	"github.com/hinoki-cad/jww2dxf/dxf"
	"github.com/hinoki-cad/jww2dxf/jww"
)

const defaultMaxBlockNesting = 32

var (
	explode         bool
	maxBlockNesting int
	outputFile      string
	verbose         bool
	layerFilter     string
)

func main() {
	root := &cobra.Command{
		Use:   "jwwdxf <input.jww>",
		Short: "Convert a JWW drawing to DXF",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}

	root.Flags().BoolVar(&explode, "explode", false, "flatten block references into their geometry instead of emitting INSERT entities")
	root.Flags().IntVar(&maxBlockNesting, "max-block-nesting", env.Int("JWW2DXF_MAX_BLOCK_NESTING", defaultMaxBlockNesting), "maximum nested block depth when --explode is set (env: JWW2DXF_MAX_BLOCK_NESTING)")
	root.Flags().StringVarP(&outputFile, "output", "o", "", "write DXF to this file instead of stdout")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "print parse diagnostics to stderr")
	root.Flags().StringVar(&layerFilter, "layer", "", "only include entities on this DXF layer in the output")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputFile := args[0]

	doc, err := jww.ReadDocumentFromFile(inputFile)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "JWW file: %s\n", inputFile)
		fmt.Fprintf(os.Stderr, "  Version: %d\n", doc.Version)
		fmt.Fprintf(os.Stderr, "  Memo: %s\n", doc.Memo)
		fmt.Fprintf(os.Stderr, "  Paper size: %d\n", doc.PaperSize)
		fmt.Fprintf(os.Stderr, "  Entities: %d\n", len(doc.Entities))
		fmt.Fprintf(os.Stderr, "  Block defs: %d\n", len(doc.BlockDefs))

		refs := jww.ValidateBlockReferences(doc)
		if refs.HasUnresolved() {
			fmt.Fprintf(os.Stderr, "  Unresolved block references: %v\n", refs.UnresolvedDefNumbers)
		}
	}

	options := dxf.DefaultConvertOptions()
	options.ExplodeInserts = explode
	if maxBlockNesting > 0 {
		options.MaxBlockNesting = maxBlockNesting
	}

	dxfDoc := dxf.ConvertDocumentWithOptions(doc, options)

	if verbose {
		fmt.Fprintf(os.Stderr, "  DXF layers: %d\n", dxfDoc.LayerCount())
		fmt.Fprintf(os.Stderr, "  DXF blocks: %d\n", dxfDoc.BlockCount())
		fmt.Fprintf(os.Stderr, "  DXF entities: %d\n", dxfDoc.EntityCount())
		for _, entType := range sortedTypeNames(dxfDoc.CountByType()) {
			fmt.Fprintf(os.Stderr, "    %s: %d\n", entType, dxfDoc.CountByType()[entType])
		}
		if len(dxfDoc.UnsupportedEntities) > 0 {
			fmt.Fprintf(os.Stderr, "  Unsupported/diagnostic entities: %v\n", dxfDoc.UnsupportedEntities)
		}
		if !explode {
			for _, e := range dxfDoc.Entities {
				ins, ok := e.(*dxf.Insert)
				if !ok {
					continue
				}
				if blk := dxfDoc.GetBlock(ins.BlockName); blk == nil {
					fmt.Fprintf(os.Stderr, "  warning: INSERT references undefined block %q\n", ins.BlockName)
				} else {
					fmt.Fprintf(os.Stderr, "  INSERT -> block %q (%d entities)\n", ins.BlockName, len(blk.Entities))
				}
			}
		}
	}

	if layerFilter != "" {
		if !dxfDoc.HasLayer(layerFilter) {
			fmt.Fprintf(os.Stderr, "warning: layer %q not present in document\n", layerFilter)
		} else if verbose {
			l := dxfDoc.GetLayer(layerFilter)
			fmt.Fprintf(os.Stderr, "  Filtering to layer %q (color %d, linetype %s)\n", l.Name, l.Color, l.LineType)
		}
		dxfDoc.Entities = dxfDoc.FilterByLayer(layerFilter)
	}

	if outputFile != "" {
		if err := dxf.WriteDocumentToFile(dxfDoc, outputFile); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "DXF written to %s\n", outputFile)
		}
		return nil
	}

	fmt.Print(dxf.ToString(dxfDoc))
	return nil
}

// sortedTypeNames returns the keys of a per-type entity count map in
// alphabetical order, so verbose output is stable across runs.
func sortedTypeNames(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Command jwwstats walks a directory of JWW files, converts each to DXF,
// and prints a Markdown report comparing entity counts and optionally
// auditing the resulting DXF with ezdxf and ODA FileConverter.
package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"

	"github.com/hinoki-cad/jww2dxf/dxf"
	"github.com/hinoki-cad/jww2dxf/jww"
)

var (
	odaFlag        bool
	ezdxfAuditFlag bool

	stdout = colorable.NewColorableStdout()

	passMark = color.New(color.FgGreen).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
	warnMark = color.New(color.FgYellow).SprintFunc()
	skipMark = color.New(color.FgHiBlack).SprintFunc()
)

// FileStats holds every metric collected for a single JWW file.
type FileStats struct {
	Name      string
	Version   uint32
	Lines     int
	Arcs      int
	Points    int
	Texts     int
	Solids    int
	Blocks    int
	BlockDefs int
	Unknown   []string
	Error     string

	DXFEntities int
	DXFLayers   int
	DXFBlocks   int

	EzdxfErrors int
	EzdxfFixes  int
	EzdxfStatus string

	EzdxfInfoEntities int
	EzdxfInfoLayers   int
	EzdxfInfoBlocks   int
	EzdxfInfoStatus   string

	ODAWarnings int
	ODAErrors   int
	ODAStatus   string
}

func main() {
	root := &cobra.Command{
		Use:   "jwwstats <dir>",
		Short: "Batch-convert a directory of JWW files and report conversion statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}

	ezdxfAuditDefault := true
	if env.Has("JWW2DXF_EZDXF_AUDIT") {
		ezdxfAuditDefault = env.Bool("JWW2DXF_EZDXF_AUDIT")
	}

	root.Flags().BoolVar(&odaFlag, "oda", false, "also run ODA FileConverter and report its warnings/errors")
	root.Flags().BoolVar(&ezdxfAuditFlag, "ezdxf-audit", ezdxfAuditDefault, "run ezdxf audit/info on each converted file (env: JWW2DXF_EZDXF_AUDIT)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	dir := args[0]

	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() && (filepath.Ext(path) == ".jww" || filepath.Ext(path) == ".JWW") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(files)

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Writer = os.Stderr
	s.Prefix = fmt.Sprintf("Converting %d JWW files... ", len(files))
	s.Start()

	allStats := make([]FileStats, len(files))
	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(idx int, filePath string) {
			defer wg.Done()
			allStats[idx] = parseFile(filePath)
		}(i, file)
	}
	wg.Wait()
	s.Stop()

	printReport(allStats)
	return nil
}

func printReport(allStats []FileStats) {
	var testDataRows [][]string
	for _, st := range allStats {
		errStr := ""
		if st.Error != "" {
			errStr = failMark(st.Error)
		}
		testDataRows = append(testDataRows, []string{
			"`" + filepath.Base(st.Name) + "`",
			fmt.Sprintf("%d", st.Version),
			fmt.Sprintf("%d", st.Lines),
			fmt.Sprintf("%d", st.Arcs),
			fmt.Sprintf("%d", st.Points),
			fmt.Sprintf("%d", st.Texts),
			fmt.Sprintf("%d", st.Solids),
			fmt.Sprintf("%d", st.Blocks),
			fmt.Sprintf("%d", st.BlockDefs),
			errStr,
		})
	}

	fmt.Fprintln(stdout, "## Test Data Matrix")
	fmt.Fprintln(stdout)
	printTable([]string{"File", "Version", "Line", "Arc", "Point", "Text", "Solid", "Block", "BlockDef", "Error"}, testDataRows)

	var dxfRows [][]string
	for _, st := range allStats {
		status := passMark("pass")
		switch {
		case st.Error != "":
			status = skipMark("parse failed")
		}
		jwwTotal := st.Lines + st.Arcs + st.Points + st.Texts + st.Solids + st.Blocks
		diff := st.DXFEntities - jwwTotal
		diffStr := fmt.Sprintf("%+d", diff)
		if diff == 0 {
			diffStr = passMark("0")
		}
		dxfRows = append(dxfRows, []string{
			"`" + filepath.Base(st.Name) + "`",
			fmt.Sprintf("%d", jwwTotal),
			fmt.Sprintf("%d", st.DXFEntities),
			diffStr,
			status,
		})
	}

	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "## DXF Conversion Results (Entity Count Comparison)")
	fmt.Fprintln(stdout)
	printTable([]string{"File", "JWW Entities", "DXF Entities", "Diff", "Status"}, dxfRows)

	if ezdxfAuditFlag {
		var auditRows [][]string
		for _, st := range allStats {
			auditRows = append(auditRows, []string{
				"`" + filepath.Base(st.Name) + "`",
				fmt.Sprintf("%d", st.EzdxfErrors),
				fmt.Sprintf("%d", st.EzdxfFixes),
				st.EzdxfStatus,
			})
		}

		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "## ezdxf Audit Results")
		fmt.Fprintln(stdout)
		printTable([]string{"File", "Errors", "Fixes", "Status"}, auditRows)

		var infoRows [][]string
		for _, st := range allStats {
			infoRows = append(infoRows, []string{
				"`" + filepath.Base(st.Name) + "`",
				fmt.Sprintf("%d", st.EzdxfInfoEntities),
				fmt.Sprintf("%d", st.EzdxfInfoLayers),
				fmt.Sprintf("%d", st.EzdxfInfoBlocks),
				st.EzdxfInfoStatus,
			})
		}

		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "## ezdxf Info Results (DXF File Statistics)")
		fmt.Fprintln(stdout)
		printTable([]string{"File", "Entities", "Layers", "Blocks", "Status"}, infoRows)
	}

	if odaFlag {
		var odaRows [][]string
		for _, st := range allStats {
			odaRows = append(odaRows, []string{
				"`" + filepath.Base(st.Name) + "`",
				fmt.Sprintf("%d", st.ODAWarnings),
				fmt.Sprintf("%d", st.ODAErrors),
				st.ODAStatus,
			})
		}

		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "## ODA FileConverter Results")
		fmt.Fprintln(stdout)
		printTable([]string{"File", "Warnings", "Errors", "Status"}, odaRows)
	}

	unknownMap := make(map[string]int)
	for _, st := range allStats {
		for _, u := range st.Unknown {
			unknownMap[u]++
		}
	}
	if len(unknownMap) > 0 {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "## Unknown/Unclassified Entities")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "| Entity Type | Occurrences |")
		fmt.Fprintln(stdout, "|-------------|-------------|")
		keys := make([]string, 0, len(unknownMap))
		for k := range unknownMap {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(stdout, "| `%s` | %d |\n", k, unknownMap[k])
		}
	}

	printSummary(allStats)
}

func printSummary(allStats []FileStats) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "## Summary")
	fmt.Fprintln(stdout)

	totalFiles := len(allStats)
	successFiles, errorFiles, dxfSuccessFiles := 0, 0, 0
	ezdxfPassFiles, totalEzdxfFixes, odaPassFiles := 0, 0, 0

	for _, st := range allStats {
		if st.Error != "" {
			errorFiles++
			continue
		}
		successFiles++
		dxfSuccessFiles++
		totalEzdxfFixes += st.EzdxfFixes
		if st.EzdxfErrors == 0 {
			ezdxfPassFiles++
		}
		if odaFlag && st.ODAErrors == 0 {
			odaPassFiles++
		}
	}

	fmt.Fprintf(stdout, "- Total files: %d\n", totalFiles)
	fmt.Fprintf(stdout, "- Successfully parsed: %d\n", successFiles)
	fmt.Fprintf(stdout, "- Parse errors: %d\n", errorFiles)
	fmt.Fprintf(stdout, "- Successfully converted to DXF: %d\n", dxfSuccessFiles)
	if ezdxfAuditFlag {
		fmt.Fprintf(stdout, "- ezdxf audit passed (0 errors): %d\n", ezdxfPassFiles)
		fmt.Fprintf(stdout, "- ezdxf total fixes applied: %d\n", totalEzdxfFixes)
	}
	if odaFlag {
		fmt.Fprintf(stdout, "- ODA FileConverter passed (0 errors): %d\n", odaPassFiles)
	}
}

func parseFile(path string) FileStats {
	odaStatus := skipMark("disabled")
	if odaFlag {
		odaStatus = skipMark("skipped")
	}
	stats := FileStats{Name: path, EzdxfStatus: skipMark("skipped"), EzdxfInfoStatus: skipMark("skipped"), ODAStatus: odaStatus}

	doc, err := jww.ReadDocumentFromFile(path)
	if err != nil {
		stats.Error = err.Error()
		return stats
	}

	stats.Version = doc.Version
	stats.BlockDefs = len(doc.BlockDefs)

	counts := jww.EntityCounts(doc.Entities)
	stats.Lines = counts["LINE"]
	stats.Arcs = counts["ARC"] + counts["CIRCLE"]
	stats.Points = counts["POINT"]
	stats.Texts = counts["TEXT"]
	stats.Solids = counts["SOLID"]
	stats.Blocks = counts["BLOCK"]

	for _, e := range doc.Entities {
		switch e.Type() {
		case "LINE", "ARC", "CIRCLE", "POINT", "TEXT", "SOLID", "BLOCK", "DIMENSION":
		default:
			stats.Unknown = append(stats.Unknown, e.Type())
		}
	}

	dxfDoc := dxf.ConvertDocument(doc)
	stats.DXFEntities = len(dxfDoc.Entities)
	stats.DXFLayers = len(dxfDoc.Layers)
	stats.DXFBlocks = len(dxfDoc.Blocks)

	if !ezdxfAuditFlag {
		return stats
	}

	tmpFile, err := os.CreateTemp("", "jwwstats-*.dxf")
	if err != nil {
		stats.EzdxfStatus = failMark("temp file error")
		return stats
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	dxfStr := dxf.ToString(dxfDoc)
	if _, err := tmpFile.WriteString(dxfStr); err != nil {
		tmpFile.Close()
		stats.EzdxfStatus = failMark("write error")
		return stats
	}
	tmpFile.Close()

	errs, fixes, status := runEzdxfAudit(tmpPath)
	stats.EzdxfErrors = errs
	stats.EzdxfFixes = fixes
	stats.EzdxfStatus = status

	runEzdxfInfo(tmpPath, &stats)

	if odaFlag {
		warnings, errs, status := runODAFileConverter(tmpPath)
		stats.ODAWarnings = warnings
		stats.ODAErrors = errs
		stats.ODAStatus = status
	}

	return stats
}

func runEzdxfAudit(dxfPath string) (errs, fixes int, status string) {
	cmd := exec.Command("uvx", "--from", "git+https://github.com/mozman/ezdxf", "ezdxf", "audit", dxfPath)
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	output := stdoutBuf.String() + stderrBuf.String()

	if err != nil && strings.Contains(err.Error(), "executable file not found") {
		return 0, 0, skipMark("ezdxf not available")
	}

	errorsRe := regexp.MustCompile(`Found (\d+) errors`)
	fixesRe := regexp.MustCompile(`applied (\d+) fixes`)
	noErrorsRe := regexp.MustCompile(`No errors found`)

	if noErrorsRe.MatchString(output) {
		return 0, 0, passMark("pass")
	}

	if m := errorsRe.FindStringSubmatch(output); len(m) > 1 {
		fmt.Sscanf(m[1], "%d", &errs)
	}
	if m := fixesRe.FindStringSubmatch(output); len(m) > 1 {
		fmt.Sscanf(m[1], "%d", &fixes)
	}

	if errs == 0 {
		return errs, fixes, passMark("pass")
	}
	return errs, fixes, failMark(fmt.Sprintf("%d errors", errs))
}

func runODAFileConverter(dxfPath string) (warnings, errs int, status string) {
	tmpDir, err := os.MkdirTemp("", "oda-input-*")
	if err != nil {
		return 0, 0, skipMark("temp dir error")
	}
	defer os.RemoveAll(tmpDir)

	outDir, err := os.MkdirTemp("", "oda-output-*")
	if err != nil {
		return 0, 0, skipMark("temp dir error")
	}
	defer os.RemoveAll(outDir)

	dxfContent, err := os.ReadFile(dxfPath)
	if err != nil {
		return 0, 0, skipMark("read error")
	}
	inputPath := filepath.Join(tmpDir, "input.dxf")
	if err := os.WriteFile(inputPath, dxfContent, 0o644); err != nil {
		return 0, 0, skipMark("write error")
	}

	cmd := exec.Command("ODAFileConverter", tmpDir, outDir, "ACAD2018", "DWG", "0", "1")
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err = cmd.Run()
	if err != nil && strings.Contains(err.Error(), "executable file not found") {
		return 0, 0, skipMark("ODA not available")
	}

	errFiles, _ := filepath.Glob(filepath.Join(outDir, "*.err"))
	if len(errFiles) == 0 {
		dwgFiles, _ := filepath.Glob(filepath.Join(outDir, "*.dwg"))
		if len(dwgFiles) > 0 {
			return 0, 0, passMark("pass")
		}
		return 0, 1, failMark("no output")
	}

	errContent, _ := os.ReadFile(errFiles[0])
	for _, line := range strings.Split(string(errContent), "\n") {
		if strings.Contains(line, "ODA Warning:") {
			warnings++
		}
		if strings.Contains(line, "OdError") || strings.Contains(line, "ODA Error:") {
			errs++
		}
	}

	if errs > 0 {
		return warnings, errs, failMark(fmt.Sprintf("%d errors", errs))
	}
	if warnings > 0 {
		return warnings, errs, warnMark(fmt.Sprintf("%d warnings", warnings))
	}
	return 0, 0, passMark("pass")
}

func runEzdxfInfo(dxfPath string, stats *FileStats) {
	cmd := exec.Command("uvx", "--from", "git+https://github.com/mozman/ezdxf", "ezdxf", "info", "-s", dxfPath)
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	output := stdoutBuf.String() + stderrBuf.String()

	if err != nil && strings.Contains(err.Error(), "executable file not found") {
		stats.EzdxfInfoStatus = skipMark("ezdxf not available")
		return
	}

	entitiesRe := regexp.MustCompile(`Entities in modelspace:\s*(\d+)`)
	if m := entitiesRe.FindStringSubmatch(output); len(m) > 1 {
		fmt.Sscanf(m[1], "%d", &stats.EzdxfInfoEntities)
	}

	layersRe := regexp.MustCompile(`LAYER table entries:\s*(\d+)`)
	if m := layersRe.FindStringSubmatch(output); len(m) > 1 {
		fmt.Sscanf(m[1], "%d", &stats.EzdxfInfoLayers)
	}

	blocksRe := regexp.MustCompile(`BLOCK_RECORD table entries:\s*(\d+)`)
	if m := blocksRe.FindStringSubmatch(output); len(m) > 1 {
		fmt.Sscanf(m[1], "%d", &stats.EzdxfInfoBlocks)
	}

	stats.EzdxfInfoStatus = passMark("pass")
}

// printTable prints a Markdown table with columns aligned by rune width,
// so wide (CJK) characters in file names don't skew the layout.
func printTable(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runeWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := runeWidth(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	fmt.Fprint(stdout, "|")
	for i, h := range headers {
		fmt.Fprintf(stdout, " %-*s |", widths[i]-runeWidth(h)+len(h), h)
	}
	fmt.Fprintln(stdout)

	fmt.Fprint(stdout, "|")
	for _, w := range widths {
		fmt.Fprint(stdout, strings.Repeat("-", w+2)+"|")
	}
	fmt.Fprintln(stdout)

	for _, row := range rows {
		fmt.Fprint(stdout, "|")
		for i, cell := range row {
			if i < len(widths) {
				padding := widths[i] - runeWidth(cell) + len(cell)
				fmt.Fprintf(stdout, " %-*s |", padding, cell)
			}
		}
		fmt.Fprintln(stdout)
	}
}

// runeWidth returns the display width of s, accounting for wide (CJK,
// emoji) runes that occupy two terminal columns.
func runeWidth(s string) int {
	width := 0
	for _, r := range s {
		if r >= 0x1100 && (r <= 0x115F ||
			r == 0x2329 || r == 0x232A ||
			(r >= 0x2E80 && r <= 0xA4CF && r != 0x303F) ||
			(r >= 0xAC00 && r <= 0xD7A3) ||
			(r >= 0xF900 && r <= 0xFAFF) ||
			(r >= 0xFE10 && r <= 0xFE19) ||
			(r >= 0xFE30 && r <= 0xFE6F) ||
			(r >= 0xFF00 && r <= 0xFF60) ||
			(r >= 0xFFE0 && r <= 0xFFE6) ||
			(r >= 0x1F300 && r <= 0x1F9FF) ||
			(r >= 0x20000 && r <= 0x2FFFF)) {
			width += 2
		} else {
			width++
		}
	}
	return width
}

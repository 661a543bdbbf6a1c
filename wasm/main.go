//go:build js && wasm

// Package main provides WebAssembly exports for JWW parsing and DXF
// conversion, including the explode pipeline and block-reference
// validation.
package main

import (
	"bytes"
	"encoding/json"
	"syscall/js"

	"github.com/hinoki-cad/jww2dxf/dxf"
	"github.com/hinoki-cad/jww2dxf/jww"
)

// Version of the jww2dxf WASM module
const Version = "0.2.0"

// debugMode controls verbose logging
var debugMode bool

func main() {
	js.Global().Set("jwwParse", js.FuncOf(jwwParse))
	js.Global().Set("jwwValidate", js.FuncOf(jwwValidate))
	js.Global().Set("jwwEntityCounts", js.FuncOf(jwwEntityCounts))
	js.Global().Set("jwwToDxfString", js.FuncOf(jwwToDxfString))
	js.Global().Set("jwwGetVersion", js.FuncOf(jwwGetVersion))
	js.Global().Set("jwwSetDebug", js.FuncOf(jwwSetDebug))

	// Keep the program running
	<-make(chan struct{})
}

// jwwGetVersion returns the WASM module version.
// JS: jwwGetVersion() -> string
func jwwGetVersion(this js.Value, args []js.Value) interface{} {
	return Version
}

// jwwSetDebug enables or disables debug mode.
// JS: jwwSetDebug(enabled: boolean) -> void
func jwwSetDebug(this js.Value, args []js.Value) interface{} {
	if len(args) >= 1 {
		debugMode = args[0].Bool()
		if debugMode {
			logDebug("Debug mode enabled")
		}
	}
	return nil
}

// logDebug logs a message if debug mode is enabled.
func logDebug(format string, args ...interface{}) {
	if debugMode {
		console := js.Global().Get("console")
		if len(args) == 0 {
			console.Call("log", "[jww2dxf] "+format)
		} else {
			// Simple formatting
			console.Call("log", "[jww2dxf] "+format, args)
		}
	}
}

// parseArg decodes the shared first argument of every export: a Uint8Array
// holding the raw JWW file bytes.
func parseArg(args []js.Value) (*jww.Document, string) {
	if len(args) < 1 {
		return nil, "first argument must be a Uint8Array of JWW bytes"
	}
	data := jsArrayToBytes(args[0])
	logDebug("Received %d bytes", len(data))

	doc, err := jww.Parse(bytes.NewReader(data))
	if err != nil {
		logDebug("Parse error: %v", err.Error())
		return nil, "parse error: " + err.Error()
	}
	logDebug("Parsed document with %d entities, %d block defs", len(doc.Entities), len(doc.BlockDefs))
	return doc, ""
}

// convertOptionsArg decodes an optional JS options object
// ({explode: boolean, maxBlockNesting: number}) into ConvertOptions,
// falling back to the defaults for anything missing.
func convertOptionsArg(args []js.Value, idx int) dxf.ConvertOptions {
	options := dxf.DefaultConvertOptions()
	if len(args) <= idx || args[idx].Type() != js.TypeObject {
		return options
	}
	obj := args[idx]
	if v := obj.Get("explode"); v.Type() == js.TypeBoolean {
		options.ExplodeInserts = v.Bool()
	}
	if v := obj.Get("maxBlockNesting"); v.Type() == js.TypeNumber && v.Int() > 0 {
		options.MaxBlockNesting = v.Int()
	}
	return options
}

// jwwParse parses JWW binary data and returns JSON representation.
// JS: jwwParse(Uint8Array) -> { ok: boolean, data?: string, error?: string }
func jwwParse(this js.Value, args []js.Value) interface{} {
	logDebug("Starting parse operation")

	doc, errMsg := parseArg(args)
	if errMsg != "" {
		return makeError(errMsg)
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return makeError("JSON marshal error: " + err.Error())
	}

	logDebug("Generated %d bytes of JSON", len(jsonData))
	return makeResult(string(jsonData))
}

// jwwValidate parses JWW binary data and reports how its block references
// resolve against the block-definition table.
// JS: jwwValidate(Uint8Array) -> { ok: boolean, data?: string, error?: string }
// where data is JSON {total, resolved, unresolved: number[], hasUnresolved}.
func jwwValidate(this js.Value, args []js.Value) interface{} {
	logDebug("Starting block-reference validation")

	doc, errMsg := parseArg(args)
	if errMsg != "" {
		return makeError(errMsg)
	}

	report := jww.ValidateBlockReferences(doc)
	unresolved := report.UnresolvedDefNumbers
	if unresolved == nil {
		unresolved = []uint32{}
	}
	jsonData, err := json.Marshal(map[string]interface{}{
		"total":         report.TotalReferences,
		"resolved":      report.ResolvedReferences,
		"unresolved":    unresolved,
		"hasUnresolved": report.HasUnresolved(),
	})
	if err != nil {
		return makeError("JSON marshal error: " + err.Error())
	}

	logDebug("Validated %d references, %d unresolved", report.TotalReferences, len(unresolved))
	return makeResult(string(jsonData))
}

// jwwEntityCounts parses JWW binary data and returns per-type entity counts.
// JS: jwwEntityCounts(Uint8Array) -> { ok: boolean, data?: string, error?: string }
// where data is JSON mapping type names ("LINE", "ARC", ...) to counts.
func jwwEntityCounts(this js.Value, args []js.Value) interface{} {
	logDebug("Starting entity count")

	doc, errMsg := parseArg(args)
	if errMsg != "" {
		return makeError(errMsg)
	}

	jsonData, err := json.Marshal(jww.EntityCounts(doc.Entities))
	if err != nil {
		return makeError("JSON marshal error: " + err.Error())
	}
	return makeResult(string(jsonData))
}

// jwwToDxfString parses JWW binary data and returns DXF file content as a
// string. An optional second argument configures the conversion.
// JS: jwwToDxfString(Uint8Array, options?: {explode?: boolean, maxBlockNesting?: number})
//
//	-> { ok: boolean, data?: string, error?: string }
func jwwToDxfString(this js.Value, args []js.Value) interface{} {
	logDebug("Starting DXF string generation")

	doc, errMsg := parseArg(args)
	if errMsg != "" {
		return makeError(errMsg)
	}

	options := convertOptionsArg(args, 1)
	logDebug("Converting with explode=%v maxBlockNesting=%d", options.ExplodeInserts, options.MaxBlockNesting)

	dxfDoc := dxf.ConvertDocumentWithOptions(doc, options)
	logDebug("Converted to DXF with %d entities, %d diagnostics", len(dxfDoc.Entities), len(dxfDoc.UnsupportedEntities))

	dxfString := dxf.ToString(dxfDoc)
	logDebug("Generated %d bytes of DXF string", len(dxfString))

	return makeResult(dxfString)
}

// jsArrayToBytes converts a JavaScript Uint8Array to Go []byte.
func jsArrayToBytes(arr js.Value) []byte {
	length := arr.Length()
	data := make([]byte, length)
	js.CopyBytesToGo(data, arr)
	return data
}

// makeResult creates a successful result object.
func makeResult(data string) map[string]interface{} {
	return map[string]interface{}{
		"ok":   true,
		"data": data,
	}
}

// makeError creates an error result object.
func makeError(message string) map[string]interface{} {
	logDebug("Error: %s", message)
	return map[string]interface{}{
		"ok":    false,
		"error": message,
	}
}

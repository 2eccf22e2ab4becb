//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"livingroom/internal/parser"
)

// parseJS tokenizes its first argument and returns the JSON encoding, or
// null when the input cannot be tokenized.
func parseJS(this js.Value, args []js.Value) (result any) {
	defer func() {
		if r := recover(); r != nil {
			js.Global().Get("console").Call("error", "panic in livingroomParse:", fmt.Sprint(r))
			result = js.Null()
		}
	}()

	if len(args) < 1 || args[0].Type() != js.TypeString {
		return js.Null()
	}

	out, err := parser.ParseToJSON(args[0].String())
	if err != nil {
		return js.Null()
	}
	return out
}

func main() {
	done := make(chan struct{})

	js.Global().Set("livingroomParse", js.FuncOf(parseJS))
	js.Global().Set("livingroomWasmVersion", "v0.1.0")

	fmt.Println("livingroom lexer ready")

	<-done
}

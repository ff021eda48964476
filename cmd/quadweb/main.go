//go:build js && wasm

// Command quadweb draws the cell program on the page's "board" canvas.
//
// Build with:
//
//	GOOS=js GOARCH=wasm go build -o quad.wasm ./cmd/quadweb
package main

import (
	"log/slog"
	"os"

	"github.com/gogpu/quad"
	"github.com/gogpu/quad/web"
)

func main() {
	quad.SetLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	if err := web.Init(quad.DefaultCanvasID); err != nil {
		quad.Logger().Error("quadweb: init failed", "error", err)
	}
}

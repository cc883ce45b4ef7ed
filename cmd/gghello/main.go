// Command gghello opens a window and draws a grid with two centered squares.
package main

import (
	"log/slog"
	"os"

	"github.com/gogpu/gghello"
	_ "github.com/gogpu/gghello/backend/raster"
)

func main() {
	gghello.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
	log := gghello.Logger()

	app, err := gghello.New()
	if err != nil {
		log.Error("gghello: config", "err", err)
		return
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn("gghello: close", "err", err)
		}
	}()

	if err := app.Initialize(); err != nil {
		log.Error("gghello: initialize", "err", err)
		return
	}
	code := app.Run()
	log.Info("gghello: exit", "code", code)
}

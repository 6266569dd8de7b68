// Command nesdeck runs the NES CPU/bus emulator core.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"

	"nesdeck/internal/bus"
	"nesdeck/internal/cartridge"
	"nesdeck/internal/host"
)

func main() {
	romFile := flag.String("rom", "", "path to an iNES (.nes) ROM file")
	configFile := flag.String("config", "./config/nesdeck.json", "path to the JSON configuration file")
	headless := flag.Bool("headless", false, "run without a display, for a fixed number of frames")
	frames := flag.Int("frames", 60, "frame count to run in -headless mode")
	flag.Parse()

	if *romFile == "" {
		fmt.Fprintln(os.Stderr, "nesdeck: -rom is required")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := host.NewConfig()
	if err := cfg.LoadFromFile(*configFile); err != nil {
		log.Fatalf("config: %v", err)
	}

	cart, err := cartridge.LoadFromFile(*romFile)
	if err != nil {
		log.Fatalf("loading %s: %v", *romFile, err)
	}

	setupGracefulShutdown()

	b := bus.New()
	b.LoadCartridge(cart)
	b.Reset()

	if *headless {
		runHeadless(b, *frames)
		return
	}

	window := host.NewDiagnosticWindow(b, cfg)
	width, height := cfg.WindowSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("nesdeck")
	if err := ebiten.RunGame(window); err != nil {
		log.Fatalf("display: %v", err)
	}
}

// runHeadless drives the bus for a fixed number of frames without opening a
// display window, logging the final CPU state and halting cause if any.
func runHeadless(b *bus.Bus, frameCount int) {
	for i := 0; i < frameCount; i++ {
		if err := b.Frame(); err != nil {
			bus.LogIllegalOpcode(err)
			break
		}
	}
	state := b.GetCPUState()
	log.Printf("ran %d frames: pc=%04X a=%02X x=%02X y=%02X cycles=%d",
		frameCount, state.PC, state.A, state.X, state.Y, state.Cycles)
}

func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Println("interrupt received, shutting down")
		os.Exit(0)
	}()
}

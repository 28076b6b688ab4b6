// Command whacamole runs the appliance control core with a simulated
// front panel. The remote link is the process's stdin/stdout (or a
// serial device/PTY given in the config): incoming bytes feed the
// command dispatcher, outgoing JSON event lines go to the wire.
//
// When stdin is a terminal it switches to raw mode and the home-row keys
// a s d f j k l ; press the eight simulated buttons; every other byte is
// treated as a wire command (P R S 1-8 I D).
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	whacamole "github.com/darragh0/emb-whacamole"
	"github.com/darragh0/emb-whacamole/internal/appcfg"
	"github.com/darragh0/emb-whacamole/internal/bridge"
	"github.com/darragh0/emb-whacamole/internal/device"
	"github.com/darragh0/emb-whacamole/internal/game"
	"github.com/darragh0/emb-whacamole/internal/hal"
)

// Home-row keys -> logical buttons 0..7.
var panelKeys = map[byte]int{
	'a': 0, 's': 1, 'd': 2, 'f': 3,
	'j': 4, 'k': 5, 'l': 6, ';': 7,
}

const keyHold = 150 * time.Millisecond

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := appcfg.Load(*configPath)
	if err != nil {
		log.Fatalf("whacamole: %v", err)
	}

	idFn := device.ID
	if cfg.DeviceID != "" {
		id := cfg.DeviceID
		idFn = func() (string, error) { return id, nil }
	}

	var (
		wireIn  io.Reader = os.Stdin
		wireOut io.Writer = os.Stdout
	)
	interactive := false
	if cfg.Wire != "" {
		f, err := os.OpenFile(cfg.Wire, os.O_RDWR, 0)
		if err != nil {
			log.Fatalf("whacamole: open wire %s: %v", cfg.Wire, err)
		}
		defer f.Close()
		wireIn, wireOut = f, f
	} else if enterRawTerm() {
		defer exitRawTerm()
		interactive = true
	}

	board := hal.NewMemBoard()
	if cfg.Panel && interactive {
		board.OnWrite = renderPanel
	}

	link := &whacamole.LinkState{}
	pauser := whacamole.NewPauser()
	disp := whacamole.NewDispatcher(link, pauser)
	events := make(chan whacamole.Event, whacamole.EventQueueLen)

	ctrl := game.New(board, disp.Commands(), events, game.WithPauser(pauser))
	pub := bridge.New(events, link, wireOut, idFn)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		pauser.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		if err := ctrl.Run(ctx); err != nil {
			log.Printf("whacamole: controller: %v", err)
		}
		cancel()
	}()
	go func() {
		defer wg.Done()
		pub.Run(ctx)
	}()

	go readWire(ctx, wireIn, board, disp, interactive, cancel)

	log.Printf("whacamole: running (wire=%s)", wireName(cfg.Wire))
	wg.Wait()
}

func wireName(path string) string {
	if path == "" {
		return "stdio"
	}
	return path
}

// readWire is the "interrupt context": it classifies each received byte
// and must never block, so per-byte work is limited to non-blocking
// dispatch and front-panel presses.
func readWire(ctx context.Context, r io.Reader, board *hal.MemBoard, disp *whacamole.Dispatcher, interactive bool, cancel context.CancelFunc) {
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		if err != nil {
			cancel()
			return
		}
		for _, b := range buf[:n] {
			if interactive && (b == 0x03 || b == 'q') { // ^C / q quits the console
				cancel()
				return
			}
			if btn, ok := panelKeys[b]; ok && interactive {
				board.Press(btn)
				time.AfterFunc(keyHold, func() { board.Release(btn) })
				continue
			}
			disp.Dispatch(b)
		}
		if ctx.Err() != nil {
			return
		}
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"MyLocalPaint/internal/config"
	lnet "MyLocalPaint/internal/net"
	"MyLocalPaint/internal/state"
	"MyLocalPaint/internal/ui"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const browseTimeout = 3 * time.Second

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	a := app.NewWithID(config.AppID)
	cfg := config.Load(a.Preferences())

	icons, err := ui.DefaultIcons(cfg.IconSize)
	if err != nil {
		log.Fatalf("Failed to load tool icons: %v", err)
	}

	args := os.Args
	if len(args) > 1 && config.IsLink(args[1]) {
		runViewer(a, cfg, icons, args[1])
	} else {
		runHost(a, cfg, icons)
	}
}

func runHost(a fyne.App, cfg config.Config, icons map[state.ToolKind]fyne.Resource) {
	log.Println("Starting as HOST")
	ctrl := state.NewController(cfg.CanvasWidth, cfg.CanvasHeight)
	shell := ui.NewShell(a, cfg, ctrl, icons, false)

	if cfg.Share {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		hub := lnet.NewHub(ctrl.Checkpoint, fyne.DoAndWait)
		ctrl.OnOp = hub.Broadcast
		go func() {
			if err := lnet.Serve(ctx, cfg.Port, hub); err != nil {
				log.Printf("[HOST] %v", err)
				shell.PostStatus(fmt.Sprintf("Sharing unavailable: %v", err))
			}
		}()

		if adv, err := lnet.Advertise(cfg.ServiceType, cfg.Port); err != nil {
			log.Printf("[HOST] %v", err)
		} else {
			defer adv.Close()
		}
		shell.SetStatus("Share link: " + cfg.ShareLink(lnet.OutgoingIP()))
	}

	shell.ShowAndRun()
}

func runViewer(a fyne.App, cfg config.Config, icons map[state.ToolKind]fyne.Resource, link string) {
	log.Println("Starting as VIEWER")
	address, err := config.ParseLink(link)
	if err != nil {
		log.Fatalf("Cannot join: %v", err)
	}

	ctrl := state.NewController(cfg.CanvasWidth, cfg.CanvasHeight)
	shell := ui.NewShell(a, cfg, ctrl, icons, true)
	shell.SetStatus("Connecting...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go connectToHost(ctx, cfg, address, ctrl, shell)

	shell.ShowAndRun()
}

func connectToHost(ctx context.Context, cfg config.Config, address string, ctrl *state.Controller, shell *ui.Shell) {
	if address == "" {
		found, err := lnet.Browse(ctx, cfg.ServiceType, browseTimeout)
		if err != nil {
			shell.PostStatus(fmt.Sprintf("No host found: %v", err))
			return
		}
		address = found
	}

	client, err := lnet.Dial(ctx, address)
	if err != nil {
		shell.PostStatus(fmt.Sprintf("Connection failed: %v", err))
		return
	}
	defer client.Close()
	log.Println("Viewer connected successfully as", client.LocalAddr())
	shell.PostStatus("Watching " + address)

	err = client.Run(ctx, func(f lnet.Frame) {
		fyne.Do(func() {
			if err := f.Apply(ctrl); err != nil {
				log.Printf("[VIEWER] Dropping %s frame: %v", f.Type, err)
			}
		})
	})
	if err != nil {
		shell.PostStatus(fmt.Sprintf("Disconnected from host: %v", err))
	}
}

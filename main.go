package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"zombierun/api"
	"zombierun/client"
	"zombierun/game"
	"zombierun/geo"
	"zombierun/utils"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Llongfile)

	configPath := flag.String("config", "config.toml", "path to the client config")
	flag.Parse()

	cfg, err := utils.ReadTOML(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("%+v", cfg)

	resolution := cfg.UI.Resolution
	ebiten.SetWindowSize(resolution.X, resolution.Y)
	ebiten.SetWindowTitle("Zombie, Run!")

	ui := client.NewGame(resolution.X, resolution.Y)
	messages := game.NewQueue(ui.MessageSurface())
	engine := game.NewEngine(
		api.NewClient(cfg.Server.BaseURL, cfg.Game.ID),
		api.NewGeocoder(),
		ui.Surface(),
		messages,
		game.DefaultRegistry(),
		cfg.Game.Debug,
	)

	provider := geo.NewProvider(geo.NewBridge(cfg.Bridge.Addr))
	ui.OnFortify = engine.Fortify
	ui.OnAddFriend = engine.PromptAddFriend

	interval := time.Duration(cfg.Sync.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	started := engine.Start(interval, provider)
	if started {
		messages.Show(game.NewWaitingForFirstFixMessage())
	} else {
		log.Printf("no location provider available; location-driven sync disabled")
	}

	if cfg.Game.Debug {
		ui.OnDebugLocation = func() {
			provider.StartDebuggingLocation(ui.Surface())
			if !started {
				started = engine.Start(interval, provider)
			}
		}
	}

	if err := ebiten.RunGame(ui); err != nil {
		log.Fatal(err)
	}
}

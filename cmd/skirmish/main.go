// cmd/skirmish/main.go
// Headless skirmish: two scripted ships fly at each other and trade fire
// until one team is eliminated, rendered as a top-down ASCII view.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opd-ai/go-dogfight/pkg/config"
	"github.com/opd-ai/go-dogfight/pkg/engine"
	"github.com/opd-ai/go-dogfight/pkg/flight"
	"github.com/opd-ai/go-dogfight/pkg/physics"
	"github.com/opd-ai/go-dogfight/pkg/render"
)

func main() {
	configPath := flag.String("config", "", "Path to a JSON match config (defaults built in)")
	frameRate := flag.Int("fps", 20, "Render frames per second")
	flag.Parse()

	cfg := loadConfig(*configPath)
	game := engine.NewGame(cfg)

	redID, blueID := spawnCombatants(game)
	game.Start()

	renderer := render.NewTerminalRenderer(72, 28, 12)
	renderer.Follow(redID)

	ticker := time.NewTicker(time.Second / time.Duration(*frameRate))
	defer ticker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-quit:
			log.Println("interrupted")
			return
		case <-ticker.C:
			driveShips(game, redID, blueID)
			game.Update()

			state := game.GetGameState()
			renderer.Render(state)

			if state.Status == engine.GameStatusEnded {
				log.Printf("match over, winning team %d after %.1fs", state.WinningTeam, state.ElapsedTime)
				return
			}
		}
	}
}

func loadConfig(path string) *config.GameConfig {
	if path == "" {
		return config.DefaultConfig()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	return cfg
}

// spawnCombatants places one interceptor per team, nose to nose.
func spawnCombatants(game *engine.Game) (uint64, uint64) {
	redID, err := game.AddShip("Red One", 0, "Interceptor", flight.Pose{
		Position:    physics.Vector3{X: -400, Y: 200},
		Orientation: physics.LookRotation(physics.Vector3{X: 1}, physics.Up),
	})
	if err != nil {
		log.Fatalf("spawn red: %v", err)
	}

	blueID, err := game.AddShip("Blue One", 1, "Interceptor", flight.Pose{
		Position:    physics.Vector3{X: 400, Y: 200},
		Orientation: physics.LookRotation(physics.Vector3{X: -1}, physics.Up),
	})
	if err != nil {
		log.Fatalf("spawn blue: %v", err)
	}

	return redID, blueID
}

// driveShips runs a crude pursuit script: full throttle, steer toward the
// opponent, fire everything that will fire.
func driveShips(game *engine.Game, redID, blueID uint64) {
	steerAt(game, redID, blueID)
	steerAt(game, blueID, redID)
}

func steerAt(game *engine.Game, shipID, targetID uint64) {
	ship, ok := game.GetShip(shipID)
	if !ok {
		return
	}
	target, ok := game.GetShip(targetID)
	if !ok {
		// Nobody left to chase; fly straight.
		game.SetShipInput(shipID, flight.ControlInput{Throttle: 1})
		return
	}

	pose := ship.Pose()
	toTarget := target.GetPosition().Sub(pose.Position).Normalize()

	// Project the pursuit direction onto the ship's local axes to get
	// proportional pitch/yaw commands.
	pitch := physics.Clamp(toTarget.Dot(pose.Orientation.Up)*3, -1, 1)
	yaw := physics.Clamp(toTarget.Dot(pose.Orientation.Right)*3, -1, 1)

	game.SetShipInput(shipID, flight.ControlInput{
		Pitch:    pitch,
		Yaw:      yaw,
		Throttle: 1,
	})

	for i := range ship.Weapons {
		game.FireWeapon(shipID, i)
	}
}

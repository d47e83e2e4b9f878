package tenkai

import (
	"math"
	"math/rand/v2"
	"time"
)

// Character animation names.
const (
	AnimWalkNorth = "walknorth"
	AnimWalkSouth = "walksouth"
	AnimWalkWest  = "walkwest"
	AnimWalkEast  = "walkeast"
	AnimJump      = "jump"
	AnimFloatEast = "floateast"

	AnimBlinkSouth = "blinksouth"
	AnimBlinkWest  = "blinkwest"
	AnimBlinkEast  = "blinkeast"
)

// OverlayName is the name of a Character's overlay child.
const OverlayName = "overlay"

// Character sheet layout: one 48x96 cell per pose, rows facing
// south, north, west, east.
const (
	CharacterTileWidth  = 48
	CharacterTileHeight = 96
)

// Sheet rows of a character sheet.
const (
	rowSouth = 0
	rowNorth = 1
	rowWest  = 2
	rowEast  = 3
)

// Character is a Mob preset for 48x96 character sheets: walk, jump and float
// animations on the body plus an overlay child (eyes) that blinks.
type Character struct {
	*Mob
	Overlay *Mob
}

// CharacterConfig configures NewCharacter.
type CharacterConfig struct {
	// Asset is the body sheet; OverlayAsset the eyes sheet (same layout).
	// A nil OverlayAsset reuses Asset.
	Asset        Image
	OverlayAsset Image

	// X and Y default to 128; set Placed to use 0.
	X, Y   float64
	Placed bool
	Z      int

	// Seed drives the blink pauses. Zero picks a random seed.
	Seed uint64

	Scheduler *Scheduler
}

// NewCharacter builds a character facing east at tile (1, 3).
func NewCharacter(cfg CharacterConfig) *Character {
	x, y := cfg.X, cfg.Y
	if !cfg.Placed {
		if x == 0 {
			x = 128
		}
		if y == 0 {
			y = 128
		}
	}
	overlayAsset := cfg.OverlayAsset
	if overlayAsset == nil {
		overlayAsset = cfg.Asset
	}

	body := NewMob(EntityConfig{
		Asset:      cfg.Asset,
		TileWidth:  CharacterTileWidth,
		TileHeight: CharacterTileHeight,
		Tile:       TileAt(1, rowEast),
		X:          x,
		Y:          y,
		Z:          cfg.Z,
		HotspotX:   CharacterTileWidth / 2,
		HotspotY:   CharacterTileHeight,
		Scheduler:  cfg.Scheduler,
	})
	addBodyAnimations(body)

	overlay := NewMob(EntityConfig{
		Asset:      overlayAsset,
		TileWidth:  CharacterTileWidth,
		TileHeight: CharacterTileHeight,
		Tile:       TileAt(1, rowEast),
		Scheduler:  body.Scheduler(),
	})
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	addBlinkAnimations(overlay, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
	body.AddEntity(OverlayName, overlay)

	return &Character{Mob: body, Overlay: overlay}
}

// Walk plays the walk cycle for the sheet row facing dir ("north", "south",
// "west", "east") steps times, leaving the character standing.
func (c *Character) Walk(dir string, steps int, onStop func(*Entity, StopStatus)) error {
	loop := steps - 1
	if steps <= 0 {
		loop = LoopForever
	}
	return c.AnimateStart(AnimationOptions{
		Name:     "walk" + dir,
		Delay:    frameDelay,
		Loop:     loop,
		StopTile: TileAt(1, facingRow(dir)),
		OnStop:   onStop,
	})
}

// Blink starts the overlay blinking toward dir until replaced or stopped.
// North has no eyes to blink and returns a *NotFoundError.
func (c *Character) Blink(dir string) error {
	return c.Overlay.AnimateStart(AnimationOptions{
		Name: "blink" + dir,
		Loop: LoopForever,
	})
}

func facingRow(dir string) int {
	switch dir {
	case "north":
		return rowNorth
	case "west":
		return rowWest
	case "east":
		return rowEast
	default:
		return rowSouth
	}
}

const frameDelay = 120 * time.Millisecond

func addBodyAnimations(m *Mob) {
	walk := func(row int) []Frame {
		return []Frame{
			NewFrame(0, row).Wait(frameDelay),
			NewFrame(1, row).Wait(frameDelay),
			NewFrame(2, row).Wait(frameDelay),
			NewFrame(1, row).Wait(frameDelay),
		}
	}
	m.AddAnimation(AnimWalkNorth, walk(rowNorth))
	m.AddAnimation(AnimWalkSouth, walk(rowSouth))

	side := func(row int, dx float64) []Frame {
		return []Frame{
			NewFrame(2, row).Wait(frameDelay).Move(dx, 2),
			NewFrame(1, row).Wait(frameDelay).Move(dx, -2),
			NewFrame(0, row).Wait(frameDelay).Move(dx, 2),
			NewFrame(1, row).Wait(frameDelay).Move(dx, -2),
		}
	}
	m.AddAnimation(AnimWalkWest, side(rowWest, -8))
	m.AddAnimation(AnimWalkEast, side(rowEast, 8))

	const jumpDelay = 50 * time.Millisecond
	m.AddAnimation(AnimJump, []Frame{
		NewFrame(1, 0).Wait(jumpDelay).MoveY(-10),
		NewFrame(0, 0).Wait(jumpDelay).MoveY(-10),
		NewFrame(0, 0).Wait(jumpDelay).MoveY(-10),
		NewFrame(0, 0).Wait(jumpDelay).MoveY(10),
		NewFrame(0, 0).Wait(jumpDelay).MoveY(10),
		NewFrame(1, 0).Wait(jumpDelay).MoveY(10),
	})

	floating := make([]Frame, 32)
	for i := range floating {
		floating[i] = NewFrame(2, rowEast).Wait(jumpDelay).Move(0, math.Round(math.Cos(float64(i))*3))
	}
	m.AddAnimation(AnimFloatEast, floating)
}

func addBlinkAnimations(m *Mob, rng *rand.Rand) {
	blink := func(row int) []Frame {
		pause := 4000*time.Millisecond + time.Duration(rng.Float64()*2000)*time.Millisecond
		return []Frame{
			NewFrame(3, row).Wait(150 * time.Millisecond),
			BlankFrame().Wait(pause),
		}
	}
	m.AddAnimation(AnimBlinkSouth, blink(rowSouth))
	m.AddAnimation(AnimBlinkWest, blink(rowWest))
	m.AddAnimation(AnimBlinkEast, blink(rowEast))
}

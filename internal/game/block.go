// Package game implements the block stacking simulation: spawning, oscillation,
// overlap-based stacking, scoring, camera follow and the session state machine.
// It has no terminal or network dependencies; drawing goes through a
// surface.Surface and score reporting through a ScoreReporter.
package game

import (
	"github.com/vovakirdan/stack-top/internal/config"
	"github.com/vovakirdan/stack-top/internal/core"
	"github.com/vovakirdan/stack-top/internal/surface"
)

// Block is a single slab in the stack, either settled or moving.
type Block struct {
	X, Y      float64 // Center in world space; smaller Y is higher up the stack
	Width     float64
	Direction int     // +1 moves right, -1 moves left
	Speed     float64 // Units per second; 0 for settled blocks

	handle surface.Handle
}

// Span returns the horizontal footprint of the block.
func (b *Block) Span() core.Span {
	return core.SpanAround(b.X, b.Width)
}

// Settled reports whether the block is part of the stack.
func (b *Block) Settled() bool {
	return b.Speed == 0
}

// Params holds the physical constants of a game.
type Params struct {
	GameWidth         float64
	BlockHeight       float64
	InitialBlockWidth float64
	BaseOffset        float64
	MinSpeed          float64
	MaxSpeed          float64
	DecayBase         float64
	PruneMargin       float64
}

// ParamsFromConfig extracts simulation parameters from the game config.
func ParamsFromConfig(cfg config.StackConfig) Params {
	return Params{
		GameWidth:         cfg.World.Width,
		BlockHeight:       cfg.World.BlockHeight,
		InitialBlockWidth: cfg.World.InitialBlockWidth,
		BaseOffset:        cfg.World.BaseOffset,
		MinSpeed:          cfg.Physics.MinSpeed,
		MaxSpeed:          cfg.Physics.MaxSpeed,
		DecayBase:         cfg.Camera.DecayBase,
		PruneMargin:       cfg.Camera.PruneMargin,
	}
}

// DefaultParams returns the parameters of the default configuration.
func DefaultParams() Params {
	return ParamsFromConfig(config.DefaultStackConfig())
}

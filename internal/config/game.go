package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/vancomm/sweeper/internal/mines"
)

// Game holds the board used when a client leaves parameters out and the
// largest board the server will create.
type Game struct {
	Defaults  mines.GameParams
	MaxWidth  int
	MaxHeight int
}

func NewGame(v *viper.Viper) (*Game, error) {
	g := &Game{
		Defaults: mines.GameParams{
			Width:     v.GetInt("game.width"),
			Height:    v.GetInt("game.height"),
			MineCount: v.GetInt("game.mine_count"),
		},
		MaxWidth:  v.GetInt("game.max_width"),
		MaxHeight: v.GetInt("game.max_height"),
	}
	if err := g.Defaults.Validate(); err != nil {
		return nil, fmt.Errorf("invalid default game: %w", err)
	}
	if err := g.Check(g.Defaults); err != nil {
		return nil, fmt.Errorf("invalid default game: %w", err)
	}
	return g, nil
}

// Check validates p and enforces the size limits.
func (g *Game) Check(p mines.GameParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Width > g.MaxWidth || p.Height > g.MaxHeight {
		return fmt.Errorf(
			"%w: board %dx%d exceeds %dx%d",
			mines.ErrInvalidParams, p.Width, p.Height, g.MaxWidth, g.MaxHeight,
		)
	}
	return nil
}

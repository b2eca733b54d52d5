package breakout

import "github.com/vovakirdan/gridbreak/internal/config"

// Constant is one named value published to bots.
type Constant struct {
	Name  string
	Value int
}

// Constants returns the table a bot references by name, in a fixed order.
func Constants(board config.BoardConfig) []Constant {
	return []Constant{
		{"west", KeyWest},
		{"east", KeyEast},
		{"fire", KeyFire},
		{"stay", KeyStay},
		{"RED", int(TileRed)},
		{"ORANGE", int(TileOrange)},
		{"YELLOW", int(TileYellow)},
		{"GREEN", int(TileGreen)},
		{"BLUE", int(TileBlue)},
		{"WALL", int(TileWall)},
		{"ROBOT", int(TileBall)},
		{"PLAYER", int(TilePaddle)},
		{"EMPTY", int(TileEmpty)},
		{"MAP_HEIGHT", board.Height},
		{"MAP_WIDTH", board.Width},
	}
}

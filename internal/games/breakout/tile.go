package breakout

import "github.com/vovakirdan/gridbreak/internal/core"

// Tile is the symbol code occupying one grid cell. The numeric values are
// the codes a bot sees in map_array and in the constants table.
type Tile int

const (
	TileEmpty  Tile = ' '
	TileBall   Tile = '@'
	TileRed    Tile = 240
	TileOrange Tile = 241
	TileYellow Tile = 242
	TileGreen  Tile = 243
	TileBlue   Tile = 244
	TilePaddle Tile = 245
	TileWall   Tile = 246
)

// brickRows lists the brick colors from the top brick row down.
var brickRows = [...]Tile{TileRed, TileOrange, TileYellow, TileGreen, TileBlue}

// IsBrick reports whether the tile is one of the five brick colors.
func (t Tile) IsBrick() bool {
	return t >= TileRed && t <= TileBlue
}

// Glyph returns the terminal rune for the tile.
func (t Tile) Glyph() rune {
	switch t {
	case TileWall:
		return '#'
	case TileBall:
		return '●'
	case TilePaddle:
		return '='
	case TileEmpty:
		return ' '
	}
	if t.IsBrick() {
		return '█'
	}
	return '?'
}

// Color returns the display color for the tile.
func (t Tile) Color() core.Color {
	switch t {
	case TileRed:
		return core.ColorRed
	case TileOrange:
		return core.ColorOrange
	case TileYellow:
		return core.ColorYellow
	case TileGreen:
		return core.ColorGreen
	case TileBlue:
		return core.ColorBlue
	case TilePaddle:
		return core.ColorCyan
	case TileBall:
		return core.ColorBrightWhite
	case TileWall:
		return core.ColorGray
	default:
		return core.ColorDefault
	}
}

// String returns the tile's constants-table name.
func (t Tile) String() string {
	switch t {
	case TileEmpty:
		return "EMPTY"
	case TileBall:
		return "ROBOT"
	case TileRed:
		return "RED"
	case TileOrange:
		return "ORANGE"
	case TileYellow:
		return "YELLOW"
	case TileGreen:
		return "GREEN"
	case TileBlue:
		return "BLUE"
	case TilePaddle:
		return "PLAYER"
	case TileWall:
		return "WALL"
	default:
		return "UNKNOWN"
	}
}

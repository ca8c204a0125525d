package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorCoral
	ColorTeal
	ColorSky
	ColorSalmon
	ColorMint
	ColorSand
	ColorLavender
	ColorPowder
	ColorPeach
	ColorWheat
	ColorGray
	ColorGold
	ColorSilver
	ColorBronze
	ColorLabel  // Faint score label behind the stack
	ColorPanel  // Drawer and prompt frames
	ColorAccent // Titles and the prompt cursor
	ColorToast  // Notification text on a dark background
	ColorError  // Validation messages
)

// blockPalette is the cycle of colors used for stacked blocks.
var blockPalette = [...]Color{
	ColorCoral,
	ColorTeal,
	ColorSky,
	ColorSalmon,
	ColorMint,
	ColorSand,
	ColorLavender,
	ColorPowder,
	ColorPeach,
	ColorWheat,
}

// BlockColor returns the palette color for the block at the given stack index.
// The palette repeats every len(blockPalette) blocks.
func BlockColor(index int) Color {
	if index < 0 {
		index = -index
	}
	return blockPalette[index%len(blockPalette)]
}

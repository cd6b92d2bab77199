package ui

import "github.com/gdamore/tcell/v2"

// MenuColors is the palette for the setup screen.
var MenuColors = struct {
	Border     tcell.Color
	Label      tcell.Color
	Hint       tcell.Color
	ButtonBG   tcell.Color
	ButtonText tcell.Color
}{
	Border:     tcell.PaletteColor(60),  // muted blue-gray
	Label:      tcell.PaletteColor(250), // light gray
	Hint:       tcell.PaletteColor(245), // dim gray
	ButtonBG:   tcell.PaletteColor(60),
	ButtonText: tcell.PaletteColor(255),
}

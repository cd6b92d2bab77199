package config

// defaultTheme draws grid lines on a wood-coloured board (xterm 256 palette).
var defaultTheme = Theme{
	DrawCursorBackground:     true,
	DrawLastPlayedBackground: true,
	UseGridLines:             true,
	Colors: ConfigColors{
		BoardColor:        180, // tan
		BoardColorAlt:     180,
		BlackColor:        232,
		BlackColorAlt:     232,
		WhiteColor:        255,
		WhiteColorAlt:     255,
		LineColor:         94, // brown
		CursorColorFG:     2,
		CursorColorBG:     4,
		LastPlayedColorBG: 2,
	},
	Symbols: ConfigSymbols{
		BlackStone:  '●',
		WhiteStone:  '●',
		BoardSquare: '┼',
		Cursor:      '┼',
		LastPlayed:  '┼',
	},
}

// DefaultConfig is used as is when no config file exists, and as the base a
// config file is decoded over.
var DefaultConfig = Config{
	Theme:    defaultTheme,
	Board:    BoardConfig{Size: 19},
	LogLevel: "info",
}

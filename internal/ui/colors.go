package ui

// Color accessor functions return the ANSI escape code for the given color
// category from the currently active theme. Presentation code composes these
// instead of hard-coding escape sequences, so NO_COLOR and theme switching
// work everywhere.

// ColorRed returns the error color code.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success color code.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color code.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary accent color code.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorGrey returns the secondary color code.
func ColorGrey() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold escape code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorReset returns the reset escape code.
func ColorReset() string { return GetCurrentTheme().Reset }

package tui

// Color constants for the studytrack TUI theme
const (
	// Base Colors
	ColorAppBackground  = ""        // Use terminal default background
	ColorCardBackground = "#10231C" // Deep green
	ColorBorder         = "#33524A" // Muted sage

	// Text Colors
	ColorPrimaryText   = "#E8F3EE" // Primary text (titles, values, user input)
	ColorSecondaryText = "#A7C4B8" // Secondary text, soft green-grey
	ColorDisabledText  = "#5F7A70" // Disabled/muted text
	ColorPlaceholder   = "#A7C4B8" // Same as secondary
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Green theme)
	ColorAccentMain   = "#10B981" // Accent elements, active borders
	ColorAccentBright = "#6EE7B7" // Highlights, the running clock

	// State Colors
	ColorError   = "#EF4444" // Failures
	ColorSuccess = "#22C55E" // Success, confirmations
	ColorWarning = "#F59E0B" // Warnings, paused state
)

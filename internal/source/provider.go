package source

// EndMarker is appended to the final window of a setlist. The display uses it
// to suppress the "scroll further" affordance.
const EndMarker = "\nEND OF SETLIST"

// WindowLines is the number of lines the display shows at once
const WindowLines = 3

// WindowProvider is the core abstraction for reading a setlist.
// The session only interacts with this interface.
type WindowProvider interface {
	// LineCount returns the total number of line feeds in the file
	LineCount() int

	// Reachable returns how many lines navigation may visit
	Reachable() int

	// Window returns the lines starting at start (0-based)
	Window(start int) (string, error)
}

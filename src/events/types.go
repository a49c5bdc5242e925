package events

// Key is a key press in bubbletea's string form ("esc", "enter", "x").
type Key string

// Pointer is a left-button press at a terminal cell.
type Pointer struct {
	X int
	Y int
}

// Rect is a screen region in terminal cells.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (r Rect) Contains(p Pointer) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

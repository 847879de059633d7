package galaxy

// Galaxy holds the 3-D positions of known star systems plus their
// permit-required flags. Distances are in light years.
type Galaxy struct {
	// Positions maps systemID -> coordinates from the systems dump
	Positions map[int64]Point
	// Permit maps systemID -> whether a travel permit is required
	Permit map[int64]bool
}

// Point is a position in the galactic coordinate frame.
type Point struct {
	X, Y, Z float64
}

// New creates an empty Galaxy with initialized maps.
func New() *Galaxy {
	return &Galaxy{
		Positions: make(map[int64]Point),
		Permit:    make(map[int64]bool),
	}
}

// SetPosition records the coordinates of a system.
func (g *Galaxy) SetPosition(systemID int64, x, y, z float64) {
	g.Positions[systemID] = Point{X: x, Y: y, Z: z}
}

// SetPermit marks whether a system requires a travel permit.
func (g *Galaxy) SetPermit(systemID int64, required bool) {
	g.Permit[systemID] = required
}

// NeedsPermit reports whether a system requires a travel permit.
// Unknown systems are treated as permit-free.
func (g *Galaxy) NeedsPermit(systemID int64) bool {
	return g.Permit[systemID]
}

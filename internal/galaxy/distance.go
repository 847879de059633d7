package galaxy

import "math"

// Distance returns the straight-line distance between two systems in light
// years. Returns -1 if either system has no known position.
func (g *Galaxy) Distance(a, b int64) float64 {
	pa, ok := g.Positions[a]
	if !ok {
		return -1
	}
	pb, ok := g.Positions[b]
	if !ok {
		return -1
	}
	dx := pa.X - pb.X
	dy := pa.Y - pb.Y
	dz := pa.Z - pb.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// WithinRange returns all systems whose distance from origin is at most
// radius light years, mapped to their distance. The origin itself is included
// at distance 0.
func (g *Galaxy) WithinRange(origin int64, radius float64) map[int64]float64 {
	result := make(map[int64]float64)
	po, ok := g.Positions[origin]
	if !ok {
		return result
	}
	r2 := radius * radius
	for id, p := range g.Positions {
		dx := p.X - po.X
		dy := p.Y - po.Y
		dz := p.Z - po.Z
		d2 := dx*dx + dy*dy + dz*dz
		if d2 <= r2 {
			result[id] = math.Sqrt(d2)
		}
	}
	return result
}

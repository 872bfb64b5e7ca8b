package booking

// Registry is the fixed, ordered set of rooms in the house. Order matters: it
// drives display and grid layout. Rooms are configured, never created at
// runtime.
type Registry []string

// DefaultRegistry lists the rooms of the house as configured upstream.
func DefaultRegistry() Registry {
	return Registry{
		"Queen next to Bathroom",
		"The One With The Sleeping Porch",
		"Over the Kitchen",
		"Upstairs Books",
		"Left at the Top of the Stairs",
		"Blacksmith's Shop",
	}
}

func (g Registry) Contains(room string) bool {
	for _, r := range g {
		if r == room {
			return true
		}
	}
	return false
}

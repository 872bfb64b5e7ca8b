package booking

// DaySummary describes one calendar night: who is in the house, which rooms
// are taken, and how many are left. Names keep first-seen order with
// duplicates dropped; two reservations for the same room on the same night
// still count as one occupied room.
type DaySummary struct {
	Names          []string
	Rooms          map[string]bool
	RoomsRemaining int
}

// Occupancy expands every reservation into its occupied nights and indexes
// them by YYYY-MM-DD date. A reservation spanning N nights contributes to
// exactly N days and never to its checkout date.
func Occupancy(snapshot []Reservation, reg Registry) map[string]*DaySummary {
	days := make(map[string]*DaySummary)
	for _, res := range snapshot {
		for _, night := range res.Range().Nights() {
			key := FormatDate(night)
			day := days[key]
			if day == nil {
				day = &DaySummary{Rooms: make(map[string]bool)}
				days[key] = day
			}
			day.Rooms[res.Room] = true
			if !containsName(day.Names, res.Name) {
				day.Names = append(day.Names, res.Name)
			}
		}
	}
	for _, day := range days {
		day.RoomsRemaining = len(reg) - len(day.Rooms)
	}
	return days
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

package booking

// RoomConflict pairs a booked room with the reservations blocking it. First
// is the earliest conflict in snapshot order and is what the UI surfaces;
// All carries the rest for callers that want them.
type RoomConflict struct {
	Room  string
	First Reservation
	All   []Reservation
}

// Availability splits the registry into free and booked rooms for one
// candidate range, in registry order.
type Availability struct {
	Free   []string
	Booked []RoomConflict
}

// RoomsAvailable computes per-room availability for the candidate range over
// the given snapshot. Pure: same snapshot and range, same answer.
func RoomsAvailable(snapshot []Reservation, reg Registry, r DateRange) Availability {
	var out Availability
	for _, room := range reg {
		conflicts := RoomConflicts(snapshot, room, r, "")
		if len(conflicts) == 0 {
			out.Free = append(out.Free, room)
			continue
		}
		out.Booked = append(out.Booked, RoomConflict{
			Room:  room,
			First: conflicts[0],
			All:   conflicts,
		})
	}
	return out
}

// RoomConflicts returns every reservation in the snapshot that occupies the
// given room for at least one night of the candidate range, in snapshot
// order. excludeID skips one reservation so an edit is not flagged against
// its own prior occupancy; pass "" to check all.
func RoomConflicts(snapshot []Reservation, room string, r DateRange, excludeID string) []Reservation {
	var out []Reservation
	for _, res := range snapshot {
		if res.Room != room {
			continue
		}
		if excludeID != "" && res.ID == excludeID {
			continue
		}
		if r.Overlaps(res.Range()) {
			out = append(out, res)
		}
	}
	return out
}

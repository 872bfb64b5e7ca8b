package booking

import "time"

// Cell is one slot in the month grid. Day 0 marks a blank leading/trailing
// cell: adjacent-month days are deliberately left empty so they cannot be
// acted on.
type Cell struct {
	Day  int
	Date string
}

func (c Cell) Blank() bool { return c.Day == 0 }

// Week is one Sunday-through-Saturday row of the grid.
type Week [7]Cell

// MonthGrid lays the month out as calendar weeks, starting on the Sunday
// on/before the 1st and ending on the Saturday on/after the last day. Pure
// calendrical computation; occupancy is merged in at render time.
func MonthGrid(year int, month time.Month) []Week {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	lead := int(first.Weekday())

	var weeks []Week
	var week Week
	col := lead
	for day := 1; day <= daysInMonth; day++ {
		week[col] = Cell{
			Day:  day,
			Date: FormatDate(time.Date(year, month, day, 0, 0, 0, 0, time.UTC)),
		}
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = Week{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

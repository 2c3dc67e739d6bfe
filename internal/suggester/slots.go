package suggester

import (
	"sort"
	"strconv"
	"strings"
)

// Time-of-day buckets. Player availability is granular only to these, not to
// exact times.
const (
	Morning   = "morning"
	Afternoon = "afternoon"
	Evening   = "evening"
)

// timeOfDay maps an HH:MM time to its coarse bucket. Unparseable times fall
// back to morning.
func timeOfDay(t string) string {
	hh, _, found := strings.Cut(t, ":")
	if !found {
		return Morning
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return Morning
	}
	switch {
	case hour < 12:
		return Morning
	case hour < 18:
		return Afternoon
	default:
		return Evening
	}
}

// buildSlotQueue expands the week's slot definitions into individual court
// slots, net of courts already consumed by matches programmed outside the
// selected tournaments. Programmed matches only reduce capacity when their
// (venue, date, time) also appears in the definitions; court numbering
// continues after the consumed courts. The queue is ordered by
// (venue, date, time) ascending.
func buildSlotQueue(defs []SlotDefinition, programmed []ProgrammedMatch) []*CourtSlot {
	defined := make(map[slotKey]struct{}, len(defs))
	for _, d := range defs {
		defined[slotKey{Venue: d.Venue, Date: d.Date, Time: d.Time}] = struct{}{}
	}

	consumed := make(map[slotKey]int)
	for _, m := range programmed {
		key := slotKey{Venue: m.Venue, Date: m.Date, Time: m.Time}
		if _, ok := defined[key]; ok {
			consumed[key]++
		}
	}

	var queue []*CourtSlot
	for _, d := range defs {
		key := slotKey{Venue: d.Venue, Date: d.Date, Time: d.Time}
		taken := consumed[key]
		for court := taken + 1; court <= d.Courts; court++ {
			queue = append(queue, &CourtSlot{
				Key:       key,
				Venue:     d.Venue,
				Date:      d.Date,
				Time:      d.Time,
				TimeOfDay: timeOfDay(d.Time),
				Court:     court,
			})
		}
	}

	sort.SliceStable(queue, func(i, j int) bool {
		if queue[i].Key != queue[j].Key {
			return queue[i].Key.less(queue[j].Key)
		}
		return queue[i].Court < queue[j].Court
	})
	return queue
}

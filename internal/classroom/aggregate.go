// Package classroom implements the free-classroom query engine: it
// filters weekly availability tables to a single weekday, groups the
// free records by room or by time slot, and derives floors from room
// numbers.
package classroom

import (
	"sort"

	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/stringutil"
	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/table"
)

// FreeRoom is one room with the time slots it is free on the queried
// day. FreeTimeSlots is sorted and duplicate-free.
type FreeRoom struct {
	RoomName      string   `json:"room_name"`
	Floor         int      `json:"floor"`
	FreeTimeSlots []string `json:"free_time_slots"`
}

// FloorOf derives the floor from a room name: the first maximal digit
// run, when at least three digits long, contributes its first digit
// (正心305 → 3). Shorter runs default to floor 1. This assumes the
// hundreds-digit-is-floor numbering convention; buildings that number
// rooms differently will be misclassified.
func FloorOf(roomName string) int {
	run := stringutil.FirstDigitRun(roomName)
	if len(run) >= 3 {
		return int(run[0] - '0')
	}
	return 1
}

// GroupByRoom collects the rooms free at any slot on the given weekday.
// Each room appears once with its distinct free slots sorted
// lexicographically; the result is sorted ascending by floor, stable
// within a floor. Empty input yields an empty slice.
func GroupByRoom(records []table.Record, weekday string) []FreeRoom {
	slotsByRoom := make(map[string][]string)
	order := make([]string, 0)

	for _, rec := range records {
		if rec.Weekday != weekday || !rec.Free() {
			continue
		}
		if _, seen := slotsByRoom[rec.RoomName]; !seen {
			order = append(order, rec.RoomName)
		}
		slotsByRoom[rec.RoomName] = appendUnique(slotsByRoom[rec.RoomName], rec.TimeSlot)
	}

	result := make([]FreeRoom, 0, len(order))
	for _, roomName := range order {
		slots := slotsByRoom[roomName]
		sort.Strings(slots)
		result = append(result, FreeRoom{
			RoomName:      roomName,
			Floor:         FloorOf(roomName),
			FreeTimeSlots: slots,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Floor < result[j].Floor
	})
	return result
}

// GroupByTimeSlot collects, per time slot, the rooms free in that slot
// on the given weekday. The first record wins when a room/slot pair
// repeats. Each room entry carries exactly that one slot, and every
// slot's list is sorted ascending by floor. Empty input yields an
// empty map.
func GroupByTimeSlot(records []table.Record, weekday string) map[string][]FreeRoom {
	bySlot := make(map[string][]FreeRoom)

	for _, rec := range records {
		if rec.Weekday != weekday || !rec.Free() {
			continue
		}
		if containsRoom(bySlot[rec.TimeSlot], rec.RoomName) {
			continue
		}
		bySlot[rec.TimeSlot] = append(bySlot[rec.TimeSlot], FreeRoom{
			RoomName:      rec.RoomName,
			Floor:         FloorOf(rec.RoomName),
			FreeTimeSlots: []string{rec.TimeSlot},
		})
	}

	for slot, rooms := range bySlot {
		sort.SliceStable(rooms, func(i, j int) bool {
			return rooms[i].Floor < rooms[j].Floor
		})
		bySlot[slot] = rooms
	}
	return bySlot
}

func appendUnique(slots []string, slot string) []string {
	for _, s := range slots {
		if s == slot {
			return slots
		}
	}
	return append(slots, slot)
}

func containsRoom(rooms []FreeRoom, name string) bool {
	for _, r := range rooms {
		if r.RoomName == name {
			return true
		}
	}
	return false
}

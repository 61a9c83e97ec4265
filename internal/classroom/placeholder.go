package classroom

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/table"
)

// Placeholder generates substitute availability tables used when the
// real weekly export cannot be fetched. Rows are schema-identical to
// the real format so the parser and aggregator run the same path.
// Safe for concurrent use.
type Placeholder struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// Placeholder layout: five floors of eight rooms, with roughly 70% of
// room/slot pairs marked free.
const (
	placeholderFloors        = 5
	placeholderRoomsPerFloor = 8
	placeholderFreeRate      = 0.7
)

// NewPlaceholder creates a generator seeded from the given source.
// Pass a fixed-seed source for deterministic output in tests.
func NewPlaceholder(src rand.Source) *Placeholder {
	return &Placeholder{rng: rand.New(src)}
}

// GenerateTable produces a full substitute table for one building and
// weekday, covering all six time slots. rand.Rand is not safe for
// concurrent use, so generation is serialized.
func (p *Placeholder) GenerateTable(building, weekday string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var b strings.Builder
	b.WriteString("场地,星期,时间段,状态")

	for floor := 1; floor <= placeholderFloors; floor++ {
		for room := 1; room <= placeholderRoomsPerFloor; room++ {
			roomName := fmt.Sprintf("%s%d%02d", building, floor, room)
			for _, slot := range []string{"1,2", "3,4", "5,6", "7,8", "9,10", "11,12"} {
				status := table.StatusOccupied
				if p.rng.Float64() < placeholderFreeRate {
					status = table.StatusFree
				}
				fmt.Fprintf(&b, "\n%s,%s,\"%s\",%s", roomName, weekday, slot, status)
			}
		}
	}

	return b.String()
}

// BuildingFromKey extracts the building name from a table-store key of
// the form {campusSlug}/{building}/week-{N}-free-rooms.csv, dropping
// any trailing digits from the directory name. Falls back to 正心楼
// when the key does not follow the layout.
func BuildingFromKey(key string) string {
	parts := strings.Split(key, "/")
	if len(parts) >= 3 {
		building := strings.TrimRight(parts[1], "0123456789")
		if building != "" {
			return building
		}
	}
	return "正心楼"
}

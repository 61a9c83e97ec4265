package classroom

import (
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTableSchema(t *testing.T) {
	t.Parallel()
	gen := NewPlaceholder(rand.NewSource(1))
	raw := gen.GenerateTable("正心楼", "星期一")

	require.True(t, strings.HasPrefix(raw, "场地,星期,时间段,状态"))

	records := table.Parse(raw)
	// 5 floors x 8 rooms x 6 slots
	require.Len(t, records, 240)

	for _, r := range records {
		assert.True(t, strings.HasPrefix(r.RoomName, "正心楼"))
		assert.Equal(t, "星期一", r.Weekday)
		assert.Contains(t, []string{table.StatusFree, table.StatusOccupied}, r.Status)
	}
}

func TestGenerateTableDeterministicWithSeed(t *testing.T) {
	t.Parallel()
	a := NewPlaceholder(rand.NewSource(42)).GenerateTable("主楼", "星期二")
	b := NewPlaceholder(rand.NewSource(42)).GenerateTable("主楼", "星期二")
	assert.Equal(t, a, b)
}

func TestGenerateTableFeedsAggregator(t *testing.T) {
	t.Parallel()
	gen := NewPlaceholder(rand.NewSource(7))
	records := table.Parse(gen.GenerateTable("格物楼", "星期五"))

	rooms := GroupByRoom(records, "星期五")
	assert.NotEmpty(t, rooms)
	for i := 1; i < len(rooms); i++ {
		assert.GreaterOrEqual(t, rooms[i].Floor, rooms[i-1].Floor)
	}
}

func TestGenerateTableConcurrent(t *testing.T) {
	t.Parallel()
	gen := NewPlaceholder(rand.NewSource(1))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			raw := gen.GenerateTable("正心楼", "星期一")
			if len(table.Parse(raw)) != 240 {
				t.Error("generated table has wrong row count")
			}
		}()
	}
	wg.Wait()
}

func TestBuildingFromKey(t *testing.T) {
	t.Parallel()
	tests := []struct {
		key  string
		want string
	}{
		{"campus1/正心楼/week-17-free-rooms.csv", "正心楼"},
		{"campus2/二区主楼/week-3-free-rooms.csv", "二区主楼"},
		{"campus1/主楼8/week-1-free-rooms.csv", "主楼"}, // trailing digits stripped
		{"garbage", "正心楼"},
		{"", "正心楼"},
	}

	for _, tt := range tests {
		if got := BuildingFromKey(tt.key); got != tt.want {
			t.Errorf("BuildingFromKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

package classroom

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/calendar"
	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu      sync.Mutex
	tables  map[string]string
	err     error
	fetches int
}

func (f *fakeSource) FetchTable(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.err != nil {
		return "", f.err
	}
	raw, ok := f.tables[key]
	if !ok {
		return "", errors.New("no such key")
	}
	return raw, nil
}

type fakeRecorder struct {
	mu      sync.Mutex
	queries map[string]int
	fetches int
}

func (f *fakeRecorder) RecordQuery(campus, mode, origin string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queries == nil {
		f.queries = make(map[string]int)
	}
	f.queries[campus+"/"+mode+"/"+origin]++
}

func (f *fakeRecorder) ObserveFetch(_ float64, _ bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
}

func newTestService(src TableSource, rec QueryRecorder) *Service {
	log := logger.NewWithWriter("error", io.Discard)
	return NewService(src, NewPlaceholder(rand.NewSource(1)), calendar.Default(), log, rec)
}

func monday(t *testing.T) time.Time {
	t.Helper()
	// 2025-03-03 is the Monday of semester week 2.
	return time.Date(2025, time.March, 3, 0, 0, 0, 0, time.Local)
}

func TestSourceKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "campus1/正心楼/week-17-free-rooms.csv", SourceKey("一校区", "正心楼", 17))
	assert.Equal(t, "campus2/二区主楼/week-1-free-rooms.csv", SourceKey("二校区", "二区主楼", 1))
}

func TestFreeRoomsEndToEnd(t *testing.T) {
	t.Parallel()
	raw := strings.Join([]string{
		"场地,星期,时间段,状态",
		`明德201,星期一,"1,2",空闲`,
		`明德201,星期一,"3,4",占用`,
	}, "\n")

	src := &fakeSource{tables: map[string]string{
		"campus1/明德楼/week-2-free-rooms.csv": raw,
	}}
	svc := newTestService(src, nil)

	result := svc.FreeRoomsDetailed(context.Background(), "一校区", "明德楼", monday(t))

	assert.Equal(t, 2, result.Week)
	assert.Equal(t, "星期一", result.Weekday)
	assert.False(t, result.Placeholder)
	require.Len(t, result.Rooms, 1)
	assert.Equal(t, "明德201", result.Rooms[0].RoomName)
	assert.Equal(t, 2, result.Rooms[0].Floor)
	assert.Equal(t, []string{"1,2"}, result.Rooms[0].FreeTimeSlots)
}

func TestFreeRoomsBySlotEndToEnd(t *testing.T) {
	t.Parallel()
	raw := strings.Join([]string{
		"场地,星期,时间段,状态",
		`明德201,星期一,"1,2",空闲`,
		`明德305,星期一,"1,2",空闲`,
		`明德201,星期一,"3,4",占用`,
	}, "\n")

	src := &fakeSource{tables: map[string]string{
		"campus1/明德楼/week-2-free-rooms.csv": raw,
	}}
	svc := newTestService(src, nil)

	result := svc.FreeRoomsBySlotDetailed(context.Background(), "一校区", "明德楼", monday(t))

	assert.False(t, result.Placeholder)
	require.Len(t, result.Slots, 1)
	slot := result.Slots["1,2"]
	require.Len(t, slot, 2)
	assert.Equal(t, "明德201", slot[0].RoomName)
	assert.Equal(t, "明德305", slot[1].RoomName)
}

func TestFreeRoomsFallsBackOnFetchError(t *testing.T) {
	t.Parallel()
	src := &fakeSource{err: errors.New("bucket unreachable")}
	svc := newTestService(src, nil)

	result := svc.FreeRoomsDetailed(context.Background(), "一校区", "正心楼", monday(t))

	assert.True(t, result.Placeholder)
	assert.NotEmpty(t, result.Rooms, "placeholder data should still produce rooms")
	for _, room := range result.Rooms {
		assert.True(t, strings.HasPrefix(room.RoomName, "正心楼"))
	}
}

func TestFreeRoomsFallsBackOnGarbageContent(t *testing.T) {
	t.Parallel()
	src := &fakeSource{tables: map[string]string{
		"campus1/正心楼/week-2-free-rooms.csv": "<html>404 not found</html>",
	}}
	svc := newTestService(src, nil)

	result := svc.FreeRoomsDetailed(context.Background(), "一校区", "正心楼", monday(t))
	assert.True(t, result.Placeholder)
}

func TestFreeRoomsNeverReturnsNilOnMissingKey(t *testing.T) {
	t.Parallel()
	src := &fakeSource{tables: map[string]string{}}
	svc := newTestService(src, nil)

	rooms := svc.FreeRooms(context.Background(), "一校区", "不存在的楼", monday(t))
	assert.NotNil(t, rooms)
}

func TestQueryRecorderSeesOrigin(t *testing.T) {
	t.Parallel()
	raw := "场地,星期,时间段,状态\n" + `明德201,星期一,"1,2",空闲`
	src := &fakeSource{tables: map[string]string{
		"campus1/明德楼/week-2-free-rooms.csv": raw,
	}}
	rec := &fakeRecorder{}
	svc := newTestService(src, rec)

	svc.FreeRooms(context.Background(), "一校区", "明德楼", monday(t))
	svc.FreeRooms(context.Background(), "一校区", "没有的楼", monday(t))

	assert.Equal(t, 1, rec.queries["一校区/by_room/source"])
	assert.Equal(t, 1, rec.queries["一校区/by_room/placeholder"])
	assert.Equal(t, 2, rec.fetches)
}

func TestConcurrentFallbackQueries(t *testing.T) {
	t.Parallel()
	src := &fakeSource{err: errors.New("bucket unreachable")}
	svc := newTestService(src, nil)

	// Distinct buildings produce distinct keys, so the queries generate
	// placeholder tables concurrently instead of sharing one fetch.
	buildings := []string{"正心楼", "明德楼", "格物楼", "致知楼", "诚意楼", "图书馆", "文体中心", "理学楼"}

	var wg sync.WaitGroup
	for _, building := range buildings {
		wg.Add(1)
		go func(building string) {
			defer wg.Done()
			rooms := svc.FreeRooms(context.Background(), "一校区", building, monday(t))
			if len(rooms) == 0 {
				t.Errorf("placeholder data for %s produced no rooms", building)
			}
		}(building)
	}
	wg.Wait()
}

func TestConcurrentQueriesAreIndependent(t *testing.T) {
	t.Parallel()
	raw := "场地,星期,时间段,状态\n" + `明德201,星期一,"1,2",空闲`
	src := &fakeSource{tables: map[string]string{
		"campus1/明德楼/week-2-free-rooms.csv": raw,
	}}
	svc := newTestService(src, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rooms := svc.FreeRooms(context.Background(), "一校区", "明德楼", monday(t))
			if len(rooms) != 1 {
				t.Errorf("got %d rooms, want 1", len(rooms))
			}
		}()
	}
	wg.Wait()
}

package classroom

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/calendar"
	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/directory"
	apperrors "github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/errors"
	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/logger"
	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/table"
	"golang.org/x/sync/singleflight"
)

// TableSource fetches raw weekly availability text by store key.
// Implementations: the R2/S3 object store client and the local
// directory source.
type TableSource interface {
	FetchTable(ctx context.Context, key string) (string, error)
}

// QueryRecorder receives query metrics. All methods must be safe for
// concurrent use; a nil recorder disables recording.
type QueryRecorder interface {
	RecordQuery(campus, mode, origin string)
	ObserveFetch(seconds float64, success bool)
}

// Query result origins.
const (
	OriginSource      = "source"
	OriginPlaceholder = "placeholder"
)

// QueryResult carries the aggregated rooms for one query along with
// provenance, so callers (and tests) can tell degraded results from
// primary ones. The HTTP layer exposes rooms plus week/weekday.
type QueryResult struct {
	Week        int
	Weekday     string
	Rooms       []FreeRoom
	Placeholder bool
}

// SlotQueryResult is the per-time-slot variant of QueryResult.
type SlotQueryResult struct {
	Week        int
	Weekday     string
	Slots       map[string][]FreeRoom
	Placeholder bool
}

// Service is the availability query engine. It resolves the query date
// to a semester week and weekday, fetches the building's weekly table,
// and aggregates the free rooms. Fetch failures of any kind degrade to
// generated placeholder data; the service never surfaces a fetch error
// to its callers.
type Service struct {
	source      TableSource
	placeholder *Placeholder
	cal         *calendar.Calendar
	log         *logger.Logger
	recorder    QueryRecorder
	group       singleflight.Group
}

// NewService creates the query engine. recorder may be nil.
func NewService(source TableSource, placeholder *Placeholder, cal *calendar.Calendar, log *logger.Logger, recorder QueryRecorder) *Service {
	return &Service{
		source:      source,
		placeholder: placeholder,
		cal:         cal,
		log:         log.WithModule("classroom"),
		recorder:    recorder,
	}
}

// SourceKey builds the table-store key for one campus/building/week.
func SourceKey(campus, building string, week int) string {
	return fmt.Sprintf("%s/%s/week-%d-free-rooms.csv", directory.CampusSlug(campus), building, week)
}

// FreeRooms returns the rooms free at any slot on the given date,
// merged per room (§ by-room mode). The result may be empty but the
// call never fails.
func (s *Service) FreeRooms(ctx context.Context, campus, building string, date time.Time) []FreeRoom {
	return s.FreeRoomsDetailed(ctx, campus, building, date).Rooms
}

// FreeRoomsDetailed is FreeRooms plus week/weekday and provenance.
func (s *Service) FreeRoomsDetailed(ctx context.Context, campus, building string, date time.Time) QueryResult {
	records, week, weekday, fromPlaceholder := s.dayRecords(ctx, campus, building, date)
	s.record(campus, "by_room", fromPlaceholder)
	return QueryResult{
		Week:        week,
		Weekday:     weekday,
		Rooms:       GroupByRoom(records, weekday),
		Placeholder: fromPlaceholder,
	}
}

// FreeRoomsBySlot returns the rooms free on the given date broken down
// per time slot (§ per-slot mode). The result may be empty but the
// call never fails.
func (s *Service) FreeRoomsBySlot(ctx context.Context, campus, building string, date time.Time) map[string][]FreeRoom {
	return s.FreeRoomsBySlotDetailed(ctx, campus, building, date).Slots
}

// FreeRoomsBySlotDetailed is FreeRoomsBySlot plus week/weekday and
// provenance.
func (s *Service) FreeRoomsBySlotDetailed(ctx context.Context, campus, building string, date time.Time) SlotQueryResult {
	records, week, weekday, fromPlaceholder := s.dayRecords(ctx, campus, building, date)
	s.record(campus, "by_slot", fromPlaceholder)
	return SlotQueryResult{
		Week:        week,
		Weekday:     weekday,
		Slots:       GroupByTimeSlot(records, weekday),
		Placeholder: fromPlaceholder,
	}
}

// dayRecords resolves the date and fetches + parses the weekly table,
// degrading to placeholder rows when the fetch fails or the content
// does not look like an availability table.
func (s *Service) dayRecords(ctx context.Context, campus, building string, date time.Time) (records []table.Record, week int, weekday string, fromPlaceholder bool) {
	week = s.cal.WeekOf(date)
	weekday = calendar.WeekdayName(date)
	key := SourceKey(campus, building, week)

	raw, err := s.fetchTable(ctx, key)
	if err == nil && !strings.Contains(raw, table.HeaderToken) {
		err = fmt.Errorf("%w: missing header token %q", apperrors.ErrMalformedTable, table.HeaderToken)
	}
	if err != nil {
		s.log.WithError(err).
			WithField("key", key).
			Warn("table fetch failed, using placeholder data")
		raw = s.placeholder.GenerateTable(BuildingFromKey(key), weekday)
		fromPlaceholder = true
	}

	return table.Parse(raw), week, weekday, fromPlaceholder
}

// fetchTable deduplicates concurrent fetches of the same key.
func (s *Service) fetchTable(ctx context.Context, key string) (string, error) {
	start := time.Now()
	v, err, _ := s.group.Do(key, func() (any, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}
		return s.source.FetchTable(ctx, key)
	})
	if s.recorder != nil {
		s.recorder.ObserveFetch(time.Since(start).Seconds(), err == nil)
	}
	if err != nil {
		return "", apperrors.NewFetchError(key, err)
	}
	return v.(string), nil
}

func (s *Service) record(campus, mode string, fromPlaceholder bool) {
	if s.recorder == nil {
		return
	}
	origin := OriginSource
	if fromPlaceholder {
		origin = OriginPlaceholder
	}
	s.recorder.RecordQuery(campus, mode, origin)
}

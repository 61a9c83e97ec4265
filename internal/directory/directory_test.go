package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampuses(t *testing.T) {
	t.Parallel()
	all := Campuses()
	require.Len(t, all, 2)
	assert.Equal(t, "一校区", all[0].Name)
	assert.Equal(t, "campus1", all[0].Slug)
	assert.Len(t, all[0].Buildings, 25)
	assert.Equal(t, "二校区", all[1].Name)
	assert.Equal(t, "campus2", all[1].Slug)
	assert.Len(t, all[1].Buildings, 14)
}

func TestCampusesReturnsCopy(t *testing.T) {
	t.Parallel()
	first := Campuses()
	first[0].Buildings[0] = "tampered"
	assert.Equal(t, "主楼", Campuses()[0].Buildings[0])
}

func TestFindCampus(t *testing.T) {
	t.Parallel()
	c, ok := FindCampus("二校区")
	require.True(t, ok)
	assert.Contains(t, c.Buildings, "二区图书馆")

	_, ok = FindCampus("三校区")
	assert.False(t, ok)
}

func TestCampusSlug(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "campus1", CampusSlug("一校区"))
	assert.Equal(t, "campus2", CampusSlug("二校区"))
	// Unknown names fall through to campus2, matching the two-campus export.
	assert.Equal(t, "campus2", CampusSlug("别的校区"))
}

func TestHasBuilding(t *testing.T) {
	t.Parallel()
	assert.True(t, HasBuilding("一校区", "正心楼"))
	assert.False(t, HasBuilding("二校区", "正心楼"))
	assert.False(t, HasBuilding("三校区", "正心楼"))
}

func TestTimeSlots(t *testing.T) {
	t.Parallel()
	slots := TimeSlots()
	require.Len(t, slots, 6)
	assert.Equal(t, "1,2", slots[0].Value)
	assert.Equal(t, "第1-2节 (08:00-09:50)", slots[0].Label)
	assert.Equal(t, "11,12", slots[5].Value)
}

func TestIsValidSlot(t *testing.T) {
	t.Parallel()
	assert.True(t, IsValidSlot("5,6"))
	assert.False(t, IsValidSlot("13,14"))
	assert.False(t, IsValidSlot(""))
}

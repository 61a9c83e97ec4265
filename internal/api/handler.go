// Package api implements the HTTP API: campus and time slot catalogs,
// building search, free classroom queries and user preferences.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/calendar"
	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/classroom"
	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/directory"
	apperrors "github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/errors"
	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/logger"
	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/pinyin"
	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/prefs"
)

// Handler serves the availability API.
type Handler struct {
	service *classroom.Service
	prefs   *prefs.Store
	log     *logger.Logger
}

// NewHandler creates an API handler.
func NewHandler(service *classroom.Service, prefStore *prefs.Store, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		prefs:   prefStore,
		log:     log.WithModule("api"),
	}
}

// Register attaches all API routes to the given group.
func (h *Handler) Register(group *gin.RouterGroup) {
	group.GET("/campuses", h.Campuses)
	group.GET("/timeslots", h.TimeSlots)
	group.GET("/buildings/search", h.SearchBuildings)
	group.GET("/freerooms", h.FreeRooms)
	group.GET("/freerooms/slots", h.FreeRoomsBySlot)

	group.GET("/prefs/campus", h.GetFavoriteCampus)
	group.PUT("/prefs/campus", h.SetFavoriteCampus)
	group.GET("/prefs/buildings", h.GetFavoriteBuildings)
	group.POST("/prefs/buildings", h.AddFavoriteBuilding)
	group.DELETE("/prefs/buildings", h.RemoveFavoriteBuilding)
	group.GET("/prefs/searches", h.GetRecentSearches)
	group.POST("/prefs/searches", h.AddRecentSearch)
	group.DELETE("/prefs/searches", h.ClearRecentSearches)
	group.GET("/prefs/theme", h.GetThemeMode)
	group.PUT("/prefs/theme", h.SetThemeMode)
}

// Campuses returns the campus catalog with building lists.
func (h *Handler) Campuses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"campuses": directory.Campuses()})
}

// TimeSlots returns the class period codes with display labels.
func (h *Handler) TimeSlots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"timeslots": directory.TimeSlots()})
}

// SearchBuildings filters a campus's buildings by a hanzi, pinyin or
// abbreviation query. An empty query returns every building.
func (h *Handler) SearchBuildings(c *gin.Context) {
	campus, ok := h.requireCampus(c)
	if !ok {
		return
	}

	query := pinyin.NormalizeQuery(c.Query("q"))
	matches := pinyin.FilterBuildings(campus.Buildings, query)

	c.JSON(http.StatusOK, gin.H{
		"campus":    campus.Name,
		"query":     query,
		"buildings": matches,
	})
}

// FreeRooms returns the free classrooms of a building on a date,
// grouped by room.
func (h *Handler) FreeRooms(c *gin.Context) {
	campus, building, date, ok := h.availabilityParams(c)
	if !ok {
		return
	}

	result := h.service.FreeRoomsDetailed(c.Request.Context(), campus.Name, building, date)
	h.rememberSearch(c, campus.Name, building, date)

	c.JSON(http.StatusOK, gin.H{
		"campus":      campus.Name,
		"building":    building,
		"date":        calendar.FormatDate(date),
		"week":        result.Week,
		"weekday":     result.Weekday,
		"placeholder": result.Placeholder,
		"rooms":       result.Rooms,
	})
}

// FreeRoomsBySlot returns the free classrooms of a building on a date,
// grouped by time slot.
func (h *Handler) FreeRoomsBySlot(c *gin.Context) {
	campus, building, date, ok := h.availabilityParams(c)
	if !ok {
		return
	}

	result := h.service.FreeRoomsBySlotDetailed(c.Request.Context(), campus.Name, building, date)
	h.rememberSearch(c, campus.Name, building, date)

	c.JSON(http.StatusOK, gin.H{
		"campus":      campus.Name,
		"building":    building,
		"date":        calendar.FormatDate(date),
		"week":        result.Week,
		"weekday":     result.Weekday,
		"placeholder": result.Placeholder,
		"slots":       result.Slots,
	})
}

func (h *Handler) requireCampus(c *gin.Context) (directory.Campus, bool) {
	name := c.Query("campus")
	if name == "" {
		h.badRequest(c, apperrors.NewValidationError("campus", "query parameter is required"))
		return directory.Campus{}, false
	}
	campus, ok := directory.FindCampus(name)
	if !ok {
		h.badRequest(c, fmt.Errorf("%w: %s", apperrors.ErrUnknownCampus, name))
		return directory.Campus{}, false
	}
	return campus, true
}

func (h *Handler) availabilityParams(c *gin.Context) (directory.Campus, string, time.Time, bool) {
	campus, ok := h.requireCampus(c)
	if !ok {
		return directory.Campus{}, "", time.Time{}, false
	}

	building := c.Query("building")
	if building == "" {
		h.badRequest(c, apperrors.NewValidationError("building", "query parameter is required"))
		return directory.Campus{}, "", time.Time{}, false
	}
	if !directory.HasBuilding(campus.Name, building) {
		h.badRequest(c, apperrors.NewValidationError("building", "unknown building for "+campus.Name+": "+building))
		return directory.Campus{}, "", time.Time{}, false
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := calendar.ParseDate(raw)
		if err != nil {
			h.badRequest(c, apperrors.NewValidationError("date", "must be formatted 2006-01-02"))
			return directory.Campus{}, "", time.Time{}, false
		}
		date = parsed
	}
	return campus, building, date, true
}

// rememberSearch records the lookup in the search history. History is
// a convenience, so failures only log.
func (h *Handler) rememberSearch(c *gin.Context, campus, building string, date time.Time) {
	entry := prefs.SearchEntry{
		Campus:   campus,
		Building: building,
		Date:     calendar.FormatDate(date),
	}
	if err := h.prefs.AddRecentSearch(c.Request.Context(), entry); err != nil {
		h.log.WithError(err).Warn("Failed to record search history")
	}
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.GetUserMessage(err)})
}

// internalError logs the full error and replies with its user-facing
// message only.
func (h *Handler) internalError(c *gin.Context, err error, logMessage string) {
	h.log.WithError(err).Error(logMessage)
	c.JSON(http.StatusInternalServerError, gin.H{"error": apperrors.GetUserMessage(err)})
}

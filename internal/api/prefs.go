package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/directory"
	apperrors "github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/errors"
	"github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/prefs"
)

type campusRequest struct {
	Campus string `json:"campus" binding:"required"`
}

type buildingRequest struct {
	Campus   string `json:"campus" binding:"required"`
	Building string `json:"building" binding:"required"`
}

type themeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// GetFavoriteCampus returns the preferred campus, empty when unset.
func (h *Handler) GetFavoriteCampus(c *gin.Context) {
	campus, err := h.prefs.FavoriteCampus(c.Request.Context())
	if err != nil {
		h.internalError(c, err, "Failed to read favorite campus")
		return
	}
	c.JSON(http.StatusOK, gin.H{"campus": campus})
}

// SetFavoriteCampus stores the preferred campus.
func (h *Handler) SetFavoriteCampus(c *gin.Context) {
	var req campusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, apperrors.NewValidationError("campus", "required"))
		return
	}
	if _, ok := directory.FindCampus(req.Campus); !ok {
		h.badRequest(c, fmt.Errorf("%w: %s", apperrors.ErrUnknownCampus, req.Campus))
		return
	}
	if err := h.prefs.SetFavoriteCampus(c.Request.Context(), req.Campus); err != nil {
		h.internalError(c, err, "Failed to store favorite campus")
		return
	}
	c.JSON(http.StatusOK, gin.H{"campus": req.Campus})
}

// GetFavoriteBuildings lists favorite buildings for a campus, most
// recently used first.
func (h *Handler) GetFavoriteBuildings(c *gin.Context) {
	campus, ok := h.requireCampus(c)
	if !ok {
		return
	}
	buildings, err := h.prefs.FavoriteBuildings(c.Request.Context(), campus.Name)
	if err != nil {
		h.internalError(c, err, "Failed to list favorite buildings")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"campus":    campus.Name,
		"buildings": buildings,
	})
}

// AddFavoriteBuilding adds (or refreshes) a favorite building.
func (h *Handler) AddFavoriteBuilding(c *gin.Context) {
	req, ok := h.bindBuilding(c)
	if !ok {
		return
	}
	if err := h.prefs.AddFavoriteBuilding(c.Request.Context(), req.Campus, req.Building); err != nil {
		h.internalError(c, err, "Failed to store favorite building")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"campus":   req.Campus,
		"building": req.Building,
	})
}

// RemoveFavoriteBuilding deletes a favorite building.
func (h *Handler) RemoveFavoriteBuilding(c *gin.Context) {
	req, ok := h.bindBuilding(c)
	if !ok {
		return
	}
	if err := h.prefs.RemoveFavoriteBuilding(c.Request.Context(), req.Campus, req.Building); err != nil {
		h.internalError(c, err, "Failed to remove favorite building")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) bindBuilding(c *gin.Context) (buildingRequest, bool) {
	var req buildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, apperrors.NewValidationError("body", "campus and building are required"))
		return buildingRequest{}, false
	}
	if !directory.HasBuilding(req.Campus, req.Building) {
		h.badRequest(c, apperrors.NewValidationError("building", "unknown building for "+req.Campus+": "+req.Building))
		return buildingRequest{}, false
	}
	return req, true
}

type searchRequest struct {
	Campus   string `json:"campus" binding:"required"`
	Building string `json:"building" binding:"required"`
	Date     string `json:"date" binding:"required"`
}

// AddRecentSearch records a lookup explicitly. Availability queries
// already record themselves; this lets clients sync history performed
// offline.
func (h *Handler) AddRecentSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, apperrors.NewValidationError("body", "campus, building and date are required"))
		return
	}
	if !directory.HasBuilding(req.Campus, req.Building) {
		h.badRequest(c, apperrors.NewValidationError("building", "unknown building for "+req.Campus+": "+req.Building))
		return
	}
	entry := prefs.SearchEntry{
		Campus:   req.Campus,
		Building: req.Building,
		Date:     req.Date,
	}
	if err := h.prefs.AddRecentSearch(c.Request.Context(), entry); err != nil {
		h.internalError(c, err, "Failed to record search history")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"campus":   req.Campus,
		"building": req.Building,
		"date":     req.Date,
	})
}

// GetRecentSearches lists the remembered lookups, most recent first.
func (h *Handler) GetRecentSearches(c *gin.Context) {
	entries, err := h.prefs.RecentSearches(c.Request.Context())
	if err != nil {
		h.internalError(c, err, "Failed to list recent searches")
		return
	}
	c.JSON(http.StatusOK, gin.H{"searches": entries})
}

// ClearRecentSearches deletes the whole search history.
func (h *Handler) ClearRecentSearches(c *gin.Context) {
	if err := h.prefs.ClearRecentSearches(c.Request.Context()); err != nil {
		h.internalError(c, err, "Failed to clear recent searches")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetThemeMode returns the stored theme mode.
func (h *Handler) GetThemeMode(c *gin.Context) {
	mode, err := h.prefs.ThemeMode(c.Request.Context())
	if err != nil {
		h.internalError(c, err, "Failed to read theme mode")
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": mode})
}

// SetThemeMode stores the theme mode.
func (h *Handler) SetThemeMode(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, apperrors.NewValidationError("mode", "required"))
		return
	}
	if err := h.prefs.SetThemeMode(c.Request.Context(), req.Mode); err != nil {
		switch req.Mode {
		case prefs.ThemeSystem, prefs.ThemeLight, prefs.ThemeDark:
			h.internalError(c, err, "Failed to store theme mode")
		default:
			h.badRequest(c, apperrors.NewValidationError("mode", "must be system, light or dark"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": req.Mode})
}

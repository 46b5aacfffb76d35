package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thurmanmarka/daylight"
	"github.com/thurmanmarka/daylight/internal/gazetteer"
	"github.com/thurmanmarka/daylight/pkg/logger"
)

// Handler wires the HTTP transport to the day-length engine and gazetteer.
type Handler struct {
	builder     *daylight.Builder
	places      gazetteer.Source
	granularity daylight.Granularity
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler. A nil log discards output.
func NewHandler(builder *daylight.Builder, places gazetteer.Source, granularity daylight.Granularity, log *slog.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	if granularity == "" {
		granularity = daylight.Weekly
	}
	return &Handler{
		builder:     builder,
		places:      places,
		granularity: granularity,
		logger:      log.With("component", "http.handler"),
	}
}

// Health reports liveness and how many years the builder has memoized.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "cachedYears": h.builder.CachedYears()})
}

// Places lists the gazetteer names.
func (h *Handler) Places(c *gin.Context) {
	names, err := h.places.Names(c.Request.Context())
	if err != nil {
		abortWithError(c, asHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"places": names})
}

type putPlaceRequest struct {
	Latitude *float64 `json:"latitude" binding:"required"`
}

// PutPlace adds or replaces a place when the gazetteer is writable.
func (h *Handler) PutPlace(c *gin.Context) {
	store, ok := h.places.(gazetteer.Store)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusMethodNotAllowed, "read_only", "gazetteer is read-only", nil))
		return
	}

	var req putPlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", err.Error(), err))
		return
	}

	name := c.Param("name")
	if err := store.Put(c.Request.Context(), name, *req.Latitude); err != nil {
		abortWithError(c, domainError(err))
		return
	}
	h.logger.Info("place stored", "name", name, "latitude", *req.Latitude)
	c.JSON(http.StatusOK, daylight.Location{Name: name, Latitude: *req.Latitude})
}

type dayLengthQuery struct {
	Lat *float64 `form:"lat" binding:"required"`
	Day *int     `form:"day" binding:"required"`
}

type dayLengthResponse struct {
	Day         int     `json:"day"`
	Label       string  `json:"label"`
	Latitude    float64 `json:"latitude"`
	Hours       float64 `json:"hours"`
	Formatted   string  `json:"formatted"`
	Declination float64 `json:"declination"` // degrees
	PolarNight  bool    `json:"polarNight"`
	PolarDay    bool    `json:"polarDay"`
}

// DayLength returns the day length for one latitude and day of year.
func (h *Handler) DayLength(c *gin.Context) {
	var q dayLengthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", err.Error(), err))
		return
	}

	hours, err := daylight.DayLength(*q.Day, *q.Lat)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	// Day and latitude are already validated by DayLength.
	label, _ := daylight.Label(*q.Day)
	decl, _ := daylight.Declination(*q.Day)
	polarNight, polarDay, _ := daylight.PolarCondition(*q.Day, *q.Lat)

	c.JSON(http.StatusOK, dayLengthResponse{
		Day:         *q.Day,
		Label:       label,
		Latitude:    *q.Lat,
		Hours:       hours,
		Formatted:   daylight.FormatDuration(hours),
		Declination: decl,
		PolarNight:  polarNight,
		PolarDay:    polarDay,
	})
}

type yearQuery struct {
	Lat   *float64 `form:"lat"`
	Place string   `form:"place"`
	Daily bool     `form:"daily"`
}

// Year returns the weekly, monthly and solstice series for a latitude or place.
func (h *Handler) Year(c *gin.Context) {
	var q yearQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", err.Error(), err))
		return
	}

	var loc daylight.Location
	switch {
	case q.Place != "":
		resolved, err := h.resolve(c, q.Place)
		if err != nil {
			abortWithError(c, domainError(err))
			return
		}
		loc = resolved
	case q.Lat != nil:
		loc = daylight.Location{Latitude: *q.Lat}
	default:
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "lat or place is required", nil))
		return
	}

	year, err := h.builder.Build(loc.Name, loc.Latitude)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	if !q.Daily {
		year.Daily = nil
	}
	c.JSON(http.StatusOK, year)
}

type compareQuery struct {
	Places      []string  `form:"place"`
	Lats        []float64 `form:"lat"`
	Granularity string    `form:"granularity"`
}

// Compare aligns up to the configured number of places and latitudes.
// Places come first in the column order, then bare latitudes.
func (h *Handler) Compare(c *gin.Context) {
	var q compareQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", err.Error(), err))
		return
	}

	g := h.granularity
	if q.Granularity != "" {
		parsed, err := daylight.ParseGranularity(q.Granularity)
		if err != nil {
			abortWithError(c, domainError(err))
			return
		}
		g = parsed
	}

	locations := make([]daylight.Location, 0, len(q.Places)+len(q.Lats))
	for _, name := range q.Places {
		loc, err := h.resolve(c, name)
		if err != nil {
			abortWithError(c, domainError(err))
			return
		}
		locations = append(locations, loc)
	}
	for _, lat := range q.Lats {
		locations = append(locations, daylight.Location{Latitude: lat})
	}

	cmp, err := h.builder.Compare(c.Request.Context(), locations, g)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, cmp)
}

func (h *Handler) resolve(c *gin.Context, name string) (daylight.Location, error) {
	place, err := h.places.Resolve(c.Request.Context(), name)
	if err != nil {
		return daylight.Location{}, err
	}
	return daylight.Location{Name: place.Name, Latitude: place.Latitude}, nil
}

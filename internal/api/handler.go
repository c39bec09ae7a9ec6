package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-wildfire-watch/internal/declare"
	"github.com/mr1hm/go-wildfire-watch/internal/feed"
	"github.com/mr1hm/go-wildfire-watch/internal/filter"
	"github.com/mr1hm/go-wildfire-watch/internal/models"
	"github.com/mr1hm/go-wildfire-watch/internal/notify"
	"github.com/mr1hm/go-wildfire-watch/internal/picker"
	"github.com/mr1hm/go-wildfire-watch/internal/predict"
	"github.com/mr1hm/go-wildfire-watch/internal/repository"
	"github.com/mr1hm/go-wildfire-watch/internal/search"
	"github.com/mr1hm/go-wildfire-watch/internal/settings"
)

const streamPath = "/api/notifications/stream"

// Each request builds its own screen state; only the reference data, the
// notifier and the broadcaster are shared.
type Handler struct {
	ref         repository.ReferenceData
	notifier    notify.Notifier
	broadcaster *notify.Broadcaster
	now         func() time.Time
}

// NewHandler wires the screens to ref. notifier and broadcaster may be nil.
func NewHandler(ref repository.ReferenceData, notifier notify.Notifier, broadcaster *notify.Broadcaster) *Handler {
	return &Handler{
		ref:         ref,
		notifier:    notifier,
		broadcaster: broadcaster,
		now:         time.Now,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)

	api := r.Group("/api")
	api.GET("/wildfires", h.getWildfires)
	api.GET("/wildfires/map", h.getWildfireMap)
	api.GET("/wildfires/:id", h.getWildfire)
	api.GET("/search", h.search)

	api.GET("/reference/countries", h.getCountries)
	api.GET("/reference/severities", h.getSeverities)

	api.GET("/declare/options", h.getDeclareOptions)
	api.POST("/declarations", h.createDeclaration)

	api.POST("/predictions", h.createPrediction)

	api.GET("/settings", h.getSettings)
	api.POST("/settings/clear-cache", h.clearCache)
	api.POST("/settings/feedback", h.sendFeedback)

	r.GET(streamPath, h.streamNotifications)
}

// requestNotifier records what a screen reports during one request so it can
// be returned in the response, and forwards it to the shared notifier.
func (h *Handler) requestNotifier() (*notify.Recorder, notify.Notifier) {
	rec := &notify.Recorder{}
	return rec, notify.Multi(rec, h.notifier)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) getWildfires(c *gin.Context) {
	wildfires, err := h.ref.Wildfires(c.Request.Context())
	if err != nil {
		slog.Error("failed to load wildfires", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch wildfires",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wildfires": feed.Items(wildfires, h.now()),
	})
}

func (h *Handler) getWildfireMap(c *gin.Context) {
	wildfires, err := h.ref.Wildfires(c.Request.Context())
	if err != nil {
		slog.Error("failed to load wildfires", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch wildfires",
		})
		return
	}

	fc := toGeoJSON(wildfires)
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

func (h *Handler) getWildfire(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "id must be a number",
		})
		return
	}

	w, err := h.ref.WildfireByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "wildfire not found",
		})
		return
	}
	if err != nil {
		slog.Error("failed to load wildfire", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch wildfire",
		})
		return
	}

	c.JSON(http.StatusOK, w)
}

type searchQuery struct {
	Country  string `form:"country"`
	Severity string `form:"severity"`
	From     string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

func (h *Handler) search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "dates must be formatted YYYY-MM-DD",
		})
		return
	}

	severity := matchAll(q.Severity, filter.AllSeverities)
	if severity != filter.AllSeverities && !models.Severity(severity).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown severity: " + q.Severity,
		})
		return
	}

	screen := search.NewScreen()
	screen.SelectCountry(matchAll(q.Country, filter.AllCountries))
	screen.SelectSeverity(severity)

	today := civil.DateOf(h.now())
	if q.From != "" {
		screen.PickFromDate(confirmDate(q.From), today)
	}
	if q.To != "" {
		screen.PickToDate(confirmDate(q.To), today)
	}

	wildfires, err := h.ref.Wildfires(c.Request.Context())
	if err != nil {
		slog.Error("failed to load wildfires", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch wildfires",
		})
		return
	}

	results := screen.Run(wildfires)
	c.JSON(http.StatusOK, gin.H{
		"criteria": gin.H{
			"country":  screen.Criteria.Country,
			"severity": screen.Criteria.Severity,
			"from":     screen.Criteria.From,
			"to":       screen.Criteria.To,
		},
		"count":   len(results),
		"results": results,
	})
}

// matchAll maps the picker's "all" value and an absent parameter to label.
func matchAll(value, label string) string {
	if value == "" || strings.EqualFold(value, "all") {
		return label
	}
	return value
}

// confirmDate stands in for the date picker: the client already chose the
// date, so the picker confirms it. s has been validated by the binding.
func confirmDate(s string) picker.DatePicker {
	return picker.DatePickerFunc(func(initial civil.Date, mode picker.Mode) (civil.Date, bool) {
		d, err := civil.ParseDate(s)
		if err != nil {
			return initial, false
		}
		return d, true
	})
}

func (h *Handler) getCountries(c *gin.Context) {
	countries, err := h.ref.Countries(c.Request.Context())
	if err != nil {
		slog.Error("failed to load countries", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch countries",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"all":       filter.AllCountries,
		"countries": countries,
	})
}

func (h *Handler) getSeverities(c *gin.Context) {
	severities, err := h.ref.Severities(c.Request.Context())
	if err != nil {
		slog.Error("failed to load severities", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch severities",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"all":        filter.AllSeverities,
		"severities": severities,
	})
}

func (h *Handler) getDeclareOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"default": declare.NotApplicable,
		"options": declare.AllOptions(),
	})
}

type declarationRequest struct {
	Location              string `json:"location"`
	RateOfSpread          string `json:"rate_of_spread"`
	Wind                  string `json:"wind"`
	VegetationDensity     string `json:"vegetation_density"`
	ProximityToStructures string `json:"proximity_to_structures"`
	Hazardous             bool   `json:"hazardous"`
	Emergency             bool   `json:"emergency"`
}

func (h *Handler) createDeclaration(c *gin.Context) {
	var req declarationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body",
		})
		return
	}

	form := declare.NewForm()
	form.SetLocation(req.Location)

	selections := map[declare.Field]string{
		declare.FieldRateOfSpread: req.RateOfSpread,
		declare.FieldWind:         req.Wind,
		declare.FieldVegetation:   req.VegetationDensity,
		declare.FieldProximity:    req.ProximityToStructures,
	}
	for _, field := range declare.Fields {
		value := selections[field]
		if value == "" {
			continue
		}
		if err := form.Select(field, value); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
	}
	if req.Hazardous {
		form.ToggleHazardous()
	}
	if req.Emergency {
		form.ToggleEmergency()
	}

	rec, n := h.requestNotifier()
	d, err := form.Submit(n)
	msg, _ := rec.Last()

	if errors.Is(err, declare.ErrMissingLocation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":        err.Error(),
			"notification": msg,
		})
		return
	}
	if err != nil {
		slog.Error("failed to submit declaration", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to submit declaration",
		})
		return
	}

	slog.Info("declaration submitted", "id", d.ID, "emergency", d.Emergency)
	c.JSON(http.StatusCreated, gin.H{
		"declaration":  d,
		"notification": msg,
	})
}

func (h *Handler) createPrediction(c *gin.Context) {
	var form predict.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid request body",
		})
		return
	}

	rec, n := h.requestNotifier()
	in, err := form.Submit(n)
	msg, _ := rec.Last()

	if errors.Is(err, predict.ErrInvalidInput) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":        err.Error(),
			"notification": msg,
		})
		return
	}
	if err != nil {
		slog.Error("failed to submit prediction input", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to submit prediction input",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"input":        in,
		"notification": msg,
	})
}

func (h *Handler) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"settings": settings.NewScreen(),
		"links":    settings.Links,
	})
}

type clearCacheQuery struct {
	Confirm bool `form:"confirm"`
}

func (h *Handler) clearCache(c *gin.Context) {
	var q clearCacheQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "confirm must be true or false",
		})
		return
	}

	rec, n := h.requestNotifier()
	confirm := settings.ConfirmerFunc(func(title, body string) bool { return q.Confirm })
	cleared := settings.NewScreen().ClearCache(confirm, n)

	resp := gin.H{"cleared": cleared}
	if msg, ok := rec.Last(); ok {
		resp["notification"] = msg
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) sendFeedback(c *gin.Context) {
	rec, n := h.requestNotifier()
	settings.NewScreen().SendFeedback(n)

	msg, _ := rec.Last()
	c.JSON(http.StatusOK, gin.H{
		"notification": msg,
	})
}

func (h *Handler) streamNotifications(c *gin.Context) {
	if h.broadcaster == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "notification stream unavailable",
		})
		return
	}

	id, ch := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(id)

	slog.Info("client subscribed to notification stream", "subscriber_id", id)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			slog.Info("client disconnected from notification stream", "subscriber_id", id)
			return false
		case n, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("notification", n)
			return true
		}
	})
}

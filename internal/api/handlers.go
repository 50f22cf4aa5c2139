package api

import (
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/labstack/echo/v4"

	"scentboard/internal/config"
	"scentboard/internal/engine"
)

// Handler serves the dashboard views. The store pointer starts nil and is
// swapped in once the background load finishes; until then every data
// route answers 503 so the server can bind before the CSV is parsed.
type Handler struct {
	store atomic.Pointer[engine.ColumnStore]
	cfg   config.Config
}

func NewHandler(cfg config.Config) *Handler {
	return &Handler{cfg: cfg}
}

// SetStore publishes the loaded dataset to the live API.
func (h *Handler) SetStore(cs *engine.ColumnStore) {
	h.store.Store(cs)
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/summary", h.GetSummary)
	api.GET("/overview", h.GetOverview)
	api.GET("/ratings", h.GetRatings)
	api.GET("/brands", h.GetBrands)
	api.GET("/geography", h.GetGeography)
	api.GET("/notes", h.GetNotes)
	api.GET("/facets", h.GetFacets)
}

var errLoading = echo.NewHTTPError(http.StatusServiceUnavailable, "dataset is still loading")

// view builds the filtered view for a request. Repeated brand/country/
// gender query params form the selection; none selected means the full
// dataset.
func (h *Handler) view(c echo.Context) (engine.View, error) {
	cs := h.store.Load()
	if cs == nil {
		return engine.View{}, errLoading
	}
	sel := engine.Selection{
		Brands:    c.QueryParams()["brand"],
		Countries: c.QueryParams()["country"],
		Genders:   c.QueryParams()["gender"],
	}
	return engine.Filter(cs, sel), nil
}

// limitParam reads an optional ?limit= override for top-N lists.
func limitParam(c echo.Context, def int) int {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		return def
	}
	return limit
}

// --- HANDLERS ---

func (h *Handler) GetSummary(c echo.Context) error {
	v, err := h.view(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.Summary(v))
}

func (h *Handler) GetOverview(c echo.Context) error {
	v, err := h.view(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.Overview(v))
}

func (h *Handler) GetRatings(c echo.Context) error {
	v, err := h.view(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.Ratings(v, limitParam(c, h.cfg.TopRecords)))
}

func (h *Handler) GetBrands(c echo.Context) error {
	v, err := h.view(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.Brands(v, limitParam(c, h.cfg.TopGroups), h.cfg.MinBrandSample))
}

func (h *Handler) GetGeography(c echo.Context) error {
	v, err := h.view(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.Geography(v, limitParam(c, h.cfg.TopGroups), h.cfg.MinBrandSample))
}

func (h *Handler) GetNotes(c echo.Context) error {
	v, err := h.view(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, engine.Notes(v, limitParam(c, h.cfg.TopNotes)))
}

func (h *Handler) GetFacets(c echo.Context) error {
	cs := h.store.Load()
	if cs == nil {
		return errLoading
	}
	return c.JSON(http.StatusOK, engine.Facets(cs))
}

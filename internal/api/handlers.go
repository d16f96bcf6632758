// ABOUTME: HTTP handlers for items, days and portions.
// ABOUTME: Each handler validates input, calls the repository and wraps the result in the envelope.
package api

import (
	"errors"
	"strconv"

	"github.com/harperreed/pyramid/internal/logger"
	"github.com/harperreed/pyramid/internal/models"
	"github.com/harperreed/pyramid/internal/storage"
	"github.com/labstack/echo/v4"
)

// Handler serves the /api routes on top of a Repository.
type Handler struct {
	repo    storage.Repository
	logger  *logger.Logger
	metrics *metrics
}

// NewHandler creates a new API handler.
func NewHandler(repo storage.Repository, log *logger.Logger, m *metrics) *Handler {
	return &Handler{repo: repo, logger: log, metrics: m}
}

// DayView is a day together with its per-item portion counts.
type DayView struct {
	Day      models.Day           `json:"day"`
	Portions []models.ItemPortion `json:"portions"`
}

// ListItems returns the catalog in tier/item_order order.
func (h *Handler) ListItems(c echo.Context) error {
	items, err := h.repo.ListItems()
	if err != nil {
		return err
	}
	models.SortItems(items)
	return respondOK(c, items, "")
}

// CreateItem adds an item to the catalog.
func (h *Handler) CreateItem(c echo.Context) error {
	var req ItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.repo.CreateItem(req.Label, *req.RecommendedPortions, *req.Tier, *req.ItemOrder)
	if err != nil {
		return err
	}
	h.logger.Infow("item created", "id", id, "label", req.Label)
	return respondOK(c, IDResult{ID: id}, "item created")
}

// GetItem returns one item or 404.
func (h *Handler) GetItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	item, err := h.repo.GetItem(id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound()
	}
	if err != nil {
		return err
	}
	return respondOK(c, item, "")
}

// UpdateItem replaces an item's fields. Unknown ids succeed without effect.
func (h *Handler) UpdateItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req ItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.repo.UpdateItem(id, req.Label, *req.RecommendedPortions, *req.Tier, *req.ItemOrder); err != nil {
		return err
	}
	return respondOK(c, IDResult{ID: id}, "item updated")
}

// DeleteItem removes an item and its portions from every day.
func (h *Handler) DeleteItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.repo.DeleteItem(id); err != nil {
		return err
	}
	h.logger.Infow("item deleted", "id", id)
	return respondOK(c, IDResult{ID: id}, "item deleted")
}

// ListDays returns every day, or with ?date= the matching day and its portions.
func (h *Handler) ListDays(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		days, err := h.repo.ListDays()
		if err != nil {
			return err
		}
		return respondOK(c, days, "")
	}

	if !models.ValidDate(date) {
		return badRequest("invalid date")
	}

	dayID := models.DateToID(date)
	day, err := h.repo.GetDay(dayID)
	if errors.Is(err, storage.ErrNotFound) {
		return respondOK(c, nil, "no entry for this day")
	}
	if err != nil {
		return err
	}

	view, err := h.dayView(*day)
	if err != nil {
		return err
	}
	return respondOK(c, view, "")
}

// CreateDay upserts a day, prunes other empty days and returns its portions.
func (h *Handler) CreateDay(c echo.Context) error {
	var req DayRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	dayID, err := h.repo.UpsertDay(req.Date)
	if err != nil {
		return err
	}

	removed, err := h.repo.CleanupEmptyDays([]string{req.Date})
	if err != nil {
		return err
	}
	if removed > 0 {
		h.logger.Debugw("pruned empty days", "removed", removed, "kept", req.Date)
	}

	view, err := h.dayView(models.Day{ID: dayID, EntryDate: req.Date})
	if err != nil {
		return err
	}
	return respondOK(c, view, "day ready")
}

// GetDay returns a day and its portions or 404.
func (h *Handler) GetDay(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	day, err := h.repo.GetDay(id)
	if errors.Is(err, storage.ErrNotFound) {
		return notFound()
	}
	if err != nil {
		return err
	}

	view, err := h.dayView(*day)
	if err != nil {
		return err
	}
	return respondOK(c, view, "")
}

// UpdateDay moves a day to a new date.
func (h *Handler) UpdateDay(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req DayRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.repo.UpdateDay(id, req.Date); err != nil {
		return err
	}
	return respondOK(c, RenameResult{ID: models.DateToID(req.Date), EntryDate: req.Date}, "day updated")
}

// DeleteDay removes a day. Missing days succeed.
func (h *Handler) DeleteDay(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.repo.DeleteDay(id); err != nil {
		return err
	}
	return respondOK(c, IDResult{ID: id}, "day deleted")
}

// ListPortions returns the day's portions, creating zero rows as needed.
func (h *Handler) ListPortions(c echo.Context) error {
	dayID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.repo.EnsurePortionRows(dayID); err != nil {
		return err
	}
	portions, err := h.repo.GetPortionsForDay(dayID)
	if err != nil {
		return err
	}
	return respondOK(c, portions, "")
}

// IncrementPortion adds delta to an item's count, never going below zero.
func (h *Handler) IncrementPortion(c echo.Context) error {
	dayID, err := pathID(c)
	if err != nil {
		return err
	}

	var req IncrementRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	value, err := h.repo.IncrementPortion(dayID, *req.ItemID, *req.Delta)
	if err != nil {
		return err
	}
	h.metrics.portionUpdated("increment")
	return respondOK(c, PortionResult{ItemID: *req.ItemID, Portions: value}, "portions updated")
}

// SetPortion stores an absolute count, clamped to zero.
func (h *Handler) SetPortion(c echo.Context) error {
	dayID, err := pathID(c)
	if err != nil {
		return err
	}

	var req SetPortionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	value, err := h.repo.SetPortion(dayID, *req.ItemID, max(*req.Portions, 0))
	if err != nil {
		return err
	}
	h.metrics.portionUpdated("set")
	return respondOK(c, PortionResult{ItemID: *req.ItemID, Portions: value}, "portions set")
}

// ResetPortion sets ?itemId= back to zero.
func (h *Handler) ResetPortion(c echo.Context) error {
	dayID, err := pathID(c)
	if err != nil {
		return err
	}

	itemID, err := strconv.Atoi(c.QueryParam("itemId"))
	if err != nil {
		return badRequest("invalid item id")
	}

	if _, err := h.repo.SetPortion(dayID, itemID, 0); err != nil {
		return err
	}
	h.metrics.portionUpdated("reset")
	return respondOK(c, PortionResult{ItemID: itemID, Portions: 0}, "portions reset")
}

// dayView ensures every catalog item has a row and loads the portions.
func (h *Handler) dayView(day models.Day) (*DayView, error) {
	if err := h.repo.EnsurePortionRows(day.ID); err != nil {
		return nil, err
	}
	portions, err := h.repo.GetPortionsForDay(day.ID)
	if err != nil {
		return nil, err
	}
	return &DayView{Day: day, Portions: portions}, nil
}

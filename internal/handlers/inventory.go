package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/stockroom/apiserver/internal/services"
	"github.com/stockroom/apiserver/internal/store"
	"github.com/stockroom/apiserver/types"
)

// InventoryHandler provides HTTP handlers for inventory items.
type InventoryHandler struct {
	inventoryService *services.InventoryService
}

// NewInventoryHandler constructs a handler with the provided service.
func NewInventoryHandler(inventoryService *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// InventoryRouter registers inventory routes on the given router. The caller
// is expected to mount the session middleware first.
func InventoryRouter(r chi.Router, inventoryService *services.InventoryService) {
	handler := NewInventoryHandler(inventoryService)

	r.Get("/", handler.ListItems)
	r.Post("/", handler.CreateItem)
	r.Route("/{itemID}", func(r chi.Router) {
		r.Put("/", handler.UpdateItem)
		r.Delete("/", handler.DeleteItem)
	})
}

// ListItems returns the inventory, filtered by the "search" query parameter
// (case-insensitive name substring) and ordered by the "sort" parameter.
func (h *InventoryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	sortKey := r.URL.Query().Get("sort")

	items, err := h.inventoryService.List(r.Context(), search, sortKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list inventory")
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// CreateItem inserts a new inventory item and returns it with its id.
func (h *InventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	fields, err := parseItemFields(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.inventoryService.Insert(r.Context(), fields)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// UpdateItem replaces all four mutable fields of the addressed item.
func (h *InventoryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseItemID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	fields, err := parseItemFields(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.inventoryService.Update(r.Context(), id, fields); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "item updated"})
}

// DeleteItem removes the addressed item. Deleting an id that no longer
// exists still succeeds, so repeated deletes are idempotent.
func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseItemID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.inventoryService.Delete(r.Context(), id); err != nil && !errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "item deleted"})
}

func parseItemID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "itemID")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid item id")
	}
	return id, nil
}

func parseItemFields(r *http.Request) (types.ItemFields, error) {
	var fields types.ItemFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		return types.ItemFields{}, errors.New("invalid request")
	}

	fields.Name = strings.TrimSpace(fields.Name)
	if fields.Name == "" {
		return types.ItemFields{}, errors.New("name is required")
	}
	if fields.Quantity < 0 {
		return types.ItemFields{}, errors.New("quantity must not be negative")
	}
	if fields.Price < 0 {
		return types.ItemFields{}, errors.New("price must not be negative")
	}
	return fields, nil
}

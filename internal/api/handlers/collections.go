package handlers

import (
	"net/http"
)

type collectionInput struct {
	Name string `json:"name"`
}

func (h *Handler) ListCollections(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Vault.ListCollections(r.Context(), currentSession(r).UserID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "OK", rows)
}

// CreateCollection godoc
// @Summary Add a collection
// @Tags Collections
// @Accept json
// @Produce json
// @Param body body collectionInput true "Collection"
// @Success 201 {object} utils.Payload
// @Router /api/v1/collections [post]
func (h *Handler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var input collectionInput
	if !decode(w, r, &input) {
		return
	}
	c, err := h.Vault.CreateCollection(r.Context(), currentSession(r).UserID, input.Name)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusCreated, "Collection saved", c)
}

// DeleteCollection godoc
// @Summary Remove a collection; its assets are kept
// @Tags Collections
// @Produce json
// @Param id path string true "Collection ID"
// @Success 200 {object} utils.Payload
// @Router /api/v1/collections/{id} [delete]
func (h *Handler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	if err := h.Vault.DeleteCollection(r.Context(), currentSession(r).UserID, id); err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "Collection removed", nil)
}

package handlers

import (
	"net/http"

	"github.com/rohits-web03/safehands/internal/services"
)

// ListAssets godoc
// @Summary Digital assets, newest first
// @Tags Assets
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/v1/assets [get]
func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Vault.ListAssets(r.Context(), currentSession(r).UserID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "OK", rows)
}

// CreateAsset godoc
// @Summary Add a digital asset
// @Tags Assets
// @Accept json
// @Produce json
// @Param body body services.AssetInput true "Asset"
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/assets [post]
func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var input services.AssetInput
	if !decode(w, r, &input) {
		return
	}
	a, err := h.Vault.CreateAsset(r.Context(), currentSession(r).UserID, input)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusCreated, "Asset saved", a)
}

func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	a, err := h.Vault.GetAsset(r.Context(), currentSession(r).UserID, id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "OK", a)
}

// UpdateAsset godoc
// @Summary Change an asset's name, type, notes or collection
// @Tags Assets
// @Accept json
// @Produce json
// @Param id path string true "Asset ID"
// @Param body body services.AssetPatch true "Fields to change"
// @Success 200 {object} utils.Payload
// @Router /api/v1/assets/{id} [patch]
func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	var input services.AssetPatch
	if !decode(w, r, &input) {
		return
	}
	a, err := h.Vault.UpdateAsset(r.Context(), currentSession(r).UserID, id, input)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "Asset updated", a)
}

// DeleteAsset godoc
// @Summary Remove an asset, its assignments and its stored file
// @Tags Assets
// @Produce json
// @Param id path string true "Asset ID"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/v1/assets/{id} [delete]
func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	deleted, err := h.Vault.DeleteAsset(r.Context(), currentSession(r).UserID, id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.Files.Discard(r.Context(), deleted); err != nil {
		h.Log.Warn().Err(err).Str("asset", deleted.ID.String()).Msg("discard asset file")
	}
	ok(w, http.StatusOK, "Asset removed", nil)
}

// UnassignedAssets godoc
// @Summary Assets no contact is assigned to
// @Tags Assets
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/v1/assets/unassigned [get]
func (h *Handler) UnassignedAssets(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Assignments.UnassignedAssets(r.Context(), currentSession(r).UserID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "OK", rows)
}

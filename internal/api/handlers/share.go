package handlers

import (
	"net/http"
)

// ContactsForAsset godoc
// @Summary Contacts an asset is shared with, in assignment order
// @Description The per-asset view of assignments: which trusted contacts receive the asset and with what intent.
// @Tags Sharing
// @Produce json
// @Param id path string true "Asset ID"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/v1/assets/{id}/contacts [get]
func (h *Handler) ContactsForAsset(w http.ResponseWriter, r *http.Request) {
	assetID, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	rows, err := h.Assignments.ContactsForAsset(r.Context(), currentSession(r).UserID, assetID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "OK", rows)
}

// ShareWithContact godoc
// @Summary Toggle a contact on for an asset
// @Description Reattaching a contact keeps the intent it had before; a first-time link starts as keep_and_share.
// @Tags Sharing
// @Produce json
// @Param id path string true "Asset ID"
// @Param contactID path string true "Contact ID"
// @Success 200 {object} utils.Payload
// @Router /api/v1/assets/{id}/contacts/{contactID} [put]
func (h *Handler) ShareWithContact(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, true)
}

// UnshareWithContact godoc
// @Summary Toggle a contact off for an asset
// @Tags Sharing
// @Produce json
// @Param id path string true "Asset ID"
// @Param contactID path string true "Contact ID"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/v1/assets/{id}/contacts/{contactID} [delete]
func (h *Handler) UnshareWithContact(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, false)
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, on bool) {
	assetID, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	contactID, valid := pathID(w, r, "contactID")
	if !valid {
		return
	}
	row, err := h.Assignments.Toggle(r.Context(), currentSession(r).UserID, assetID, contactID, on)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	msg := "Contact attached"
	if !on {
		msg = "Contact detached"
	}
	ok(w, http.StatusOK, msg, row)
}

type assetIntentInput struct {
	IntentAction string `json:"intentAction"`
}

// SetAssetIntent godoc
// @Summary Set one intent on every contact of an asset
// @Tags Sharing
// @Accept json
// @Produce json
// @Param id path string true "Asset ID"
// @Param body body assetIntentInput true "Intent"
// @Success 200 {object} utils.Payload
// @Failure 409 {object} utils.Payload "Asset has no contacts"
// @Router /api/v1/assets/{id}/intent [put]
func (h *Handler) SetAssetIntent(w http.ResponseWriter, r *http.Request) {
	assetID, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	var input assetIntentInput
	if !decode(w, r, &input) {
		return
	}
	rows, err := h.Assignments.SetAssetIntent(r.Context(), currentSession(r).UserID, assetID, input.IntentAction)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "Intent saved", rows)
}

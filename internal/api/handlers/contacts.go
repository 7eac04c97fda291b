package handlers

import (
	"net/http"

	"github.com/rohits-web03/safehands/internal/services"
)

// ListContacts godoc
// @Summary Trusted contacts, newest first
// @Tags Contacts
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/v1/contacts [get]
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Vault.ListContacts(r.Context(), currentSession(r).UserID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "OK", rows)
}

// CreateContact godoc
// @Summary Add a trusted contact
// @Tags Contacts
// @Accept json
// @Produce json
// @Param body body services.ContactInput true "Contact"
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/contacts [post]
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var input services.ContactInput
	if !decode(w, r, &input) {
		return
	}
	c, err := h.Vault.CreateContact(r.Context(), currentSession(r).UserID, input)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusCreated, "Contact saved", c)
}

// DeleteContact godoc
// @Summary Remove a contact and every assignment to it
// @Tags Contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/v1/contacts/{id} [delete]
func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	if err := h.Vault.DeleteContact(r.Context(), currentSession(r).UserID, id); err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "Contact removed", nil)
}

// GET /api/v1/contacts/{id}/assets
func (h *Handler) AssetsForContact(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	rows, err := h.Assignments.AssetsForContact(r.Context(), currentSession(r).UserID, id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "OK", map[string]any{"count": len(rows), "assets": rows})
}

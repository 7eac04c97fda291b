package handlers

import (
	"net/http"

	"github.com/google/uuid"
)

type assignmentInput struct {
	AssetID      uuid.UUID `json:"assetId"`
	ContactID    uuid.UUID `json:"contactId"`
	IntentAction *string   `json:"intentAction"`
}

type intentInput struct {
	IntentAction *string `json:"intentAction"`
}

func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Assignments.List(r.Context(), currentSession(r).UserID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "OK", rows)
}

// CreateAssignment godoc
// @Summary Assign an asset to a contact
// @Tags Assignments
// @Accept json
// @Produce json
// @Param body body assignmentInput true "Assignment"
// @Success 201 {object} utils.Payload
// @Failure 409 {object} utils.Payload
// @Router /api/v1/assignments [post]
func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var input assignmentInput
	if !decode(w, r, &input) {
		return
	}
	a, err := h.Assignments.Create(r.Context(), currentSession(r).UserID, input.AssetID, input.ContactID, input.IntentAction)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusCreated, "Assignment saved", a)
}

// UpdateAssignment godoc
// @Summary Change or clear the intent of an assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param body body intentInput true "Intent; null clears it"
// @Success 200 {object} utils.Payload
// @Router /api/v1/assignments/{id} [patch]
func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	var input intentInput
	if !decode(w, r, &input) {
		return
	}
	a, err := h.Assignments.UpdateIntent(r.Context(), currentSession(r).UserID, id, input.IntentAction)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "Intent saved", a)
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	if err := h.Assignments.Delete(r.Context(), currentSession(r).UserID, id); err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "Assignment removed", nil)
}

// GET /api/v1/assignments/missing-intent
func (h *Handler) MissingIntent(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Assignments.MissingIntent(r.Context(), currentSession(r).UserID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "OK", rows)
}

package handlers

import (
	"net/http"
)

// GetIntentions godoc
// @Summary Completeness score, reflection prompts and the state they derive from
// @Tags Intentions
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/v1/intentions [get]
func (h *Handler) GetIntentions(w http.ResponseWriter, r *http.Request) {
	view, err := h.Intentions.View(r.Context(), currentSession(r).UserID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "OK", view)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/rohits-web03/safehands/internal/services"
)

type waitlistInput struct {
	Email string `json:"email"`
}

// JoinWaitlist godoc
// @Summary Join the waitlist
// @Description Joining twice is reported as success ("Already on the list!").
// @Tags Waitlist
// @Accept json
// @Produce json
// @Param body body waitlistInput true "Email"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Failure 503 {object} utils.Payload
// @Router /api/v1/waitlist [post]
func (h *Handler) JoinWaitlist(w http.ResponseWriter, r *http.Request) {
	var input waitlistInput
	if !decode(w, r, &input) {
		return
	}
	res, err := h.Waitlist.Join(r.Context(), input.Email)
	if errors.Is(err, services.ErrPersistenceDisabled) {
		fail(w, http.StatusServiceUnavailable, "The waitlist is unavailable right now; your email was not saved.")
		return
	}
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, res.Message, res)
}

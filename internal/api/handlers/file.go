package handlers

import (
	"net/http"
)

type presignInput struct {
	Filename string `json:"filename"`
}

type completeInput struct {
	Key string `json:"key"`
}

// PresignUpload godoc
// @Summary Get a presigned upload URL for an asset file
// @Description The client PUTs the file to the returned URL, then calls /file/complete with the key.
// @Tags Files
// @Accept json
// @Produce json
// @Param id path string true "Asset ID"
// @Param body body presignInput true "Original file name"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Failure 503 {object} utils.Payload
// @Router /api/v1/assets/{id}/file/presign [post]
func (h *Handler) PresignUpload(w http.ResponseWriter, r *http.Request) {
	assetID, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	var input presignInput
	if !decode(w, r, &input) {
		return
	}

	up, err := h.Files.PresignUpload(r.Context(), currentSession(r).UserID, assetID, input.Filename)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "Presigned upload URL generated", up)
}

// CompleteUpload godoc
// @Summary Attach an uploaded file to its asset
// @Tags Files
// @Accept json
// @Produce json
// @Param id path string true "Asset ID"
// @Param body body completeInput true "Object key from presign"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/assets/{id}/file/complete [post]
func (h *Handler) CompleteUpload(w http.ResponseWriter, r *http.Request) {
	assetID, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	var input completeInput
	if !decode(w, r, &input) {
		return
	}

	asset, err := h.Files.CompleteUpload(r.Context(), currentSession(r).UserID, assetID, input.Key)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "Upload completed", asset)
}

// PresignDownload godoc
// @Summary Get a presigned download URL for an asset file
// @Tags Files
// @Produce json
// @Param id path string true "Asset ID"
// @Success 200 {object} utils.Payload
// @Router /api/v1/assets/{id}/file [get]
func (h *Handler) PresignDownload(w http.ResponseWriter, r *http.Request) {
	assetID, valid := pathID(w, r, "id")
	if !valid {
		return
	}
	dl, err := h.Files.PresignDownload(r.Context(), currentSession(r).UserID, assetID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	ok(w, http.StatusOK, "Presigned download URL generated", dl)
}

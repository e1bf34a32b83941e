package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"spill/helpers"
	"spill/services"
)

// MediaSource serves stored photos by key.
type MediaSource interface {
	Get(key string) (contentType string, data []byte, err error)
}

// MediaController serves photos kept by the in-memory photo store. With S3
// the bucket or its CDN serves them instead.
type MediaController struct {
	Source MediaSource
}

func NewMediaController(source MediaSource) *MediaController {
	return &MediaController{Source: source}
}

func (c *MediaController) GetMedia(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	contentType, data, err := c.Source.Get(key)
	if errors.Is(err, services.ErrPhotoNotFound) {
		helpers.WriteErrorResponse(w, http.StatusNotFound, "Photo not found")
		return
	}
	if err != nil {
		helpers.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to load photo")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

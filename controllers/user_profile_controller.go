package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"slices"

	"go.uber.org/zap"

	"spill/helpers"
	"spill/middleware"
	"spill/models"
	"spill/profile"
	"spill/services"
)

const maxMultipartMemory = 32 << 20

// UserProfileController serves the signed-in user's own profile.
type UserProfileController struct {
	UserProfileService *services.UserProfileService
	MaxAttachmentBytes int64
	Logger             *zap.Logger
}

func NewUserProfileController(userProfileService *services.UserProfileService, maxAttachmentBytes int64, logger *zap.Logger) *UserProfileController {
	if maxAttachmentBytes <= 0 {
		maxAttachmentBytes = models.MaxAttachmentBytes
	}
	return &UserProfileController{
		UserProfileService: userProfileService,
		MaxAttachmentBytes: maxAttachmentBytes,
		Logger:             logger,
	}
}

// GetMe returns the stored profile.
func (c *UserProfileController) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	record, err := c.UserProfileService.GetProfile(r.Context(), user.ID)
	if errors.Is(err, services.ErrUserNotFound) {
		helpers.WriteErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		c.Logger.Error("failed to load profile", zap.Int64("user_id", user.ID), zap.Error(err))
		helpers.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, userResponse{User: record})
}

// UpdateMe applies a partial update sent either as a JSON body or as
// multipart/form-data with one JSON-encoded value per field plus photo files.
func (c *UserProfileController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	update, photos, err := c.decodeUpdate(r)
	if err != nil {
		c.Logger.Info("rejected update payload", zap.Int64("user_id", user.ID), zap.Error(err))
		helpers.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	validated, err := profile.Validate(update)
	if err != nil {
		var verr *profile.ValidationError
		if errors.As(err, &verr) {
			helpers.WriteJSONResponse(w, http.StatusUnprocessableEntity, helpers.ErrorResponse{
				Detail: verr.Error(),
				Errors: verr.Fields,
			})
			return
		}
		helpers.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := c.UserProfileService.UpdateProfile(r.Context(), user.ID, *validated, photos)
	if errors.Is(err, services.ErrUserNotFound) {
		helpers.WriteErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		c.Logger.Error("failed to update profile", zap.Int64("user_id", user.ID), zap.Error(err))
		helpers.WriteErrorResponse(w, http.StatusInternalServerError, profile.DefaultFailureMessage)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, userResponse{User: record})
}

func (c *UserProfileController) decodeUpdate(r *http.Request) (models.UserUpdate, []models.Attachment, error) {
	var update models.UserUpdate

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&update); err != nil {
			return update, nil, fmt.Errorf("Invalid request payload: %w", err)
		}
		return update, nil, nil
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return update, nil, fmt.Errorf("Invalid multipart payload: %w", err)
	}

	for name := range r.MultipartForm.Value {
		if !slices.Contains(models.EditableFields, name) {
			return update, nil, fmt.Errorf("Unknown field %s", name)
		}
	}
	for name := range r.MultipartForm.File {
		if name != models.PhotosField {
			return update, nil, fmt.Errorf("Unknown field %s", name)
		}
	}

	fields := make(map[string]json.RawMessage)
	for _, name := range models.EditableFields {
		values := r.MultipartForm.Value[name]
		if len(values) == 0 {
			continue
		}
		if !json.Valid([]byte(values[0])) {
			return update, nil, fmt.Errorf("Invalid value for %s", name)
		}
		fields[name] = json.RawMessage(values[0])
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return update, nil, err
	}
	if err := json.Unmarshal(raw, &update); err != nil {
		return update, nil, fmt.Errorf("Invalid request payload: %w", err)
	}

	var photos []models.Attachment
	for _, fh := range r.MultipartForm.File[models.PhotosField] {
		contentType := fh.Header.Get("Content-Type")
		if err := profile.CheckFile(fh.Filename, contentType, fh.Size, c.MaxAttachmentBytes); err != nil {
			return update, nil, err
		}
		f, err := fh.Open()
		if err != nil {
			return update, nil, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return update, nil, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
		}

		photos = append(photos, models.Attachment{Name: fh.Filename, ContentType: contentType, Data: data})
	}
	return update, photos, nil
}

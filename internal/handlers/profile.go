package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/samaj-network/app-directory/internal/config"
	"github.com/samaj-network/app-directory/internal/logging"
	"github.com/samaj-network/app-directory/internal/models"
	"github.com/samaj-network/app-directory/internal/observability"
	"github.com/samaj-network/app-directory/internal/services"
	"github.com/samaj-network/app-directory/internal/utils"
)

// ErrorResponse is the shared error body for all endpoints
type ErrorResponse struct {
	Error   string                  `json:"error"`
	Details []utils.ValidationError `json:"details,omitempty"`
}

// ProfileHandlers contains all profile-related HTTP handlers
type ProfileHandlers struct {
	logger   *logging.SafeLogger
	profiles *services.ProfileService
	photos   *services.PhotoService
}

// NewProfileHandlers creates a new instance of profile handlers
func NewProfileHandlers(logger *logging.SafeLogger, profiles *services.ProfileService, photos *services.PhotoService) *ProfileHandlers {
	return &ProfileHandlers{
		logger:   logger,
		profiles: profiles,
		photos:   photos,
	}
}

// RegisterProfile godoc
// @Summary Register a new profile
// @Description Creates a directory entry from a submitted form with up to two photos. Returns the private edit link exactly once; it cannot be recovered later.
// @Tags profiles
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Full name"
// @Param dob formData string true "Date of birth (YYYY-MM-DD)"
// @Param time formData string false "Time of birth"
// @Param place formData string true "Birth place"
// @Param education formData string false "Education"
// @Param occupation formData string true "Occupation"
// @Param business formData string false "Business name"
// @Param father_name formData string false "Father's name"
// @Param mother_name formData string false "Mother's name"
// @Param contact_number formData string true "Contact number"
// @Param photo1 formData file false "Primary photo"
// @Param photo2 formData file false "Secondary photo"
// @Success 201 {object} models.RegistrationResponse "Profile created"
// @Failure 400 {object} ErrorResponse "Missing or invalid fields"
// @Failure 409 {object} ErrorResponse "Duplicate profile"
// @Failure 500 {object} ErrorResponse "Upload or insert failure"
// @Router /v1/profiles [post]
func (h *ProfileHandlers) RegisterProfile(c *gin.Context) {
	ctx := c.Request.Context()
	ctx, span := utils.TraceBusinessLogic(ctx, "register_profile")
	defer span.End()

	var input models.ProfileInput
	if err := c.ShouldBind(&input); err != nil {
		h.logger.Debug("invalid registration form", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	_, validationSpan := utils.TraceInputValidation(ctx, "profile_input", "form")
	validation := utils.ValidateProfileInput(&input,
		config.AppConfig.ContactValidationEnabled,
		config.AppConfig.DefaultPhoneRegion)
	validationSpan.End()
	if !validation.IsValid {
		observability.ProfileRegistrations.WithLabelValues("validation_error").Inc()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: validation.Errors})
		return
	}

	// The duplicate policy runs before the uploads, so a rejected
	// registration leaves nothing behind in object storage.
	if err := h.profiles.CheckDuplicate(ctx, &input); err != nil {
		if errors.Is(err, models.ErrDuplicateProfile) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: models.ErrDuplicateProfile.Error()})
			return
		}
		h.logger.Error("duplicate check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create profile"})
		return
	}

	// Photos upload next; a failed upload aborts before any record write.
	photo1URL, ok := h.uploadSlot(c, "photo1")
	if !ok {
		return
	}
	photo2URL, ok := h.uploadSlot(c, "photo2")
	if !ok {
		return
	}

	profile, err := h.profiles.Register(ctx, &input, photo1URL, photo2URL)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateProfile) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: models.ErrDuplicateProfile.Error()})
			return
		}
		h.logger.Error("failed to register profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create profile"})
		return
	}

	utils.AddSpanAttribute(span, "profile_id", profile.ID.Hex())

	c.JSON(http.StatusCreated, models.RegistrationResponse{
		ID:        profile.ID.Hex(),
		EditToken: profile.EditToken,
		EditLink:  editLink(profile.EditToken),
		CreatedAt: profile.CreatedAt,
	})
}

// ListProfiles godoc
// @Summary List and search profiles
// @Description Returns all profiles ordered by name. The optional search term substring-matches name, birth place, or the derived age, case-insensitively.
// @Tags profiles
// @Produce json
// @Param search query string false "Search term"
// @Success 200 {object} models.ProfileListResponse "Filtered listing"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /v1/profiles [get]
func (h *ProfileHandlers) ListProfiles(c *gin.Context) {
	ctx := c.Request.Context()
	ctx, span := utils.TraceBusinessLogic(ctx, "list_profiles")
	defer span.End()

	term := c.Query("search")

	response, err := h.profiles.ListProfiles(ctx, term)
	if err != nil {
		h.logger.Error("failed to list profiles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve profiles"})
		return
	}

	utils.AddSpanAttribute(span, "profiles_count", response.Total)

	c.JSON(http.StatusOK, response)
}

// GetProfileDetail godoc
// @Summary Get one profile by public identifier
// @Description Read-only detail view of a single profile with the derived age. The contact number is returned verbatim for direct dialing.
// @Tags profiles
// @Produce json
// @Param id path string true "Public profile identifier"
// @Success 200 {object} models.ProfileResponse "Profile detail"
// @Failure 404 {object} ErrorResponse "Profile not found"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /v1/profiles/{id} [get]
func (h *ProfileHandlers) GetProfileDetail(c *gin.Context) {
	ctx := c.Request.Context()
	ctx, span := utils.TraceBusinessLogic(ctx, "get_profile_detail")
	defer span.End()

	id := c.Param("id")
	utils.AddSpanAttribute(span, "profile_id", id)

	profile, err := h.profiles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrProfileNotFound) || errors.Is(err, models.ErrInvalidProfileID) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Profile not found"})
			return
		}
		h.logger.Error("failed to load profile detail", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve profile"})
		return
	}

	age := utils.AgeFromDOB(profile.DOB, time.Now())
	c.JSON(http.StatusOK, profile.ToResponse(age))
}

// ResolveEditToken godoc
// @Summary Resolve an edit token to its record
// @Description Returns the current field values for form pre-fill when the exact token matches a record. Any other string yields a denied response that reveals nothing.
// @Tags edit
// @Produce json
// @Param token path string true "Secret edit token"
// @Success 200 {object} models.EditSessionResponse "Editable session"
// @Failure 404 {object} ErrorResponse "Invalid or expired edit link"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /v1/edit/{token} [get]
func (h *ProfileHandlers) ResolveEditToken(c *gin.Context) {
	ctx := c.Request.Context()
	ctx, span := utils.TraceBusinessLogic(ctx, "resolve_edit_token")
	defer span.End()

	token := c.Param("token")
	logger := h.logger.With(zap.String("token", observability.MaskEditToken(token)))

	profile, err := h.profiles.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrEditTokenNotFound) {
			logger.Info("edit token denied")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Invalid or expired edit link"})
			return
		}
		logger.Error("failed to resolve edit token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to resolve edit link"})
		return
	}

	c.JSON(http.StatusOK, profile.ToEditSession())
}

// UpdateProfile godoc
// @Summary Update a profile by edit token
// @Description Full overwrite of the editable field set, gated solely by the edit token. Photo slots: a new file replaces the slot, an explicit clear flag empties it, an untouched slot keeps its current photo.
// @Tags edit
// @Accept multipart/form-data
// @Produce json
// @Param token path string true "Secret edit token"
// @Param name formData string true "Full name"
// @Param dob formData string true "Date of birth (YYYY-MM-DD)"
// @Param time formData string false "Time of birth"
// @Param place formData string true "Birth place"
// @Param education formData string false "Education"
// @Param occupation formData string true "Occupation"
// @Param business formData string false "Business name"
// @Param father_name formData string false "Father's name"
// @Param mother_name formData string false "Mother's name"
// @Param contact_number formData string true "Contact number"
// @Param photo1 formData file false "Replacement primary photo"
// @Param photo2 formData file false "Replacement secondary photo"
// @Param photo1_clear formData boolean false "Clear primary photo slot"
// @Param photo2_clear formData boolean false "Clear secondary photo slot"
// @Success 200 {object} models.ProfileResponse "Updated profile"
// @Failure 400 {object} ErrorResponse "Missing or invalid fields"
// @Failure 404 {object} ErrorResponse "Invalid or expired edit link"
// @Failure 500 {object} ErrorResponse "Upload or update failure"
// @Router /v1/edit/{token} [put]
func (h *ProfileHandlers) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()
	ctx, span := utils.TraceBusinessLogic(ctx, "update_profile")
	defer span.End()

	token := c.Param("token")
	logger := h.logger.With(zap.String("token", observability.MaskEditToken(token)))

	// Resolve first: a bad token is denied before any field of the payload
	// is looked at, and the current record supplies the photo carry-over.
	current, err := h.profiles.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrEditTokenNotFound) {
			logger.Info("edit token denied")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Invalid or expired edit link"})
			return
		}
		logger.Error("failed to resolve edit token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to resolve edit link"})
		return
	}

	var input models.ProfileInput
	if err := c.ShouldBind(&input); err != nil {
		logger.Debug("invalid edit form", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	_, validationSpan := utils.TraceInputValidation(ctx, "profile_input", "form")
	validation := utils.ValidateProfileInput(&input,
		config.AppConfig.ContactValidationEnabled,
		config.AppConfig.DefaultPhoneRegion)
	validationSpan.End()
	if !validation.IsValid {
		observability.ProfileEdits.WithLabelValues("validation_error").Inc()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: validation.Errors})
		return
	}

	photo1URL, ok := h.resolveSlot(c, "photo1", input.Photo1Clear, current.Photo1)
	if !ok {
		return
	}
	photo2URL, ok := h.resolveSlot(c, "photo2", input.Photo2Clear, current.Photo2)
	if !ok {
		return
	}

	updated, err := h.profiles.UpdateByToken(ctx, token, &input, photo1URL, photo2URL)
	if err != nil {
		if errors.Is(err, models.ErrEditTokenNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Invalid or expired edit link"})
			return
		}
		logger.Error("failed to update profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update profile"})
		return
	}

	age := utils.AgeFromDOB(updated.DOB, time.Now())
	c.JSON(http.StatusOK, updated.ToResponse(age))
}

// slotFile extracts the uploaded file for a slot. A missing part, or a form
// that is not multipart at all, means the slot was omitted; any other error
// is a malformed part and is reported as a bad request.
func (h *ProfileHandlers) slotFile(c *gin.Context, slot string) (*multipart.FileHeader, bool) {
	file, err := c.FormFile(slot)
	if err == nil {
		return file, true
	}
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, true
	}
	h.logger.Debug("malformed photo part", zap.String("slot", slot), zap.Error(err))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Malformed photo upload"})
	return nil, false
}

// uploadSlot uploads the file for a slot when one was submitted. It writes
// the error response itself and reports ok=false so callers can abort before
// touching the record store.
func (h *ProfileHandlers) uploadSlot(c *gin.Context, slot string) (string, bool) {
	file, ok := h.slotFile(c, slot)
	if !ok {
		return "", false
	}
	if file == nil {
		return "", true // slot omitted
	}
	return h.uploadFile(c, slot, file)
}

func (h *ProfileHandlers) uploadFile(c *gin.Context, slot string, file *multipart.FileHeader) (string, bool) {
	url, err := h.photos.UploadPhoto(c.Request.Context(), slot, file)
	if err != nil {
		h.logger.Error("photo upload failed", zap.String("slot", slot), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to upload photo"})
		return "", false
	}
	return url, true
}

// Photo slot actions for an edit, in precedence order.
const (
	slotReplace = iota
	slotClear
	slotKeep
)

// slotAction ranks an edit's photo-slot inputs: a submitted file wins, then
// the explicit clear flag, otherwise the slot is kept as-is.
func slotAction(hasFile, clear bool) int {
	switch {
	case hasFile:
		return slotReplace
	case clear:
		return slotClear
	default:
		return slotKeep
	}
}

// resolveSlot decides an edit's photo slot value: new file wins, then the
// explicit clear flag, otherwise the existing URL carries over.
func (h *ProfileHandlers) resolveSlot(c *gin.Context, slot string, clear bool, existing string) (string, bool) {
	file, ok := h.slotFile(c, slot)
	if !ok {
		return "", false
	}
	switch slotAction(file != nil, clear) {
	case slotReplace:
		return h.uploadFile(c, slot, file)
	case slotClear:
		return "", true
	default:
		return existing, true
	}
}

// editLink builds the one-time private edit link for a token
func editLink(token string) string {
	return fmt.Sprintf("%s/edit/%s", strings.TrimRight(config.AppConfig.BaseURL, "/"), token)
}

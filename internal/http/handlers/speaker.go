package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/debate-analyzer-backend/internal/domain"
	"github.com/yungbote/debate-analyzer-backend/internal/http/response"
	"github.com/yungbote/debate-analyzer-backend/internal/services"
)

type SpeakerHandler struct {
	speakers services.SpeakerService
}

func NewSpeakerHandler(speakers services.SpeakerService) *SpeakerHandler {
	return &SpeakerHandler{speakers: speakers}
}

// GET /api/speakers
func (h *SpeakerHandler) List(c *gin.Context) {
	profiles, err := h.speakers.List(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_speakers_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"speakers": profiles})
}

// GET /api/speakers/:id_or_slug
//
// Returns the profile plus the cross-transcript stat overview. Some of the
// overview numbers are unweighted means of per-transcript values, so they
// are indicative rather than exact.
func (h *SpeakerHandler) Get(c *gin.Context) {
	overview, err := h.speakers.GetOverview(c.Request.Context(), c.Param("id_or_slug"))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "get_speaker_failed", err)
		return
	}
	if overview == nil {
		response.RespondError(c, http.StatusNotFound, "speaker_not_found", errors.New("no such speaker"))
		return
	}
	response.RespondOK(c, overview)
}

// GET /api/stat-catalog
func (h *SpeakerHandler) StatCatalog(c *gin.Context) {
	groups, err := h.speakers.StatCatalog(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "stat_catalog_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"groups": groups})
}

type createSpeakerRequest struct {
	FirstName        string  `json:"first_name" binding:"required"`
	Surname          string  `json:"surname" binding:"required"`
	Slug             *string `json:"slug"`
	Bio              *string `json:"bio"`
	ShortDescription *string `json:"short_description"`
}

// POST /api/admin/speakers
func (h *SpeakerHandler) Create(c *gin.Context) {
	var req createSpeakerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	profile, err := h.speakers.Create(c.Request.Context(), &types.SpeakerProfile{
		FirstName:        req.FirstName,
		Surname:          req.Surname,
		Slug:             req.Slug,
		Bio:              req.Bio,
		ShortDescription: req.ShortDescription,
	})
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "create_speaker_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"speaker": profile})
}

type updateSpeakerRequest struct {
	FirstName        *string `json:"first_name"`
	Surname          *string `json:"surname"`
	Slug             *string `json:"slug"`
	Bio              *string `json:"bio"`
	ShortDescription *string `json:"short_description"`
}

// PATCH /api/admin/speakers/:id
func (h *SpeakerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_speaker_id", err)
		return
	}
	var req updateSpeakerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.Surname != nil {
		updates["surname"] = *req.Surname
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.ShortDescription != nil {
		updates["short_description"] = *req.ShortDescription
	}
	profile, err := h.speakers.Update(c.Request.Context(), id, updates)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "update_speaker_failed", err)
		return
	}
	if profile == nil {
		response.RespondError(c, http.StatusNotFound, "speaker_not_found", errors.New("no such speaker"))
		return
	}
	response.RespondOK(c, gin.H{"speaker": profile})
}

// DELETE /api/admin/speakers/:id
func (h *SpeakerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_speaker_id", err)
		return
	}
	deleted, err := h.speakers.Delete(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "delete_speaker_failed", err)
		return
	}
	if !deleted {
		response.RespondError(c, http.StatusNotFound, "speaker_not_found", errors.New("no such speaker"))
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

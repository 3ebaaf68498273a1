package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/debate-analyzer-backend/internal/http/response"
	"github.com/yungbote/debate-analyzer-backend/internal/services"
)

type TranscriptHandler struct {
	transcripts services.TranscriptService
}

func NewTranscriptHandler(transcripts services.TranscriptService) *TranscriptHandler {
	return &TranscriptHandler{transcripts: transcripts}
}

type registerTranscriptRequest struct {
	SourceURI string  `json:"source_uri" binding:"required"`
	Title     *string `json:"title"`
}

// POST /api/admin/transcripts
func (h *TranscriptHandler) Register(c *gin.Context) {
	var req registerTranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	transcript, created, err := h.transcripts.RegisterFromURI(c.Request.Context(), req.SourceURI, req.Title)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "register_transcript_failed", err)
		return
	}
	payload := gin.H{"transcript": transcript, "created": created}
	if created {
		response.RespondCreated(c, payload)
		return
	}
	response.RespondOK(c, payload)
}

// GET /api/admin/transcripts
func (h *TranscriptHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	transcripts, err := h.transcripts.List(c.Request.Context(), limit, offset)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_transcripts_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"transcripts": transcripts})
}

// GET /api/admin/transcripts/:id
func (h *TranscriptHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_transcript_id", err)
		return
	}
	detail, err := h.transcripts.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "get_transcript_failed", err)
		return
	}
	if detail == nil {
		response.RespondError(c, http.StatusNotFound, "transcript_not_found", errors.New("no such transcript"))
		return
	}
	response.RespondOK(c, detail)
}

type updateTranscriptRequest struct {
	Title     *string `json:"title"`
	VideoPath *string `json:"video_path"`
}

// PATCH /api/admin/transcripts/:id
func (h *TranscriptHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_transcript_id", err)
		return
	}
	var req updateTranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.VideoPath != nil {
		updates["video_path"] = *req.VideoPath
	}
	transcript, err := h.transcripts.Update(c.Request.Context(), id, updates)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "update_transcript_failed", err)
		return
	}
	if transcript == nil {
		response.RespondError(c, http.StatusNotFound, "transcript_not_found", errors.New("no such transcript"))
		return
	}
	response.RespondOK(c, gin.H{"transcript": transcript})
}

// DELETE /api/admin/transcripts/:id
func (h *TranscriptHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_transcript_id", err)
		return
	}
	deleted, err := h.transcripts.Delete(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "delete_transcript_failed", err)
		return
	}
	if !deleted {
		response.RespondError(c, http.StatusNotFound, "transcript_not_found", errors.New("no such transcript"))
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}

type saveMappingsRequest struct {
	Mappings []services.MappingAssignment `json:"mappings" binding:"required"`
}

// PUT /api/admin/transcripts/:id/mappings
func (h *TranscriptHandler) SaveMappings(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_transcript_id", err)
		return
	}
	var req saveMappingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	mappings, err := h.transcripts.SaveMappings(c.Request.Context(), id, req.Mappings)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "save_mappings_failed", err)
		return
	}
	if mappings == nil {
		response.RespondError(c, http.StatusNotFound, "transcript_not_found", errors.New("no such transcript"))
		return
	}
	response.RespondOK(c, gin.H{"speaker_mappings": mappings})
}

// GET /api/admin/transcripts/:id/video-url
func (h *TranscriptHandler) VideoURL(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_transcript_id", err)
		return
	}
	url, err := h.transcripts.VideoURL(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "video_url_failed", err)
		return
	}
	if url == nil {
		response.RespondError(c, http.StatusNotFound, "video_not_found", errors.New("no video for transcript"))
		return
	}
	response.RespondOK(c, gin.H{"video_url": url})
}

// POST /api/admin/transcripts/:id/recompute-stats
func (h *TranscriptHandler) RecomputeStats(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_transcript_id", err)
		return
	}
	statRows, err := h.transcripts.RecomputeStats(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "recompute_stats_failed", err)
		return
	}
	if statRows == nil {
		response.RespondError(c, http.StatusNotFound, "transcript_not_found", errors.New("no such transcript"))
		return
	}
	response.RespondOK(c, gin.H{"speaker_stats": statRows})
}

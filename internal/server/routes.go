package server

import (
	"errors"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/callmepikachu/AniHub-Demo/internal/config"
	"github.com/callmepikachu/AniHub-Demo/internal/logger"
	"github.com/callmepikachu/AniHub-Demo/internal/models"
	"github.com/callmepikachu/AniHub-Demo/internal/processor"
)

type API struct {
	cfg    *config.Config
	proc   processor.Processor
	logger logger.Logger
}

func NewAPI(cfg *config.Config, proc processor.Processor, log logger.Logger) *API {
	return &API{cfg: cfg, proc: proc, logger: log}
}

type createDocumentRequest struct {
	Text   string `json:"text" binding:"required"`
	Format string `json:"format"`
}

type documentResponse struct {
	ID       string         `json:"id"`
	Document string         `json:"document"`
	Strategy string         `json:"strategy"`
	Degraded bool           `json:"degraded"`
	Scenes   []models.Scene `json:"scenes"`
	Results  models.Results `json:"results"`
}

func registerRoutes(r *gin.Engine, api *API) {
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", api.handleHealth)

		apiGroup.POST("/documents", api.handleCreateDocument)
		apiGroup.GET("/documents/:id/*file", api.handleServeFile)
	}
}

func (a *API) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *API) handleCreateDocument(c *gin.Context) {
	var payload createDocumentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondMessage(c, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		respondError(c, http.StatusBadRequest, err)
		return
	}

	if strings.TrimSpace(payload.Text) == "" {
		respondMessage(c, http.StatusBadRequest, "text is required")
		return
	}

	if payload.Format == "" {
		payload.Format = a.cfg.Output.Format
	}
	format, err := models.ParseFormat(payload.Format)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	id := uuid.NewString()
	dir := filepath.Join(a.cfg.Server.DataDir, id)

	out, err := a.proc.Illustrate(c.Request.Context(), payload.Text, dir, format)
	if err != nil {
		a.logger.Error(c.Request.Context(), "Document %s failed: %v", id, err)
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusCreated, documentResponse{
		ID:       id,
		Document: path.Join("/api/documents", id, filepath.Base(out.Document)),
		Strategy: out.Strategy,
		Degraded: out.Degraded,
		Scenes:   out.Scenes,
		Results:  publicResults(out.Results),
	})
}

// handleServeFile serves a generated document or media file.
func (a *API) handleServeFile(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		respondMessage(c, http.StatusNotFound, "document not found")
		return
	}

	name := strings.TrimPrefix(c.Param("file"), "/")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		respondMessage(c, http.StatusNotFound, "file not found")
		return
	}

	full := filepath.Join(a.cfg.Server.DataDir, id, name)
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		respondMessage(c, http.StatusNotFound, "file not found")
		return
	}

	c.File(full)
}

// publicResults strips server paths from results, keeping file names.
func publicResults(results models.Results) models.Results {
	out := make(models.Results, len(results))
	for id, r := range results {
		if r.VideoPath != "" {
			r.VideoPath = filepath.Base(r.VideoPath)
		}
		out[id] = r
	}
	return out
}

func respondError(c *gin.Context, status int, err error) {
	respondMessage(c, status, err.Error())
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

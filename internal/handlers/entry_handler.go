package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trialworks/ediary-service/internal/services"
	"github.com/trialworks/ediary-service/internal/utils"
)

type EntryHandler struct {
	BaseHandler
	entryService services.EntryService
}

func NewEntryHandler(entryService services.EntryService, logger utils.Logger) *EntryHandler {
	return &EntryHandler{
		BaseHandler:  NewBaseHandler(logger),
		entryService: entryService,
	}
}

// ListEntries lists submitted diary entries, newest first
func (h *EntryHandler) ListEntries(c *gin.Context) {
	entries, err := h.entryService.List(c.Request.Context(), h.projectScope(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// ExportEntries streams entries as a downloadable xlsx or csv document
func (h *EntryHandler) ExportEntries(c *gin.Context) {
	format := services.ExportFormat(c.DefaultQuery("format", string(services.FormatXLSX)))

	h.LogRequest(c, "Exporting entries", "format", string(format))

	result, err := h.entryService.Export(c.Request.Context(), h.projectScope(c), format)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

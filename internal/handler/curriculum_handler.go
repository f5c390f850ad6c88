package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/curriculum-api/internal/middleware"
	"github.com/noah-isme/curriculum-api/internal/service"
	"github.com/noah-isme/curriculum-api/pkg/response"
)

// CurriculumHandler handles curriculum endpoints.
type CurriculumHandler struct {
	service *service.CurriculumService
	export  *service.ExportService
}

// NewCurriculumHandler constructs a curriculum handler.
func NewCurriculumHandler(svc *service.CurriculumService, export *service.ExportService) *CurriculumHandler {
	return &CurriculumHandler{service: svc, export: export}
}

// List godoc
// @Summary List curriculum
// @Description All entries ordered by class name then subject
// @Tags Curriculum
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.ErrorBody
// @Router /curriculum [get]
func (h *CurriculumHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items, len(items))
}

// Get godoc
// @Summary Get curriculum by id
// @Tags Curriculum
// @Produce json
// @Param id path int true "Curriculum ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.ErrorBody
// @Router /curriculum/{id} [get]
func (h *CurriculumHandler) Get(c *gin.Context) {
	id, err := curriculumIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item, "")
}

// Create godoc
// @Summary Create curriculum
// @Tags Curriculum
// @Accept json
// @Produce json
// @Param payload body service.CurriculumRequest true "Curriculum payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Router /curriculum [post]
func (h *CurriculumHandler) Create(c *gin.Context) {
	var req service.CurriculumRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetAuditResourceID(c, strconv.FormatInt(item.ID, 10))
	response.Created(c, item.ID, item, "curriculum created successfully")
}

// Update godoc
// @Summary Update curriculum
// @Description Replaces class name, subject, topic and description
// @Tags Curriculum
// @Accept json
// @Produce json
// @Param id path int true "Curriculum ID"
// @Param payload body service.CurriculumRequest true "Curriculum payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /curriculum/{id} [put]
func (h *CurriculumHandler) Update(c *gin.Context) {
	id, err := curriculumIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.CurriculumRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item, "curriculum updated successfully")
}

// Delete godoc
// @Summary Delete curriculum
// @Tags Curriculum
// @Produce json
// @Param id path int true "Curriculum ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.ErrorBody
// @Router /curriculum/{id} [delete]
func (h *CurriculumHandler) Delete(c *gin.Context) {
	id, err := curriculumIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "curriculum deleted successfully")
}

// Export godoc
// @Summary Export curriculum
// @Tags Curriculum
// @Produce octet-stream
// @Param format query string false "csv, xlsx or pdf" default(csv)
// @Success 200 {file} binary
// @Failure 400 {object} response.ErrorBody
// @Router /curriculum/export [get]
func (h *CurriculumHandler) Export(c *gin.Context) {
	file, err := h.export.Export(c.Request.Context(), c.DefaultQuery("format", service.ExportFormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Content)
}

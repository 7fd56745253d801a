package handler

import (
	"net/http"
	"strconv"
	"strings"

	"hwgrade/report"
	"hwgrade/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// homework resolves the homework path parameter, it aborts if it is unknown.
func (h *Handler) homework(c *gin.Context) (string, bool) {
	name := strings.ToLower(c.Param("homework"))
	if _, err := h.Config.Homework(name); err != nil {
		utils.Abort(c, http.StatusNotFound, err)
		return "", false
	}
	return name, true
}

func (h *Handler) abortArchive(c *gin.Context, err error) {
	switch {
	case errors.Is(err, report.ErrNotFound):
		utils.Abort(c, http.StatusNotFound, err)
	case errors.Is(err, report.ErrNoArchive):
		utils.Abort(c, http.StatusServiceUnavailable, err)
	default:
		log.WithError(err).Error("Error reading reports")
		utils.Abort(c, http.StatusInternalServerError, err)
	}
}

// @Summary List reports
// @Description returns the grade reports of a homework, newest first
// @Produce json
// @Param homework path string true "Homework name"
// @Param limit query int false "Maximum number of reports" default(20)
// @Success 200 {object} []report.Report
// @Failure 400 {object} json "{"error": "..."}"
// @Failure 404 {object} json "{"error": "..."}"
// @Router /homeworks/{homework}/reports [get]
func (h *Handler) HandleReportList(c *gin.Context) {
	homework, ok := h.homework(c)
	if !ok {
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		utils.Abort(c, http.StatusBadRequest, errors.New("limit must be an integer"))
		return
	}
	reports, err := h.Archive.History(c.Request.Context(), homework, limit)
	if err != nil {
		h.abortArchive(c, err)
		return
	}
	utils.SetHeaderNoCache(c)
	utils.Respond(c, reports)
}

// @Summary Get report
// @Description returns a single grade report
// @Produce json
// @Param homework path string true "Homework name"
// @Param run_id path string true "Run id"
// @Success 200 {object} report.Report
// @Failure 400 {object} json "{"error": "..."}"
// @Failure 404 {object} json "{"error": "..."}"
// @Router /homeworks/{homework}/reports/{run_id} [get]
func (h *Handler) HandleReportGet(c *gin.Context) {
	homework, ok := h.homework(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("run_id"))
	if err != nil {
		utils.Abort(c, http.StatusBadRequest, errors.Wrap(err, "invalid run id"))
		return
	}
	r, err := h.Archive.Get(c.Request.Context(), homework, id)
	if err != nil {
		h.abortArchive(c, err)
		return
	}
	utils.Respond(c, r)
}

// @Summary Latest report
// @Description returns the newest grade report of a homework
// @Produce json
// @Param homework path string true "Homework name"
// @Success 200 {object} report.Report
// @Failure 404 {object} json "{"error": "..."}"
// @Router /homeworks/{homework}/latest [get]
func (h *Handler) HandleReportLatest(c *gin.Context) {
	homework, ok := h.homework(c)
	if !ok {
		return
	}
	r, err := h.Archive.Latest(c.Request.Context(), homework)
	if err != nil {
		h.abortArchive(c, err)
		return
	}
	utils.SetHeaderNoCache(c)
	utils.Respond(c, r)
}

// Package handler serves homework rubrics and grade reports over HTTP.
package handler

import (
	"net/http"

	"hwgrade/middleware"
	"hwgrade/report"
	"hwgrade/service/etc"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	ginlogrus "github.com/toorop/gin-logrus"
)

// Handler holds what the handlers read from.
type Handler struct {
	Config  *etc.Configuration
	Archive *report.Archive
}

// Router returns the routes of the handler. Everything except "/ping" needs a token.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(ginlogrus.Logger(log.StandardLogger()), gin.Recovery())

	r.GET("/ping", HandlePing)

	authorized := r.Group("/")
	authorized.Use(middleware.JWTMiddleware())
	{
		homeworks := authorized.Group("/homeworks")
		{
			homeworks.GET("/", h.HandleHomeworkList)
			homeworks.GET("/:homework/questions", h.HandleQuestionList)
			homeworks.GET("/:homework/reports", h.HandleReportList)
			homeworks.GET("/:homework/reports/:run_id", h.HandleReportGet)
			homeworks.GET("/:homework/latest", h.HandleReportLatest)
		}
	}
	return r
}

// @Summary Ping
// @Description checks that the server is up
// @Produce json
// @Success 200 {object} json "{"message": "pong"}"
// @Router /ping [get]
func HandlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}

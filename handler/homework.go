package handler

import (
	"net/http"

	"hwgrade/grading"
	"hwgrade/utils"

	"github.com/gin-gonic/gin"
)

type homeworkResp struct {
	Name         string   `json:"name" yaml:"name"`
	Packages     []string `json:"packages" yaml:"packages"`
	NumQuestions int      `json:"num_questions" yaml:"num_questions"`
	TotalWeight  float64  `json:"total_weight" yaml:"total_weight"`
}

// @Summary List homeworks
// @Description returns the configured homeworks
// @Produce json
// @Success 200 {object} []homeworkResp
// @Failure 500 {object} json "{"error": "..."}"
// @Router /homeworks/ [get]
func (h *Handler) HandleHomeworkList(c *gin.Context) {
	resp := []homeworkResp{}
	for _, name := range h.Config.HomeworkNames() {
		rubric, err := h.Config.Rubric(name)
		if err != nil {
			utils.Abort(c, http.StatusInternalServerError, err)
			return
		}
		hw, _ := h.Config.Homework(name)
		resp = append(resp, homeworkResp{
			Name:         name,
			Packages:     hw.Packages,
			NumQuestions: len(rubric.Questions),
			TotalWeight:  rubric.TotalWeight(),
		})
	}
	utils.Respond(c, resp)
}

// @Summary List questions
// @Description returns the rubric of a homework
// @Produce json
// @Param homework path string true "Homework name"
// @Success 200 {object} []grading.Question
// @Failure 404 {object} json "{"error": "..."}"
// @Router /homeworks/{homework}/questions [get]
func (h *Handler) HandleQuestionList(c *gin.Context) {
	rubric, err := h.Config.Rubric(c.Param("homework"))
	if err != nil {
		utils.Abort(c, http.StatusNotFound, err)
		return
	}
	questions := make([]grading.Question, 0, len(rubric.Questions))
	for _, q := range rubric.Questions {
		questions = append(questions, *q)
	}
	utils.Respond(c, questions)
}

package handlers

import (
	"net/http"

	"github.com/architect/quiztracker/internal/common/middleware"
	"github.com/architect/quiztracker/internal/quiz/services"
	"github.com/gin-gonic/gin"
)

// QuestionHandler serves practice-question endpoints
type QuestionHandler struct {
	questions *services.QuestionService
}

func NewQuestionHandler(questions *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

// GetQuestions lists practice questions for a topic
// GET /api/practice-questions/:topicId?difficulty=
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	questions, err := h.questions.GetQuestions(c.Param("topicId"), c.Query("difficulty"))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, questions)
}

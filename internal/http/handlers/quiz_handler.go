package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/nasa-image-explorer/internal/quiz"
)

// ListQuizzes godoc
// @ID          listQuizzes
// @Summary     List quizzes
// @Tags        Quiz
// @Produce     json
// @Success     200  {array}  quiz.Quiz
// @Router      /quiz [get]
func (h *Handlers) ListQuizzes(c *gin.Context) {
	ok(c, http.StatusOK, h.quizzes.All())
}

// GetQuiz godoc
// @ID          getQuiz
// @Summary     Get one quiz
// @Tags        Quiz
// @Produce     json
// @Param       id   path      string  true  "Quiz id"  example(solar-system)
// @Success     200  {object}  quiz.Quiz
// @Failure     404  {object}  handlers.ErrorResponse  "Quiz not found"
// @Router      /quiz/{id} [get]
func (h *Handlers) GetQuiz(c *gin.Context) {
	q, err := h.quizzes.Get(c.Param("id"))
	if errors.Is(err, quiz.ErrNotFound) {
		fail(c, http.StatusNotFound, ErrCodeNotFound, msgQuizNotFound)
		return
	}
	if err != nil {
		h.internal(c, ErrCodeInternal, "Error loading quiz", err)
		return
	}
	ok(c, http.StatusOK, q)
}

package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/tbourn/go-qa-backend/internal/apperror"
	"github.com/tbourn/go-qa-backend/internal/domain"
)

// AddAnswerForm is the form payload for POST /comments.
type AddAnswerForm struct {
	Content    string `form:"content"    binding:"required" example:"Use start and end."`
	QuestionID string `form:"questionId" binding:"required" example:"1"`
}

// AddAnswer godoc
// @ID          addAnswer
// @Summary     Add an answer
// @Description Stores an answer under a fresh id. The referenced question is not required to exist.
// @Tags        Answers
// @Accept      x-www-form-urlencoded
// @Produce     plain
//
// @Param       Idempotency-Key  header    string  false "Retry key"  example(3f1c2b-retry-1)
// @Param       content          formData  string  true  "Answer text"
// @Param       questionId       formData  string  true  "Question ID"
//
// @Success     200  {string} string "Answer added"
// @Header      200  {string} Location "URL of the stored answer"
// @Failure     400  {object} handlers.ErrorResponse "Bad idempotency key"
// @Failure     422  {object} handlers.ErrorResponse "Malformed body"
// @Router      /comments [post]
func (h *Handlers) AddAnswer(c *gin.Context) {
	if rec, hit := h.replayed(c); hit {
		c.Header("Location", c.FullPath()+"/"+rec.ResourceID)
		confirm(c, "Answer added")
		return
	}

	switch c.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
	default:
		Reject(c, apperror.BodyDeserialize(fmt.Errorf("unsupported content type %q", c.ContentType())))
		return
	}

	var form AddAnswerForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		Reject(c, apperror.BodyDeserialize(err))
		return
	}

	a, err := h.answers.Add(c.Request.Context(), domain.QuestionID(form.QuestionID), form.Content)
	if err != nil {
		Reject(c, err)
		return
	}
	h.remember(c, string(a.ID), http.StatusOK)
	c.Header("Location", c.FullPath()+"/"+string(a.ID))
	confirm(c, "Answer added")
}

// ListAnswers godoc
// @ID          listAnswers
// @Summary     List answers
// @Description Returns answers in insertion order, optionally only those for one question.
// @Tags        Answers
// @Produce     json
// @Param       questionId  query  string  false  "Question ID"  example(1)
// @Success     200  {array} domain.Answer
// @Router      /comments [get]
func (h *Handlers) ListAnswers(c *gin.Context) {
	items := h.answers.List(c.Request.Context(), domain.QuestionID(c.Query("questionId")))
	if items == nil {
		items = []domain.Answer{}
	}
	ok(c, http.StatusOK, items)
}

// GetAnswer godoc
// @ID          getAnswer
// @Summary     Get an answer
// @Tags        Answers
// @Produce     json
// @Param       id   path  string  true  "Answer ID"  format(uuid)
// @Success     200  {object} domain.Answer
// @Failure     404  {object} handlers.ErrorResponse "Answer not found"
// @Router      /comments/{id} [get]
func (h *Handlers) GetAnswer(c *gin.Context) {
	id := c.Param("id")
	a, found := h.answers.Get(c.Request.Context(), domain.AnswerID(id))
	if !found {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "Answer not found: "+id)
		return
	}
	ok(c, http.StatusOK, a)
}

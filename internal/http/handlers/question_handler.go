package handlers

import (
	"fmt"
	"hash/fnv"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qa-backend/internal/apperror"
	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/utils"
)

const defaultSearchK = 5

// ListQuestions godoc
// @ID          listQuestions
// @Summary     List questions
// @Description Returns all questions in insertion order, or the [start, end) window when both
// @Description start and end are given. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Questions
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"   example(W/\"questions:3:3:811c9dc5\")
// @Param       start          query   int     false "First index (inclusive)"      minimum(0)
// @Param       end            query   int     false "Last index (exclusive)"       minimum(1)
//
// @Success     200  {array}  domain.Question
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     416  {object} handlers.ErrorResponse "Bad or unsatisfiable window"
// @Router      /questions [get]
func (h *Handlers) ListQuestions(c *gin.Context) {
	ctx := c.Request.Context()

	var page *utils.Pagination
	if query := c.Request.URL.Query(); len(query) > 0 {
		params := make(map[string]string, len(query))
		for k, vs := range query {
			if len(vs) > 0 {
				params[k] = vs[0]
			}
		}
		p, err := utils.ExtractPagination(params)
		if err != nil {
			Reject(c, err)
			return
		}
		page = p
	}

	// Version is read before the listing so a concurrent write can only make
	// the tag older than the body, never newer.
	ver, count := h.questions.Version()
	items, err := h.questions.List(ctx, page)
	if err != nil {
		Reject(c, err)
		return
	}

	etag := listETag(ver, count, c.Request.URL.RawQuery)
	c.Header("ETag", etag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
		c.Status(http.StatusNotModified)
		return
	}
	if items == nil {
		items = []domain.Question{}
	}
	ok(c, http.StatusOK, items)
}

// listETag derives a weak validator from the table version and the query.
func listETag(version uint64, count int, rawQuery string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(rawQuery))
	return fmt.Sprintf(`W/"questions:%d:%d:%08x"`, version, count, h.Sum32())
}

// GetQuestion godoc
// @ID          getQuestion
// @Summary     Get a question
// @Tags        Questions
// @Produce     json
// @Param       id   path  string  true  "Question ID"  example(1)
// @Success     200  {object} domain.Question
// @Failure     416  {object} handlers.ErrorResponse "Question not found"
// @Router      /questions/{id} [get]
func (h *Handlers) GetQuestion(c *gin.Context) {
	q, err := h.questions.Get(c.Request.Context(), domain.QuestionID(c.Param("id")))
	if err != nil {
		Reject(c, err)
		return
	}
	ok(c, http.StatusOK, q)
}

// SearchQuestions godoc
// @ID          searchQuestions
// @Summary     Search questions
// @Description Ranks questions by token overlap with q across title, content and tags.
// @Tags        Questions
// @Produce     json
// @Param       q  query  string  true   "Search text"    example(pagination)
// @Param       k  query  int     false  "Maximum hits"   minimum(1) default(5)
// @Success     200  {array} services.SearchHit
// @Router      /search [get]
func (h *Handlers) SearchQuestions(c *gin.Context) {
	k := utils.AtoiDefault(c.Query("k"), defaultSearchK)
	ok(c, http.StatusOK, h.questions.Search(c.Request.Context(), c.Query("q"), k))
}

// AddQuestion godoc
// @ID          addQuestion
// @Summary     Add a question
// @Description Stores the question under its id, replacing any question with the same id.
// @Tags        Questions
// @Accept      json
// @Produce     plain
//
// @Param       Idempotency-Key  header  string           false "Retry key"  example(3f1c2b-retry-1)
// @Param       body             body    domain.Question  true  "Question"
//
// @Success     200  {string} string "Question added"
// @Header      200  {string} Idempotency-Replayed "true when served from an earlier request"
// @Failure     400  {object} handlers.ErrorResponse "Bad idempotency key"
// @Failure     422  {object} handlers.ErrorResponse "Malformed body"
// @Router      /questions [post]
func (h *Handlers) AddQuestion(c *gin.Context) {
	if _, hit := h.replayed(c); hit {
		confirm(c, "Question added")
		return
	}

	var q domain.Question
	if err := c.ShouldBindJSON(&q); err != nil {
		Reject(c, apperror.BodyDeserialize(err))
		return
	}
	if err := q.Validate(); err != nil {
		Reject(c, apperror.BodyDeserialize(err))
		return
	}

	if err := h.questions.Create(c.Request.Context(), q); err != nil {
		Reject(c, err)
		return
	}
	h.remember(c, string(q.ID), http.StatusOK)
	confirm(c, "Question added")
}

// UpdateQuestion godoc
// @ID          updateQuestion
// @Summary     Replace a question
// @Description Replaces the question stored under id. The stored record keeps the path id.
// @Tags        Questions
// @Accept      json
// @Produce     plain
//
// @Param       id    path  string           true  "Question ID"  example(1)
// @Param       body  body  domain.Question  true  "Replacement"
//
// @Success     200  {string} string "Question updated"
// @Failure     416  {object} handlers.ErrorResponse "Question not found"
// @Failure     422  {object} handlers.ErrorResponse "Malformed body"
// @Router      /questions/{id} [put]
func (h *Handlers) UpdateQuestion(c *gin.Context) {
	id := domain.QuestionID(c.Param("id"))

	var q domain.Question
	if err := c.ShouldBindJSON(&q); err != nil {
		Reject(c, apperror.BodyDeserialize(err))
		return
	}
	q.ID = id
	if err := q.Validate(); err != nil {
		Reject(c, apperror.BodyDeserialize(err))
		return
	}

	if err := h.questions.Update(c.Request.Context(), id, q); err != nil {
		Reject(c, err)
		return
	}
	confirm(c, "Question updated")
}

// DeleteQuestion godoc
// @ID          deleteQuestion
// @Summary     Delete a question
// @Tags        Questions
// @Produce     plain
// @Param       id   path  string  true  "Question ID"  example(1)
// @Success     200  {string} string "Question deleted"
// @Failure     416  {object} handlers.ErrorResponse "Question not found"
// @Router      /questions/{id} [delete]
func (h *Handlers) DeleteQuestion(c *gin.Context) {
	if err := h.questions.Delete(c.Request.Context(), domain.QuestionID(c.Param("id"))); err != nil {
		Reject(c, err)
		return
	}
	confirm(c, "Question deleted")
}

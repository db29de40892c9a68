// Package handlers exposes the REST endpoints of the Q&A API:
//
//   - GET    /questions            (list, optional start/end window, ETag support)
//   - GET    /search               (ranked question search)
//   - GET    /questions/{id}       (lookup)
//   - POST   /questions            (create or replace, idempotent with a key)
//   - PUT    /questions/{id}       (replace)
//   - DELETE /questions/{id}      (remove)
//   - POST   /comments             (add answer, form body, idempotent with a key)
//   - GET    /comments             (list answers)
//   - GET    /comments/{id}        (lookup answer)
//
// Handlers are transport-thin: they bind input, call application services, and
// hand every failure to Reject.
package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/http/middleware"
	"github.com/tbourn/go-qa-backend/internal/repo"
	"github.com/tbourn/go-qa-backend/internal/services"
	"github.com/tbourn/go-qa-backend/internal/utils"
)

// QuestionService defines question operations consumed by HTTP handlers.
//
// Implementations must be safe for concurrent use.
type QuestionService interface {
	List(ctx context.Context, p *utils.Pagination) ([]domain.Question, error)
	Get(ctx context.Context, id domain.QuestionID) (domain.Question, error)
	Create(ctx context.Context, q domain.Question) error
	Update(ctx context.Context, id domain.QuestionID, q domain.Question) error
	Delete(ctx context.Context, id domain.QuestionID) error
	Version() (version uint64, count int)
	Search(ctx context.Context, query string, k int) []services.SearchHit
}

// AnswerService defines answer operations consumed by HTTP handlers.
type AnswerService interface {
	Add(ctx context.Context, questionID domain.QuestionID, content string) (domain.Answer, error)
	Get(ctx context.Context, id domain.AnswerID) (domain.Answer, bool)
	List(ctx context.Context, questionID domain.QuestionID) []domain.Answer
}

// Handlers groups the question and answer endpoints.
type Handlers struct {
	questions QuestionService
	answers   AnswerService

	// idemDB stores idempotency records; nil disables replays.
	idemDB  *gorm.DB
	idemTTL time.Duration
}

// New constructs Handlers bound to the given services.
func New(questions QuestionService, answers AnswerService) *Handlers {
	return &Handlers{questions: questions, answers: answers}
}

// WithIdempotency enables replay of POST requests that carry an
// Idempotency-Key, recording results in db for ttl.
func (h *Handlers) WithIdempotency(db *gorm.DB, ttl time.Duration) *Handlers {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	h.idemDB = db
	h.idemTTL = ttl
	return h
}

// idemKey builds the record key for this request, if it carries a validated
// Idempotency-Key and replays are enabled.
func (h *Handlers) idemKey(c *gin.Context) (repo.IdempotencyKey, bool) {
	if h.idemDB == nil {
		return repo.IdempotencyKey{}, false
	}
	key, ok := middleware.GetIdempotencyKey(c)
	if !ok {
		return repo.IdempotencyKey{}, false
	}
	k := repo.IdempotencyKey{Client: c.ClientIP(), Route: c.FullPath(), Key: key}
	return k, !k.Blank()
}

// replayed returns the record of an earlier identical request, if the
// idempotency validator found one, and marks the response as a replay.
func (h *Handlers) replayed(c *gin.Context) (*domain.Idempotency, bool) {
	if h.idemDB == nil {
		return nil, false
	}
	rec, ok := middleware.ReplayRecord(c)
	if !ok {
		return nil, false
	}
	c.Header(middleware.HeaderIdempotencyReplayed, "true")
	return rec, true
}

// remember records a completed create. Failures only cost the ability to
// replay, so they are logged and otherwise ignored.
func (h *Handlers) remember(c *gin.Context, resourceID string, status int) {
	k, ok := h.idemKey(c)
	if !ok {
		return
	}
	if _, err := repo.CreateIdempotency(c.Request.Context(), h.idemDB, k, resourceID, status, h.idemTTL); err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Str("route", k.Route).Msg("idempotency record not stored")
	}
}

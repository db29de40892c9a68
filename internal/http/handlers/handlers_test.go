package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/http/middleware"
	"github.com/tbourn/go-qa-backend/internal/repo"
	"github.com/tbourn/go-qa-backend/internal/services"
	"github.com/tbourn/go-qa-backend/internal/store"
)

func seedQuestions() []domain.Question {
	return []domain.Question{
		{ID: "1", Title: "First question", Content: "How do I paginate?", Tags: []string{"general"}},
		{ID: "2", Title: "Second question", Content: "What does end mean?"},
		{ID: "3", Title: "Third question", Content: "Can I delete twice?", Tags: []string{"delete"}},
	}
}

type testEnv struct {
	engine *gin.Engine
	store  *store.Store
	db     *gorm.DB
}

// newEnv mounts the handlers on a bare engine, with the idempotency
// validator in front when withIdem is set.
func newEnv(t *testing.T, seed []domain.Question, withIdem bool) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New(seed)
	h := New(services.NewQuestionService(st), services.NewAnswerService(st))

	r := gin.New()
	r.Use(middleware.RequestID())

	var db *gorm.DB
	if withIdem {
		var err error
		db, err = repo.OpenSQLite(":memory:")
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		if err := repo.AutoMigrate(db); err != nil {
			t.Fatalf("migrate: %v", err)
		}
		h.WithIdempotency(db, time.Hour)
		r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{},
			func(ctx context.Context, client, route, key string, now time.Time) (*domain.Idempotency, error) {
				return repo.GetIdempotency(ctx, db, repo.IdempotencyKey{Client: client, Route: route, Key: key}, now)
			}, Reject))
	}

	r.GET("/questions", h.ListQuestions)
	r.GET("/search", h.SearchQuestions)
	r.GET("/questions/:id", h.GetQuestion)
	r.POST("/questions", h.AddQuestion)
	r.PUT("/questions/:id", h.UpdateQuestion)
	r.DELETE("/questions/:id", h.DeleteQuestion)
	r.POST("/comments", h.AddAnswer)
	r.GET("/comments", h.ListAnswers)
	r.GET("/comments/:id", h.GetAnswer)

	return &testEnv{engine: r, store: st, db: db}
}

func (e *testEnv) do(method, target, contentType, body string, hdr ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *testEnv) postJSON(target, body string, hdr ...string) *httptest.ResponseRecorder {
	return e.do(http.MethodPost, target, "application/json", body, hdr...)
}

func (e *testEnv) postForm(target string, form url.Values, hdr ...string) *httptest.ResponseRecorder {
	return e.do(http.MethodPost, target, "application/x-www-form-urlencoded", form.Encode(), hdr...)
}

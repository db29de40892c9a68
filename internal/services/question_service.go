// Package services – QuestionService
//
// QuestionService owns listing (with optional start/end windows), lookup,
// create/replace/delete and ranked search over the shared question table.
// Every public method opens an OpenTelemetry span.
package services

import (
	"context"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-qa-backend/internal/apperror"
	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/search"
	"github.com/tbourn/go-qa-backend/internal/utils"
)

// QuestionStore is the subset of *store.Store used by QuestionService.
type QuestionStore interface {
	Questions() []domain.Question
	Question(id domain.QuestionID) (domain.Question, bool)
	QuestionCount() int
	QuestionsVersion() uint64
	InsertQuestion(q domain.Question)
	UpdateQuestion(id domain.QuestionID, q domain.Question) error
	DeleteQuestion(id domain.QuestionID) error
}

// SearchHit is one ranked search result.
type SearchHit struct {
	ID    domain.QuestionID `json:"id"`
	Title string            `json:"title"`
	Score float64           `json:"score"`
}

// QuestionService coordinates question reads and writes.
type QuestionService struct {
	Store QuestionStore

	// MaxResults caps k for Search. Zero means 10.
	MaxResults int
	// Stopwords are dropped from documents and queries when searching.
	Stopwords []string
	// MinRunes excludes questions whose indexed text is shorter. Zero indexes all.
	MinRunes int
	// MaxDocs caps how many questions are indexed, in listing order. Zero is unlimited.
	MaxDocs int

	mu         sync.Mutex
	index      search.Index
	indexVer   uint64
	indexTitle map[string]string
	indexBuilt bool
}

// NewQuestionService constructs a QuestionService with default limits.
func NewQuestionService(s QuestionStore) *QuestionService {
	return &QuestionService{Store: s, MaxResults: 10}
}

func tracer() trace.Tracer { return otel.Tracer("services/QuestionService") }

// List returns every question, or only the [Start, End) window when p is
// non-nil. The window is checked against the snapshot it is applied to.
func (s *QuestionService) List(ctx context.Context, p *utils.Pagination) ([]domain.Question, error) {
	_, span := tracer().Start(ctx, "List")
	defer span.End()

	all := s.Store.Questions()
	span.SetAttributes(attribute.Int("questions.total", len(all)))
	if p == nil {
		return all, nil
	}
	span.SetAttributes(attribute.Int("page.start", p.Start), attribute.Int("page.end", p.End))
	if err := p.Within(len(all)); err != nil {
		return nil, err
	}
	return all[p.Start:p.End], nil
}

// Get returns the question stored under id.
func (s *QuestionService) Get(ctx context.Context, id domain.QuestionID) (domain.Question, error) {
	_, span := tracer().Start(ctx, "Get", trace.WithAttributes(attribute.String("question.id", string(id))))
	defer span.End()

	q, ok := s.Store.Question(id)
	if !ok {
		return domain.Question{}, apperror.QuestionNotFound(string(id), nil)
	}
	return q, nil
}

// Create stores q, replacing any question with the same id.
func (s *QuestionService) Create(ctx context.Context, q domain.Question) error {
	_, span := tracer().Start(ctx, "Create", trace.WithAttributes(attribute.String("question.id", string(q.ID))))
	defer span.End()

	s.Store.InsertQuestion(q)
	return nil
}

// Update replaces the question under id. The stored record always carries id,
// whatever the body said.
func (s *QuestionService) Update(ctx context.Context, id domain.QuestionID, q domain.Question) error {
	_, span := tracer().Start(ctx, "Update", trace.WithAttributes(attribute.String("question.id", string(id))))
	defer span.End()

	q.ID = id
	return notFound(id, s.Store.UpdateQuestion(id, q))
}

// Delete removes the question under id.
func (s *QuestionService) Delete(ctx context.Context, id domain.QuestionID) error {
	_, span := tracer().Start(ctx, "Delete", trace.WithAttributes(attribute.String("question.id", string(id))))
	defer span.End()

	return notFound(id, s.Store.DeleteQuestion(id))
}

// Version returns a token that changes whenever the question table does.
func (s *QuestionService) Version() (version uint64, count int) {
	return s.Store.QuestionsVersion(), s.Store.QuestionCount()
}

// Search ranks questions against query by token overlap of title, content and
// tags. k is clamped to [1, MaxResults]. An empty query yields no hits.
func (s *QuestionService) Search(ctx context.Context, query string, k int) []SearchHit {
	_, span := tracer().Start(ctx, "Search", trace.WithAttributes(
		attribute.String("query", query),
		attribute.Int("k", k),
	))
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchHit{}
	}
	limit := s.MaxResults
	if limit <= 0 {
		limit = 10
	}
	if k <= 0 || k > limit {
		k = limit
	}

	idx, titles := s.currentIndex()
	results := idx.TopK(query, k)
	hits := make([]SearchHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, SearchHit{ID: domain.QuestionID(r.ID), Title: titles[r.ID], Score: r.Score})
	}
	span.SetAttributes(attribute.Int("hits", len(hits)))
	return hits
}

// currentIndex returns an index over the latest snapshot, rebuilding it only
// when the question table has changed since the last build.
func (s *QuestionService) currentIndex() (search.Index, map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ver := s.Store.QuestionsVersion()
	if s.indexBuilt && ver == s.indexVer {
		return s.index, s.indexTitle
	}

	snap := s.Store.Questions()
	docs := make([]search.Document, 0, len(snap))
	titles := make(map[string]string, len(snap))
	for _, q := range snap {
		text := q.Title + "\n" + q.Content + "\n" + strings.Join(q.Tags, " ")
		docs = append(docs, search.Document{ID: string(q.ID), Text: text})
		titles[string(q.ID)] = q.Title
	}
	var opts []search.Option
	if len(s.Stopwords) > 0 {
		opts = append(opts, search.WithStopwords(s.Stopwords))
	}
	if s.MinRunes > 0 {
		opts = append(opts, search.WithMinRunes(s.MinRunes))
	}
	if s.MaxDocs > 0 {
		opts = append(opts, search.WithMaxDocs(s.MaxDocs))
	}

	s.index = search.New(docs, opts...)
	s.indexTitle = titles
	s.indexVer = ver
	s.indexBuilt = true
	return s.index, s.indexTitle
}

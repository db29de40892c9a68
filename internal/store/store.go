// Package store holds the process-wide, in-memory question and answer tables.
//
// One Store is built at startup (from seed data) and shared by every request
// handler. Each table has its own sync.RWMutex: readers proceed concurrently,
// a writer excludes readers and writers of the same table only, so question
// writes never block answer traffic and vice versa. Locks are held for a single
// map operation (plus the copy for snapshots) and never escape a method.
//
// Tables remember insertion order. Snapshots come back in that order, which
// keeps paginated listings consistent with unpaginated ones between writes.
// Overwriting an existing key keeps its position.
package store

import (
	"errors"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

// ErrNotFound is returned by update and delete when the key is absent.
var ErrNotFound = errors.New("store: not found")

var (
	questionsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "qa_store_questions",
		Help: "Number of questions currently held in memory.",
	})
	answersGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "qa_store_answers",
		Help: "Number of answers currently held in memory.",
	})
)

func init() {
	prometheus.MustRegister(questionsGauge, answersGauge)
}

// table is an insertion-ordered map guarded by its own RWMutex.
type table[K comparable, V any] struct {
	mu      sync.RWMutex
	order   []K
	rows    map[K]V
	version uint64
	gauge   prometheus.Gauge
}

func newTable[K comparable, V any](g prometheus.Gauge) *table[K, V] {
	return &table[K, V]{rows: make(map[K]V), gauge: g}
}

// snapshot copies every row, in insertion order, through clone.
func (t *table[K, V]) snapshot(clone func(V) V) []V {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]V, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, clone(t.rows[k]))
	}
	return out
}

func (t *table[K, V]) get(k K) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[k]
	return v, ok
}

func (t *table[K, V]) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.order)
}

// put inserts or overwrites k.
func (t *table[K, V]) put(k K, v V) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[k]; !ok {
		t.order = append(t.order, k)
	}
	t.rows[k] = v
	t.version++
	t.gauge.Set(float64(len(t.order)))
}

// replace overwrites k only if it already exists.
func (t *table[K, V]) replace(k K, v V) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[k]; !ok {
		return ErrNotFound
	}
	t.rows[k] = v
	t.version++
	return nil
}

func (t *table[K, V]) remove(k K) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[k]; !ok {
		return ErrNotFound
	}
	delete(t.rows, k)
	if i := slices.Index(t.order, k); i >= 0 {
		t.order = slices.Delete(t.order, i, i+1)
	}
	t.version++
	t.gauge.Set(float64(len(t.order)))
	return nil
}

func (t *table[K, V]) ver() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.version
}

// Store is the shared question/answer store. The zero value is not usable;
// construct with New. Safe for concurrent use.
type Store struct {
	questions *table[domain.QuestionID, domain.Question]
	answers   *table[domain.AnswerID, domain.Answer]
}

// New returns a Store whose question table is populated from seed, in order.
// Later seed entries overwrite earlier ones with the same id.
func New(seed []domain.Question) *Store {
	s := &Store{
		questions: newTable[domain.QuestionID, domain.Question](questionsGauge),
		answers:   newTable[domain.AnswerID, domain.Answer](answersGauge),
	}
	for _, q := range seed {
		s.questions.put(q.ID, q.Clone())
	}
	answersGauge.Set(0)
	return s
}

// Questions returns a snapshot of all questions in insertion order.
func (s *Store) Questions() []domain.Question {
	return s.questions.snapshot(domain.Question.Clone)
}

// Question returns a copy of the question stored under id.
func (s *Store) Question(id domain.QuestionID) (domain.Question, bool) {
	q, ok := s.questions.get(id)
	if !ok {
		return domain.Question{}, false
	}
	return q.Clone(), true
}

// QuestionCount returns the number of stored questions.
func (s *Store) QuestionCount() int { return s.questions.len() }

// QuestionsVersion increases on every successful question write.
func (s *Store) QuestionsVersion() uint64 { return s.questions.ver() }

// InsertQuestion stores q under q.ID, silently replacing any previous record.
func (s *Store) InsertQuestion(q domain.Question) {
	s.questions.put(q.ID, q.Clone())
}

// UpdateQuestion replaces the record under id wholesale.
// It returns ErrNotFound if id is absent.
func (s *Store) UpdateQuestion(id domain.QuestionID, q domain.Question) error {
	return s.questions.replace(id, q.Clone())
}

// DeleteQuestion removes the record under id. It returns ErrNotFound if id is
// absent.
func (s *Store) DeleteQuestion(id domain.QuestionID) error {
	return s.questions.remove(id)
}

// Answers returns a snapshot of all answers in insertion order.
func (s *Store) Answers() []domain.Answer {
	return s.answers.snapshot(func(a domain.Answer) domain.Answer { return a })
}

// Answer returns the answer stored under id.
func (s *Store) Answer(id domain.AnswerID) (domain.Answer, bool) {
	return s.answers.get(id)
}

// InsertAnswer stores a under a.ID, silently replacing any previous record.
func (s *Store) InsertAnswer(a domain.Answer) {
	s.answers.put(a.ID, a)
}

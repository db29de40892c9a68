// Package services – AnswerService
//
// AnswerService stores answers under freshly generated ids and lists them.
// The referenced question is not required to exist.
package services

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-qa-backend/internal/apperror"
	"github.com/tbourn/go-qa-backend/internal/domain"
)

// AnswerStore is the subset of *store.Store used by AnswerService.
type AnswerStore interface {
	Answers() []domain.Answer
	Answer(id domain.AnswerID) (domain.Answer, bool)
	InsertAnswer(a domain.Answer)
}

// AnswerService coordinates answer writes and reads.
type AnswerService struct {
	Store AnswerStore

	// NewID generates answer ids. Defaults to a random UUID.
	NewID func() string
}

// NewAnswerService constructs an AnswerService that assigns UUIDv4 ids.
func NewAnswerService(s AnswerStore) *AnswerService {
	return &AnswerService{Store: s, NewID: uuid.NewString}
}

// Add stores a new answer to questionID and returns it with its assigned id.
func (s *AnswerService) Add(ctx context.Context, questionID domain.QuestionID, content string) (domain.Answer, error) {
	_, span := otel.Tracer("services/AnswerService").Start(ctx, "Add",
		trace.WithAttributes(attribute.String("question.id", string(questionID))),
	)
	defer span.End()

	newID := s.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	a := domain.Answer{
		ID:         domain.AnswerID(newID()),
		Content:    content,
		QuestionID: questionID,
	}
	if err := a.Validate(); err != nil {
		return domain.Answer{}, apperror.BodyDeserialize(err)
	}
	s.Store.InsertAnswer(a)
	span.SetAttributes(attribute.String("answer.id", string(a.ID)))
	return a, nil
}

// Get returns the answer stored under id.
func (s *AnswerService) Get(ctx context.Context, id domain.AnswerID) (domain.Answer, bool) {
	_, span := otel.Tracer("services/AnswerService").Start(ctx, "Get",
		trace.WithAttributes(attribute.String("answer.id", string(id))),
	)
	defer span.End()

	return s.Store.Answer(id)
}

// List returns all answers in insertion order, or only those for questionID
// when it is non-empty.
func (s *AnswerService) List(ctx context.Context, questionID domain.QuestionID) []domain.Answer {
	_, span := otel.Tracer("services/AnswerService").Start(ctx, "List",
		trace.WithAttributes(attribute.String("question.id", string(questionID))),
	)
	defer span.End()

	all := s.Store.Answers()
	if questionID == "" {
		return all
	}
	out := make([]domain.Answer, 0, len(all))
	for _, a := range all {
		if a.QuestionID == questionID {
			out = append(out, a)
		}
	}
	return out
}

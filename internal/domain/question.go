// Package domain defines the records served by the Q&A API and the
// persistence model backing idempotent creates. Questions and answers live in
// the in-memory store; only Idempotency rows are mapped with GORM.
package domain

// QuestionID identifies a question. It is opaque: compared and hashed as a
// string, never parsed as a number.
type QuestionID string

// Question is a user-submitted question.
//
// Fields:
//   - ID: client-supplied identifier; the store key.
//   - Title / Content: free text.
//   - Tags: optional ordered labels; nil encodes as JSON null.
type Question struct {
	ID      QuestionID `json:"id"      validate:"required,max=128"     example:"1"`
	Title   string     `json:"title"   validate:"required,max=255"     example:"How do I paginate?"`
	Content string     `json:"content" validate:"required,max=10000"   example:"Is there a limit on end?"`
	Tags    []string   `json:"tags"    validate:"omitempty,max=32,dive,required,max=64"`
}

// Validate checks field presence and size limits.
func (q Question) Validate() error {
	return validate.Struct(q)
}

// Clone returns a copy of q that shares no memory with it.
func (q Question) Clone() Question {
	if q.Tags != nil {
		q.Tags = append(make([]string, 0, len(q.Tags)), q.Tags...)
	}
	return q
}

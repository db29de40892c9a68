package domain

// AnswerID identifies an answer. Generated server-side on insertion.
type AnswerID string

// Answer is a reply to a question. QuestionID is a best-effort link: it is
// not checked against the question store.
type Answer struct {
	ID         AnswerID   `json:"id"          validate:"required"           example:"8c0c3c5e-5d1e-4d7c-9f0f-0d9a7e8f6b11"`
	Content    string     `json:"content"     validate:"required,max=10000" example:"Use start and end."`
	QuestionID QuestionID `json:"question_id" validate:"required,max=128"   example:"1"`
}

// Validate checks field presence and size limits.
func (a Answer) Validate() error {
	return validate.Struct(a)
}

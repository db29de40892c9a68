package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

func answerForm(content, questionID string) url.Values {
	v := url.Values{}
	if content != "" {
		v.Set("content", content)
	}
	if questionID != "" {
		v.Set("questionId", questionID)
	}
	return v
}

func TestAddAnswer(t *testing.T) {
	e := newEnv(t, seedQuestions(), false)

	w := e.postForm("/comments", answerForm("Use start and end.", "1"))
	if w.Code != http.StatusOK || w.Body.String() != "Answer added" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}

	all := e.store.Answers()
	if len(all) != 1 {
		t.Fatalf("expected one answer, got %d", len(all))
	}
	a := all[0]
	if _, err := uuid.Parse(string(a.ID)); err != nil {
		t.Fatalf("answer id should be a UUID, got %q", a.ID)
	}
	if a.Content != "Use start and end." || a.QuestionID != "1" {
		t.Fatalf("unexpected answer %+v", a)
	}
	if loc := w.Header().Get("Location"); loc != "/comments/"+string(a.ID) {
		t.Fatalf("unexpected Location %q", loc)
	}

	// Fresh id per insertion.
	e.postForm("/comments", answerForm("Use start and end.", "1"))
	all = e.store.Answers()
	if len(all) != 2 || all[0].ID == all[1].ID {
		t.Fatalf("expected two distinct answers, got %+v", all)
	}
}

func TestAddAnswer_UnknownQuestionAccepted(t *testing.T) {
	e := newEnv(t, nil, false)

	w := e.postForm("/comments", answerForm("orphan", "does-not-exist"))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if len(e.store.Answers()) != 1 {
		t.Fatalf("answer to unknown question should be stored")
	}
}

func TestAddAnswer_Malformed(t *testing.T) {
	e := newEnv(t, nil, false)

	cases := []struct {
		name string
		ct   string
		body string
	}{
		{"missing content", "application/x-www-form-urlencoded", answerForm("", "1").Encode()},
		{"missing questionId", "application/x-www-form-urlencoded", answerForm("x", "").Encode()},
		{"json body", "application/json", `{"content":"x","questionId":"1"}`},
		{"no content type", "", "content=x&questionId=1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := e.do(http.MethodPost, "/comments", tc.ct, tc.body)
			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
			}
			if er := decodeError(t, w.Body.Bytes()); er.Code != ErrCodeUnprocessableInput {
				t.Fatalf("unexpected code %q", er.Code)
			}
		})
	}
	if len(e.store.Answers()) != 0 {
		t.Fatalf("malformed bodies must not be stored")
	}
}

func TestListAnswers_FilterByQuestion(t *testing.T) {
	e := newEnv(t, seedQuestions(), false)

	w := e.do(http.MethodGet, "/comments", "", "")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("empty list: got %d %q", w.Code, w.Body.String())
	}

	e.postForm("/comments", answerForm("a1", "1"))
	e.postForm("/comments", answerForm("a2", "2"))
	e.postForm("/comments", answerForm("a3", "1"))

	var got []domain.Answer
	w = e.do(http.MethodGet, "/comments?questionId=1", "", "")
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(got) != 2 || got[0].Content != "a1" || got[1].Content != "a3" {
		t.Fatalf("unexpected filtered list %+v", got)
	}

	w = e.do(http.MethodGet, "/comments", "", "")
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil || len(got) != 3 {
		t.Fatalf("expected all 3 answers, got %d (%v)", len(got), err)
	}
}

func TestGetAnswer(t *testing.T) {
	e := newEnv(t, nil, false)

	w := e.postForm("/comments", answerForm("hello", "1"))
	loc := w.Header().Get("Location")

	w = e.do(http.MethodGet, loc, "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var a domain.Answer
	if err := json.Unmarshal(w.Body.Bytes(), &a); err != nil || a.Content != "hello" {
		t.Fatalf("unexpected body %s (%v)", w.Body.String(), err)
	}

	w = e.do(http.MethodGet, "/comments/"+uuid.NewString(), "", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	if er := decodeError(t, w.Body.Bytes()); er.Code != ErrCodeNotFound {
		t.Fatalf("unexpected code %q", er.Code)
	}
}

func TestAddAnswer_IdempotentReplay(t *testing.T) {
	e := newEnv(t, nil, true)

	first := e.postForm("/comments", answerForm("once", "1"), "Idempotency-Key", "ans-1")
	if first.Code != http.StatusOK {
		t.Fatalf("status=%d", first.Code)
	}
	second := e.postForm("/comments", answerForm("once", "1"), "Idempotency-Key", "ans-1")
	if second.Code != http.StatusOK || second.Header().Get("Idempotency-Replayed") != "true" {
		t.Fatalf("replay: %d replayed=%q", second.Code, second.Header().Get("Idempotency-Replayed"))
	}
	if first.Header().Get("Location") != second.Header().Get("Location") {
		t.Fatalf("replay should point at the original answer: %q vs %q",
			first.Header().Get("Location"), second.Header().Get("Location"))
	}
	if n := len(e.store.Answers()); n != 1 {
		t.Fatalf("replay must not insert, have %d answers", n)
	}
}

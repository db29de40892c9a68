// Package seed loads the initial question set the store starts with.
//
// The default set is compiled into the binary; SEED_PATH may point to a file
// with the same shape instead. The format is a JSON object mapping question id
// to question. A malformed seed is an error; the caller treats it as fatal.
package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/tbourn/go-qa-backend/internal/domain"
)

//go:embed questions.json
var bundled []byte

// Default returns the bundled question set.
func Default() ([]domain.Question, error) {
	return Decode(bytes.NewReader(bundled))
}

// Load returns the question set at path, or the bundled set when path is empty.
func Load(path string) ([]domain.Question, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses an id→question object. The object key is authoritative: each
// question's ID is set to its key. Questions come back ordered by key, numeric
// keys first in numeric order, then the rest lexically, so startup order does
// not depend on map iteration.
func Decode(r io.Reader) ([]domain.Question, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var raw map[string]domain.Question
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keyLess(keys[i], keys[j]) })

	out := make([]domain.Question, 0, len(keys))
	for _, k := range keys {
		q := raw[k]
		q.ID = domain.QuestionID(k)
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("seed question %q: %w", k, err)
		}
		out = append(out, q)
	}
	return out, nil
}

func keyLess(a, b string) bool {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		if na != nb {
			return na < nb
		}
		return a < b
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

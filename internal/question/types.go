package question

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

// AnyCategory is the quiz_category id that selects from every category.
const AnyCategory int64 = 0

var (
	// ErrNotFound is returned when a question id has no row.
	ErrNotFound = errors.New("question not found")
	// ErrUnprocessable marks requests that are well-formed JSON but cannot be served.
	ErrUnprocessable = errors.New("unprocessable request")
)

// Question is the client-facing shape of a question row.
type Question struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int64  `json:"category"`
	Difficulty int32  `json:"difficulty"`
}

func fromRow(row repository.Question) Question {
	return Question{
		ID:         row.ID,
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   row.Category,
		Difficulty: row.Difficulty,
	}
}

func fromRows(rows []repository.Question) []Question {
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out
}

// Page is one page of an ordered question list plus the size of the whole list.
type Page struct {
	Questions []Question
	Total     int
}

// CreateInput carries the fields of a new question. Nil means the field was absent or null.
type CreateInput struct {
	Question   *string
	Answer     *string
	Category   *int64
	Difficulty *int64
}

// Validate reports the first missing field.
func (in CreateInput) Validate() error {
	switch {
	case in.Question == nil:
		return fmt.Errorf("%w: question is required", ErrUnprocessable)
	case in.Answer == nil:
		return fmt.Errorf("%w: answer is required", ErrUnprocessable)
	case in.Category == nil:
		return fmt.Errorf("%w: category is required", ErrUnprocessable)
	case in.Difficulty == nil:
		return fmt.Errorf("%w: difficulty is required", ErrUnprocessable)
	}
	return nil
}

// flexInt decodes either a JSON number or a numeric string into an int64.
type flexInt int64

func (f *flexInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("not an integer: %s", string(data))
	}
	*f = flexInt(n)
	return nil
}

func (f *flexInt) int64Ptr() *int64 {
	if f == nil {
		return nil
	}
	v := int64(*f)
	return &v
}

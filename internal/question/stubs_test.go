package question

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/gokatarajesh/trivia-api/internal/category"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

// memoryStore is an in-memory questionStore with the same ordering and
// matching rules as the Postgres queries.
type memoryStore struct {
	mu      sync.Mutex
	rows    map[int64]repository.Question
	nextID  int64
	err     error
	inserts int
}

func newMemoryStore(rows ...repository.Question) *memoryStore {
	s := &memoryStore{rows: map[int64]repository.Question{}, nextID: 1}
	for _, row := range rows {
		s.rows[row.ID] = row
		if row.ID >= s.nextID {
			s.nextID = row.ID + 1
		}
	}
	return s
}

func (s *memoryStore) sorted(keep func(repository.Question) bool) []repository.Question {
	out := []repository.Question{}
	for _, row := range s.rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memoryStore) ListQuestions(_ context.Context) ([]repository.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.sorted(func(repository.Question) bool { return true }), nil
}

func (s *memoryStore) ListQuestionsByCategory(_ context.Context, categoryID int64) ([]repository.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.sorted(func(q repository.Question) bool { return q.Category == categoryID }), nil
}

func (s *memoryStore) SearchQuestions(_ context.Context, term string) ([]repository.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	needle := strings.ToLower(term)
	return s.sorted(func(q repository.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), needle)
	}), nil
}

func (s *memoryStore) GetQuestion(_ context.Context, id int64) (repository.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return repository.Question{}, s.err
	}
	row, ok := s.rows[id]
	if !ok {
		return repository.Question{}, repository.ErrNotFound
	}
	return row, nil
}

func (s *memoryStore) InsertQuestion(_ context.Context, arg repository.InsertQuestionParams) (repository.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return repository.Question{}, s.err
	}
	row := repository.Question{
		ID:         s.nextID,
		Question:   arg.Question,
		Answer:     arg.Answer,
		Category:   arg.Category,
		Difficulty: arg.Difficulty,
	}
	s.nextID++
	s.inserts++
	s.rows[row.ID] = row
	return row, nil
}

func (s *memoryStore) DeleteQuestion(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

type stubCategories struct {
	items []category.Category
	err   error
}

func (s *stubCategories) Get(_ context.Context, id int64) (category.Category, error) {
	if s.err != nil {
		return category.Category{}, s.err
	}
	if id < 1 {
		return category.Category{}, category.ErrNotFound
	}
	for _, c := range s.items {
		if c.ID == id {
			return c, nil
		}
	}
	return category.Category{}, category.ErrNotFound
}

func (s *stubCategories) List(_ context.Context) ([]category.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

var errStoreDown = errors.New("store unavailable")

func defaultCategories() *stubCategories {
	return &stubCategories{items: []category.Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 3, Type: "Geography"},
	}}
}

// fixtureRows holds 25 questions: ids 1..25, category (id%3)+1.
func fixtureRows() []repository.Question {
	rows := make([]repository.Question, 0, 25)
	for i := int64(1); i <= 25; i++ {
		rows = append(rows, repository.Question{
			ID:         i,
			Question:   "Question number " + string(rune('A'+i-1)),
			Answer:     "answer",
			Category:   i%3 + 1,
			Difficulty: int32(i%5 + 1),
		})
	}
	return rows
}

func newTestService(store *memoryStore, cats *stubCategories) *Service {
	return NewService(repository.NewQuestionRepository(store), cats, ServiceOptions{})
}

func ptr[T any](v T) *T {
	return &v
}

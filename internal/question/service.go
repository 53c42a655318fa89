package question

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/gokatarajesh/trivia-api/internal/category"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

// CategoryLookup resolves categories for existence checks and navigation payloads.
type CategoryLookup interface {
	Get(ctx context.Context, id int64) (category.Category, error)
	List(ctx context.Context) ([]category.Category, error)
}

type ServiceOptions struct {
	// Intn returns a uniform index in [0, n). Defaults to math/rand/v2.IntN.
	Intn func(n int) int
}

// Service is the question query engine: listing, filtering, search, mutation and quiz turns.
type Service struct {
	repo       *repository.QuestionRepository
	categories CategoryLookup
	intn       func(n int) int
}

func NewService(repo *repository.QuestionRepository, categories CategoryLookup, opts ServiceOptions) *Service {
	intn := opts.Intn
	if intn == nil {
		intn = rand.IntN
	}
	return &Service{
		repo:       repo,
		categories: categories,
		intn:       intn,
	}
}

// List returns the requested page of all questions ordered by id.
func (s *Service) List(ctx context.Context, page int) (Page, error) {
	all, err := s.all(ctx)
	if err != nil {
		return Page{}, err
	}
	return Page{Questions: Paginate(all, page), Total: len(all)}, nil
}

// ListByCategory resolves the category and pages its questions. A missing or
// non-positive category yields category.ErrNotFound.
func (s *Service) ListByCategory(ctx context.Context, categoryID int64, page int) (category.Category, Page, error) {
	current, err := s.categories.Get(ctx, categoryID)
	if err != nil {
		return category.Category{}, Page{}, err
	}
	rows, err := s.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return category.Category{}, Page{}, fmt.Errorf("list questions by category: %w", err)
	}
	questions := fromRows(rows)
	return current, Page{Questions: Paginate(questions, page), Total: len(questions)}, nil
}

// Search pages the questions whose text contains term, ignoring case. An empty
// term matches every question.
func (s *Service) Search(ctx context.Context, term string, page int) (Page, error) {
	rows, err := s.repo.Search(ctx, term)
	if err != nil {
		return Page{}, fmt.Errorf("search questions: %w", err)
	}
	matches := fromRows(rows)
	return Page{Questions: Paginate(matches, page), Total: len(matches)}, nil
}

// Get returns one question or ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (Question, error) {
	row, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Question{}, ErrNotFound
		}
		return Question{}, fmt.Errorf("get question: %w", err)
	}
	return fromRow(row), nil
}

// Create validates and inserts a question, then returns it with a fresh page of all questions.
// Validation failures and unknown categories wrap ErrUnprocessable; nothing is written for them.
func (s *Service) Create(ctx context.Context, in CreateInput, page int) (Question, Page, error) {
	if err := in.Validate(); err != nil {
		return Question{}, Page{}, err
	}
	if *in.Difficulty < math.MinInt32 || *in.Difficulty > math.MaxInt32 {
		return Question{}, Page{}, fmt.Errorf("%w: difficulty out of range", ErrUnprocessable)
	}
	if _, err := s.categories.Get(ctx, *in.Category); err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return Question{}, Page{}, fmt.Errorf("%w: category %d does not exist", ErrUnprocessable, *in.Category)
		}
		return Question{}, Page{}, fmt.Errorf("resolve category: %w", err)
	}

	row, err := s.repo.Insert(ctx, repository.InsertQuestionParams{
		Question:   *in.Question,
		Answer:     *in.Answer,
		Category:   *in.Category,
		Difficulty: int32(*in.Difficulty),
	})
	if err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return Question{}, Page{}, fmt.Errorf("%w: %v", ErrUnprocessable, err)
		}
		return Question{}, Page{}, fmt.Errorf("insert question: %w", err)
	}

	listing, err := s.List(ctx, page)
	if err != nil {
		return Question{}, Page{}, err
	}
	return fromRow(row), listing, nil
}

// Delete removes a question and returns a fresh page of the remaining ones.
func (s *Service) Delete(ctx context.Context, id int64, page int) (Page, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Page{}, ErrNotFound
		}
		return Page{}, fmt.Errorf("delete question: %w", err)
	}
	return s.List(ctx, page)
}

func (s *Service) all(ctx context.Context) ([]Question, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return fromRows(rows), nil
}

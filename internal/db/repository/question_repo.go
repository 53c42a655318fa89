package repository

import (
	"context"
)

type questionStore interface {
	ListQuestions(ctx context.Context) ([]Question, error)
	ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]Question, error)
	SearchQuestions(ctx context.Context, term string) ([]Question, error)
	GetQuestion(ctx context.Context, id int64) (Question, error)
	InsertQuestion(ctx context.Context, arg InsertQuestionParams) (Question, error)
	DeleteQuestion(ctx context.Context, id int64) error
}

// QuestionRepository wraps the question queries used by the API.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// List returns every question ordered by ascending id.
func (r *QuestionRepository) List(ctx context.Context) ([]Question, error) {
	return r.store.ListQuestions(ctx)
}

// ListByCategory returns the questions filed under categoryID, ordered by id.
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int64) ([]Question, error) {
	return r.store.ListQuestionsByCategory(ctx, categoryID)
}

// Search returns questions whose text contains term, ignoring case.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]Question, error) {
	return r.store.SearchQuestions(ctx, term)
}

// Get fetches one question; ErrNotFound when absent.
func (r *QuestionRepository) Get(ctx context.Context, id int64) (Question, error) {
	return r.store.GetQuestion(ctx, id)
}

// Insert stores a new question and returns it with its assigned id.
func (r *QuestionRepository) Insert(ctx context.Context, params InsertQuestionParams) (Question, error) {
	return r.store.InsertQuestion(ctx, params)
}

// Delete removes a question; ErrNotFound when no row matched.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	return r.store.DeleteQuestion(ctx, id)
}

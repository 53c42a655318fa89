package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a lookup or delete matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidReference is returned when an insert violates a foreign key.
	ErrInvalidReference = errors.New("invalid reference")
)

const pgForeignKeyViolation = "23503"

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries holds every SQL statement the API issues against Postgres.
type Queries struct {
	db DBTX
}

// New binds the statements to a connection or pool.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const listCategories = `
SELECT id, type
FROM categories
ORDER BY id
`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.Query(ctx, listCategories)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Type); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return items, nil
}

const getCategory = `
SELECT id, type
FROM categories
WHERE id = $1
`

func (q *Queries) GetCategory(ctx context.Context, id int64) (Category, error) {
	var c Category
	err := q.db.QueryRow(ctx, getCategory, id).Scan(&c.ID, &c.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, ErrNotFound
		}
		return Category{}, fmt.Errorf("get category %d: %w", id, err)
	}
	return c, nil
}

const listQuestions = `
SELECT id, question, answer, category, difficulty
FROM questions
ORDER BY id
`

func (q *Queries) ListQuestions(ctx context.Context) ([]Question, error) {
	return q.queryQuestions(ctx, "list questions", listQuestions)
}

const listQuestionsByCategory = `
SELECT id, question, answer, category, difficulty
FROM questions
WHERE category = $1
ORDER BY id
`

func (q *Queries) ListQuestionsByCategory(ctx context.Context, categoryID int64) ([]Question, error) {
	return q.queryQuestions(ctx, "list questions by category", listQuestionsByCategory, categoryID)
}

const searchQuestions = `
SELECT id, question, answer, category, difficulty
FROM questions
WHERE question ILIKE '%' || $1 || '%'
ORDER BY id
`

// SearchQuestions matches term as a literal, case-insensitive substring of the question text.
func (q *Queries) SearchQuestions(ctx context.Context, term string) ([]Question, error) {
	return q.queryQuestions(ctx, "search questions", searchQuestions, escapeLike(term))
}

const getQuestion = `
SELECT id, question, answer, category, difficulty
FROM questions
WHERE id = $1
`

func (q *Queries) GetQuestion(ctx context.Context, id int64) (Question, error) {
	var row Question
	err := q.db.QueryRow(ctx, getQuestion, id).Scan(
		&row.ID,
		&row.Question,
		&row.Answer,
		&row.Category,
		&row.Difficulty,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Question{}, ErrNotFound
		}
		return Question{}, fmt.Errorf("get question %d: %w", id, err)
	}
	return row, nil
}

const insertQuestion = `
INSERT INTO questions (question, answer, category, difficulty)
VALUES ($1, $2, $3, $4)
RETURNING id, question, answer, category, difficulty
`

func (q *Queries) InsertQuestion(ctx context.Context, arg InsertQuestionParams) (Question, error) {
	var row Question
	err := q.db.QueryRow(ctx, insertQuestion,
		arg.Question,
		arg.Answer,
		arg.Category,
		arg.Difficulty,
	).Scan(
		&row.ID,
		&row.Question,
		&row.Answer,
		&row.Category,
		&row.Difficulty,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return Question{}, fmt.Errorf("%w: category %d", ErrInvalidReference, arg.Category)
		}
		return Question{}, fmt.Errorf("insert question: %w", err)
	}
	return row, nil
}

const deleteQuestion = `DELETE FROM questions WHERE id = $1`

func (q *Queries) DeleteQuestion(ctx context.Context, id int64) error {
	tag, err := q.db.Exec(ctx, deleteQuestion, id)
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (q *Queries) queryQuestions(ctx context.Context, op, sql string, args ...any) ([]Question, error) {
	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []Question
	for rows.Next() {
		var row Question
		if err := rows.Scan(
			&row.ID,
			&row.Question,
			&row.Answer,
			&row.Category,
			&row.Difficulty,
		); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		items = append(items, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate: %w", op, err)
	}
	return items, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralises LIKE wildcards so the term matches literally.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

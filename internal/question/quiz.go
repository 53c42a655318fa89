package question

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var quizTurns = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "trivia_quiz_turns_total",
	Help: "Quiz turns served, by whether a question was left to ask.",
}, []string{"outcome"})

// NextQuizQuestion picks a uniformly random question from the candidate set
// (every question for AnyCategory, otherwise the category's questions) after
// dropping ids in previous. It returns nil when nothing is left. No state is
// kept between turns; the caller resends previous each time.
func (s *Service) NextQuizQuestion(ctx context.Context, categoryID int64, previous []int64) (*Question, error) {
	candidates, err := s.quizCandidates(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	remaining := excludeAsked(candidates, previous)
	if len(remaining) == 0 {
		quizTurns.WithLabelValues("exhausted").Inc()
		return nil, nil
	}

	picked := remaining[s.intn(len(remaining))]
	quizTurns.WithLabelValues("question").Inc()
	return &picked, nil
}

func (s *Service) quizCandidates(ctx context.Context, categoryID int64) ([]Question, error) {
	if categoryID == AnyCategory {
		return s.all(ctx)
	}
	rows, err := s.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list quiz candidates: %w", err)
	}
	return fromRows(rows), nil
}

func excludeAsked(candidates []Question, previous []int64) []Question {
	if len(previous) == 0 {
		return candidates
	}
	asked := make(map[int64]struct{}, len(previous))
	for _, id := range previous {
		asked[id] = struct{}{}
	}
	remaining := make([]Question, 0, len(candidates))
	for _, q := range candidates {
		if _, seen := asked[q.ID]; !seen {
			remaining = append(remaining, q)
		}
	}
	return remaining
}

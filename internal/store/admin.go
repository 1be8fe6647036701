package store

import (
	"context"
	"fmt"

	"github.com/lexforge/lexforge/internal/domain"
)

// MissingQuestions returns passage assets that no stored reading
// comprehension question references. These are the passages a follow-up
// generation run should target.
func MissingQuestions(ctx context.Context, s DocumentStore) ([]*Document, error) {
	passages, err := s.Query(ctx, CollectionAssets, Filter{Kind: string(domain.TypePassage)})
	if err != nil {
		return nil, fmt.Errorf("query passages: %w", err)
	}
	questions, err := s.Query(ctx, CollectionQuestions, Filter{Kind: string(domain.TypeReadingComprehension)})
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}

	covered := make(map[string]bool, len(questions))
	for _, q := range questions {
		if q.Ref != "" {
			covered[q.Ref] = true
		}
	}

	var missing []*Document
	for _, p := range passages {
		if !covered[p.ID] {
			missing = append(missing, p)
		}
	}
	return missing, nil
}

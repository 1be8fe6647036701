package ingest

import (
	"fmt"

	"github.com/lexforge/lexforge/internal/domain"
)

// Exclusion names one question removed by the linker and why.
type Exclusion struct {
	Index    int
	Question domain.AnyQuestion
	Reason   string
}

// LinkToPassage confirms every question produced alongside a passage actually
// references that passage. A mismatched contentAssetId excludes only that
// question: one echoed placeholder ID must not discard an otherwise valid
// batch. Questions whose type carries no content reference pass through.
func LinkToPassage(passage *domain.PassageAsset, qs []domain.AnyQuestion) ([]domain.AnyQuestion, []Exclusion) {
	var linked []domain.AnyQuestion
	var excluded []Exclusion
	for i, q := range qs {
		ref := domain.ContentRef(q)
		if ref != "" && ref != passage.AssetID {
			excluded = append(excluded, Exclusion{
				Index:    i,
				Question: q,
				Reason:   fmt.Sprintf("contentAssetId %q does not match passage %q", ref, passage.AssetID),
			})
			continue
		}
		linked = append(linked, q)
	}
	return linked, excluded
}

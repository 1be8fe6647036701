package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/lexforge/lexforge/internal/domain"
	"github.com/lexforge/lexforge/internal/llm"
)

const seedTopic = "Night Markets in Taiwan"

// Provider is an offline llm.Provider that answers every request from the
// embedded payload catalog. It inspects the prompt the same way a reviewer
// would: the payload whose shape the prompt asks for is the one returned.
type Provider struct {
	reg *Registry
}

// NewProvider loads the payload catalog and wraps it as a provider.
func NewProvider() (*Provider, error) {
	reg := NewRegistry()
	if err := reg.Load(); err != nil {
		return nil, err
	}
	return &Provider{reg: reg}, nil
}

func (p *Provider) Name() string {
	return "seed"
}

// Generate returns the canned payload matching the request. Plain-text
// requests (topics, articles) get fixed prose; JSON requests get the
// payload whose top-level shape the prompt describes.
func (p *Provider) Generate(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := p.payloadFor(req)
	if err != nil {
		return nil, err
	}
	return &llm.Response{
		Content:      content,
		FinishReason: "stop",
		Usage:        llm.Usage{InputTokens: len(req.Prompt) / 4, OutputTokens: len(content) / 4},
	}, nil
}

func (p *Provider) payloadFor(req *llm.Request) (string, error) {
	if !req.WantJSON {
		if strings.Contains(req.System, "article topics") {
			return seedTopic, nil
		}
		return "The Night Market\n\nEvery evening the stalls light up and the cooking begins. " +
			"Visitors wander from stand to stand, tasting a little of everything.", nil
	}

	prompt := req.Prompt
	switch {
	case strings.Contains(prompt, "passageAsset"):
		return p.reg.Get(ReadingMaterial)
	case strings.Contains(prompt, "questions_list"):
		return p.reg.Get(QuestionBatch)
	}

	for _, qt := range []domain.QuestionType{
		domain.TypeFillInTheBlank,
		domain.TypeTranslation,
		domain.TypePictureDescription,
		domain.TypeReadingComprehension,
		domain.TypeListeningComprehension,
		domain.TypeSpellingCorrection,
	} {
		if strings.Contains(prompt, string(qt)) {
			return p.reg.Get("question_" + strings.ToLower(string(qt)))
		}
	}

	for _, at := range []domain.AssetType{domain.TypePassage, domain.TypeAudio, domain.TypeImage} {
		if strings.Contains(prompt, string(at)) {
			return p.reg.Get("asset_" + strings.ToLower(string(at)))
		}
	}

	return "", fmt.Errorf("no seed payload matches the request")
}

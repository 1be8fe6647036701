package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lexforge/lexforge/internal/domain"
	"github.com/lexforge/lexforge/internal/events"
	"github.com/lexforge/lexforge/internal/ingest"
	"github.com/lexforge/lexforge/internal/llm"
	"github.com/lexforge/lexforge/internal/prompt"
	"github.com/lexforge/lexforge/internal/store"
)

const generateTimeout = 5 * time.Minute

// cmdGenerate creates new content through the configured LLM provider.
func cmdGenerate(args []string) error {
	if len(args) < 1 {
		fmt.Println(`Generate commands:

  lexforge generate reading [--topic T] [--level L] [--questions N] [--seed]
  lexforge generate article [--topic T] [--level L] [--seed]
  lexforge generate question <type> [--level L] [--seed]
  lexforge generate topic [--seed]

Question types:
  FILL_IN_THE_BLANK, TRANSLATION, PICTURE_DESCRIPTION,
  READING_COMPREHENSION, LISTENING_COMPREHENSION, SPELLING_CORRECTION`)
		return nil
	}

	switch args[0] {
	case "reading":
		return cmdGenerateReading(args[1:])
	case "article":
		return cmdGenerateArticle(args[1:])
	case "question":
		return cmdGenerateQuestion(args[1:])
	case "topic":
		return cmdGenerateTopic(args[1:])
	default:
		return fmt.Errorf("unknown generate command: %s", args[0])
	}
}

func (a *app) resolveLevel(name string) (domain.DifficultyDetail, error) {
	if name == "" {
		name = a.cfg.Level
	}
	if name == "" {
		return prompt.DefaultLevel(), nil
	}
	lvl, ok := prompt.LevelByName(name)
	if !ok {
		return domain.DifficultyDetail{}, fmt.Errorf("unknown difficulty level %q", name)
	}
	return lvl, nil
}

func cmdGenerateReading(args []string) error {
	fs := flag.NewFlagSet("generate reading", flag.ContinueOnError)
	topic := fs.String("topic", "", "passage topic (random when empty)")
	levelName := fs.String("level", "", "difficulty level name")
	questions := fs.Int("questions", 0, "number of questions")
	seedMode := fs.Bool("seed", false, "use the offline seed provider")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	if err := a.initProviders(*seedMode); err != nil {
		return err
	}
	if err := a.initStore(ctx); err != nil {
		return err
	}
	a.initPublisher()

	level, err := a.resolveLevel(*levelName)
	if err != nil {
		return err
	}
	want := *questions
	if want <= 0 {
		want = a.cfg.QuestionCount
	}

	opts := prompt.MaterialOptions{
		Topic:          *topic,
		Level:          level,
		QuestionCount:  want,
		ChoiceCount:    a.cfg.ChoiceCount,
		WordTarget:     a.cfg.WordTarget,
		ParagraphCount: a.cfg.ParagraphCount,
	}
	p, err := a.provider()
	if err != nil {
		return err
	}

	resp, err := p.Generate(ctx, &llm.Request{
		Model:    a.cfg.LLMModel,
		System:   prompt.SystemGenerator,
		Prompt:   prompt.ReadingMaterial(opts),
		WantJSON: true,
	})
	if err != nil {
		return fmt.Errorf("generate reading material: %w", err)
	}

	res := a.pipeline.IngestReadingMaterial(resp.Content, want)
	if !res.Accepted() {
		a.reportRejection(ctx, "READING_COMPREHENSION", res.Rejection)
		return fmt.Errorf("reading material rejected: %w", res.Rejection)
	}
	material := res.Material

	// One bounded top-up round when the model under-delivered. Still a
	// partial success if the top-up fails too.
	if deficit := want - len(material.Questions); deficit > 0 {
		a.topUpQuestions(ctx, p, material, deficit)
	}

	assetDoc, err := store.NewAssetDocument(&material.PassageAsset)
	if err != nil {
		return err
	}
	if _, err := a.docs.Put(ctx, assetDoc); err != nil {
		return fmt.Errorf("persist passage: %w", err)
	}
	ids, err := a.persistQuestions(ctx, material.Questions)
	if err != nil {
		return err
	}

	fmt.Printf("Passage: %s (%s)\n", material.PassageAsset.Title.EN, material.PassageAsset.AssetID)
	fmt.Printf("Questions accepted: %d of %d requested\n", len(material.Questions), want)
	for _, drop := range res.Dropped {
		fmt.Printf("  dropped element %d: %s\n", drop.Index, drop.Detail)
	}

	a.publishAccepted(ctx, &events.ContentAccepted{
		Collection:     store.CollectionQuestions,
		DocumentIDs:    ids,
		Kind:           string(domain.TypeReadingComprehension),
		AcceptedCount:  len(material.Questions),
		RequestedCount: want,
	})
	return nil
}

// topUpQuestions asks for the missing questions over the accepted passage.
// Exactly one extra round; whatever survives is appended.
func (a *app) topUpQuestions(ctx context.Context, p llm.Provider, material *domain.GeneratedReadingMaterial, deficit int) {
	resp, err := p.Generate(ctx, &llm.Request{
		Model:  a.cfg.LLMModel,
		System: prompt.SystemGenerator,
		Prompt: prompt.QuestionBatch(prompt.BatchOptions{
			PassageContent: material.PassageAsset.Content,
			LevelName:      material.PassageAsset.Difficulty.Name.EN,
			Count:          deficit,
			ChoiceCount:    a.cfg.ChoiceCount,
		}),
		WantJSON: true,
	})
	if err != nil {
		a.logger.Warn("top-up generation failed", "error", err)
		return
	}

	req := ingest.QuestionRequest{
		ExpectedType: domain.TypeReadingComprehension,
		AssetID:      material.PassageAsset.AssetID,
		Difficulty:   &material.PassageAsset.Difficulty,
	}
	report := a.pipeline.IngestQuestionBatch(resp.Content, deficit, req)
	if report.State != ingest.StateAccepted {
		a.logger.Warn("top-up batch rejected", "error", report.Rejection)
		return
	}
	linked, _ := ingest.LinkToPassage(&material.PassageAsset, report.Accepted)
	material.Questions = append(material.Questions, linked...)
}

// cmdGenerateArticle generates a standalone prose article and stores it as a
// passage asset. The article surface is plain text, so the prose is wrapped
// in the passage wire shape and run through the same ingestion path as model
// JSON before anything is persisted.
func cmdGenerateArticle(args []string) error {
	fs := flag.NewFlagSet("generate article", flag.ContinueOnError)
	topic := fs.String("topic", "", "article topic (random when empty)")
	levelName := fs.String("level", "", "difficulty level name")
	seedMode := fs.Bool("seed", false, "use the offline seed provider")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	if err := a.initProviders(*seedMode); err != nil {
		return err
	}
	if err := a.initStore(ctx); err != nil {
		return err
	}
	a.initPublisher()

	level, err := a.resolveLevel(*levelName)
	if err != nil {
		return err
	}
	subject := *topic
	if subject == "" {
		subject = prompt.RandomTopic()
	}
	p, err := a.provider()
	if err != nil {
		return err
	}

	resp, err := p.Generate(ctx, &llm.Request{
		Model:  a.cfg.LLMModel,
		System: prompt.SystemArticle,
		Prompt: prompt.Article(subject, level.Name.EN, a.cfg.ParagraphCount, a.cfg.WordTarget),
	})
	if err != nil {
		return fmt.Errorf("generate article: %w", err)
	}

	raw, err := articleToPassageJSON(resp.Content, subject, level)
	if err != nil {
		return err
	}
	res := a.pipeline.IngestAsset(raw, domain.TypePassage)
	if !res.Accepted() {
		a.reportRejection(ctx, string(domain.TypePassage), res.Rejection)
		return fmt.Errorf("article rejected: %w", res.Rejection)
	}

	doc, err := store.NewAssetDocument(res.Asset)
	if err != nil {
		return err
	}
	id, err := a.docs.Put(ctx, doc)
	if err != nil {
		return fmt.Errorf("persist article: %w", err)
	}

	passage := res.Asset.(*domain.PassageAsset)
	fmt.Printf("Article: %s (%s)\n", passage.Title.EN, id)

	a.publishAccepted(ctx, &events.ContentAccepted{
		Collection:     store.CollectionAssets,
		DocumentIDs:    []string{id},
		Kind:           string(domain.TypePassage),
		AcceptedCount:  1,
		RequestedCount: 1,
	})
	return nil
}

// articleToPassageJSON wraps article prose in the passage asset wire shape.
// The first line of the prose is the title, the remainder the content.
func articleToPassageJSON(prose, topic string, level domain.DifficultyDetail) (string, error) {
	text := strings.TrimSpace(prose)
	if text == "" {
		return "", fmt.Errorf("article text is empty")
	}
	title := text
	content := ""
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		title = strings.TrimSpace(text[:i])
		content = strings.TrimSpace(text[i+1:])
	}
	if content == "" {
		// A response with no title line is all content.
		content = title
		title = topic
	}

	asset := domain.PassageAsset{
		AssetBase: domain.AssetBase{
			AssetID:    uuid.NewString(),
			AssetType:  domain.TypePassage,
			Title:      domain.LocalizedString{EN: title},
			Difficulty: level,
			Status:     domain.StatusDraft,
			Version:    1,
			Source:     "AI Generated from topic: " + topic,
		},
		Content: content,
	}
	raw, err := json.Marshal(&asset)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func cmdGenerateQuestion(args []string) error {
	fs := flag.NewFlagSet("generate question", flag.ContinueOnError)
	levelName := fs.String("level", "", "difficulty level name")
	seedMode := fs.Bool("seed", false, "use the offline seed provider")

	if len(args) < 1 || args[0] == "" {
		return fmt.Errorf("question type required (e.g., FILL_IN_THE_BLANK)")
	}
	qt, err := domain.ResolveQuestionType(args[0])
	if err != nil {
		return err
	}
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	if err := a.initProviders(*seedMode); err != nil {
		return err
	}
	if err := a.initStore(ctx); err != nil {
		return err
	}
	a.initPublisher()

	level, err := a.resolveLevel(*levelName)
	if err != nil {
		return err
	}
	p, err := a.provider()
	if err != nil {
		return err
	}

	resp, err := p.Generate(ctx, &llm.Request{
		Model:    a.cfg.LLMModel,
		System:   prompt.SystemGenerator,
		Prompt:   prompt.Question(qt, level),
		WantJSON: true,
	})
	if err != nil {
		return fmt.Errorf("generate question: %w", err)
	}

	res := a.pipeline.IngestQuestion(resp.Content, ingest.QuestionRequest{
		ExpectedType: qt,
		Difficulty:   &level,
	})
	if !res.Accepted() {
		a.reportRejection(ctx, string(qt), res.Rejection)
		return fmt.Errorf("question rejected: %w", res.Rejection)
	}

	ids, err := a.persistQuestions(ctx, []domain.AnyQuestion{res.Question})
	if err != nil {
		return err
	}
	fmt.Printf("Accepted %s question: %s\n", qt, ids[0])

	a.publishAccepted(ctx, &events.ContentAccepted{
		Collection:     store.CollectionQuestions,
		DocumentIDs:    ids,
		Kind:           string(qt),
		AcceptedCount:  1,
		RequestedCount: 1,
	})
	return nil
}

func cmdGenerateTopic(args []string) error {
	fs := flag.NewFlagSet("generate topic", flag.ContinueOnError)
	seedMode := fs.Bool("seed", false, "use the offline seed provider")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.initProviders(*seedMode); err != nil {
		return err
	}
	p, err := a.provider()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	resp, err := p.Generate(ctx, &llm.Request{
		Model:  a.cfg.LLMModel,
		System: prompt.SystemRandomTopic,
		Prompt: prompt.RandomTopicPrompt(),
	})
	if err != nil {
		return fmt.Errorf("generate topic: %w", err)
	}
	fmt.Println(resp.Content)
	return nil
}

// persistQuestions stores each question under a fresh document ID.
func (a *app) persistQuestions(ctx context.Context, qs []domain.AnyQuestion) ([]string, error) {
	ids := make([]string, 0, len(qs))
	for _, q := range qs {
		doc, err := store.NewQuestionDocument(q)
		if err != nil {
			return nil, err
		}
		id, err := a.docs.Put(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("persist question: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (a *app) publishAccepted(ctx context.Context, ev *events.ContentAccepted) {
	if err := a.publisher.PublishAccepted(ctx, ev); err != nil {
		a.logger.Warn("accepted event not published", "error", err)
	}
}

func (a *app) reportRejection(ctx context.Context, kind string, rej *ingest.Rejection) {
	for _, v := range rej.Violations {
		fmt.Printf("  violation %s at %s: %s\n", v.Rule, v.Field, v.Message)
	}
	err := a.publisher.PublishRejected(ctx, &events.ContentRejected{
		Kind:   kind,
		Reason: rej.Error(),
	})
	if err != nil {
		a.logger.Warn("rejected event not published", "error", err)
	}
}

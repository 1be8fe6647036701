package main

import (
	"strings"
	"testing"

	"github.com/lexforge/lexforge/internal/domain"
	"github.com/lexforge/lexforge/internal/ingest"
	"github.com/lexforge/lexforge/internal/prompt"
)

func TestArticleToPassageJSON_IngestsAsPassage(t *testing.T) {
	prose := "The Night Market\n\nEvery evening the stalls light up and the cooking begins. " +
		"Visitors wander from stand to stand, tasting a little of everything."

	raw, err := articleToPassageJSON(prose, "Night Markets in Taiwan", prompt.DefaultLevel())
	if err != nil {
		t.Fatal(err)
	}

	res := ingest.NewPipeline(nil).IngestAsset(raw, domain.TypePassage)
	if !res.Accepted() {
		t.Fatalf("article passage rejected: %v", res.Rejection)
	}
	passage, ok := res.Asset.(*domain.PassageAsset)
	if !ok {
		t.Fatalf("asset is %T, want *PassageAsset", res.Asset)
	}
	if passage.Title.EN != "The Night Market" {
		t.Errorf("title = %q, want first prose line", passage.Title.EN)
	}
	if !strings.HasPrefix(passage.Content, "Every evening") {
		t.Errorf("content = %q, want prose body", passage.Content)
	}
	if passage.AssetID == "" {
		t.Error("asset ID must be minted")
	}
	if passage.Source != "AI Generated from topic: Night Markets in Taiwan" {
		t.Errorf("source = %q", passage.Source)
	}
}

func TestArticleToPassageJSON_SingleLine(t *testing.T) {
	raw, err := articleToPassageJSON("A single paragraph with no title line.", "Bubble Tea", prompt.DefaultLevel())
	if err != nil {
		t.Fatal(err)
	}
	res := ingest.NewPipeline(nil).IngestAsset(raw, domain.TypePassage)
	if !res.Accepted() {
		t.Fatalf("rejected: %v", res.Rejection)
	}
	passage := res.Asset.(*domain.PassageAsset)
	if passage.Title.EN != "Bubble Tea" {
		t.Errorf("title = %q, want the topic", passage.Title.EN)
	}
	if passage.Content != "A single paragraph with no title line." {
		t.Errorf("content = %q", passage.Content)
	}
}

func TestArticleToPassageJSON_Empty(t *testing.T) {
	if _, err := articleToPassageJSON("  \n ", "Anything", prompt.DefaultLevel()); err == nil {
		t.Error("want error for empty article text")
	}
}

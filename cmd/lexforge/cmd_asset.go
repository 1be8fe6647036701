package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lexforge/lexforge/internal/domain"
	"github.com/lexforge/lexforge/internal/events"
	"github.com/lexforge/lexforge/internal/store"
)

// cmdAsset manages content assets.
func cmdAsset(args []string) error {
	if len(args) < 1 {
		fmt.Println(`Asset commands:

  lexforge asset add <PASSAGE|AUDIO|IMAGE> <file.json>  Validate and store an asset
  lexforge asset add-passage <file.json>                Shorthand for add PASSAGE
  lexforge asset add-audio <file.json>                  Shorthand for add AUDIO
  lexforge asset add-image <file.json>                  Shorthand for add IMAGE
  lexforge asset list [kind]                            List stored assets`)
		return nil
	}

	switch args[0] {
	case "add":
		if len(args) < 3 {
			return fmt.Errorf("usage: lexforge asset add <PASSAGE|AUDIO|IMAGE> <file.json>")
		}
		return cmdAssetAdd(args[1], args[2])
	case "add-passage", "add-audio", "add-image":
		if len(args) < 2 {
			return fmt.Errorf("usage: lexforge asset %s <file.json>", args[0])
		}
		kind := strings.ToUpper(strings.TrimPrefix(args[0], "add-"))
		return cmdAssetAdd(kind, args[1])
	case "list":
		kind := ""
		if len(args) > 1 {
			kind = args[1]
		}
		return cmdAssetList(kind)
	default:
		return fmt.Errorf("unknown asset command: %s", args[0])
	}
}

// cmdAssetAdd runs a JSON file through the same ingestion path as model
// output. Hand-authored assets get no special treatment: invalid content is
// rejected with the full violation list.
func cmdAssetAdd(typeName, path string) error {
	at, err := domain.ResolveAssetType(typeName)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read asset file: %w", err)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.initStore(ctx); err != nil {
		return err
	}
	a.initPublisher()

	res := a.pipeline.IngestAsset(string(data), at)
	if !res.Accepted() {
		a.reportRejection(ctx, string(at), res.Rejection)
		return fmt.Errorf("asset rejected: %w", res.Rejection)
	}

	doc, err := store.NewAssetDocument(res.Asset)
	if err != nil {
		return err
	}
	id, err := a.docs.Put(ctx, doc)
	if err != nil {
		return fmt.Errorf("persist asset: %w", err)
	}

	fmt.Printf("Stored %s asset: %s\n", at, id)
	a.publishAccepted(ctx, &events.ContentAccepted{
		Collection:     store.CollectionAssets,
		DocumentIDs:    []string{id},
		Kind:           string(at),
		AcceptedCount:  1,
		RequestedCount: 1,
	})
	return nil
}

func cmdAssetList(kind string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.initStore(ctx); err != nil {
		return err
	}

	docs, err := a.docs.Query(ctx, store.CollectionAssets, store.Filter{Kind: kind})
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		fmt.Println("No assets stored.")
		return nil
	}
	for _, doc := range docs {
		fmt.Printf("  %s  %-8s  tags=%v  updated=%s\n",
			doc.ID, doc.Kind, doc.Tags, doc.UpdatedAt.Format(time.RFC3339))
	}
	return nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/lexforge/lexforge/internal/store"
)

// cmdStore inspects and maintains the document store.
func cmdStore(args []string) error {
	if len(args) < 1 {
		fmt.Println(`Store commands:

  lexforge store check                                   Verify connectivity
  lexforge store list <questions|assets> [--kind K] [--tag T] [--limit N]
  lexforge store delete <questions|assets> <id>          Delete one document
  lexforge store missing-questions                       Passages without questions`)
		return nil
	}

	switch args[0] {
	case "check":
		return cmdStoreCheck()
	case "list":
		if len(args) < 2 {
			return fmt.Errorf("collection required: questions or assets")
		}
		return cmdStoreList(args[1], args[2:])
	case "delete":
		if len(args) < 3 {
			return fmt.Errorf("usage: lexforge store delete <collection> <id>")
		}
		return cmdStoreDelete(args[1], args[2])
	case "missing-questions":
		return cmdStoreMissingQuestions()
	default:
		return fmt.Errorf("unknown store command: %s", args[0])
	}
}

func withStore(fn func(ctx context.Context, a *app) error) error {
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
	return fn(ctx, a)
}

func cmdStoreCheck() error {
	return withStore(func(ctx context.Context, a *app) error {
		if err := a.docs.Ping(ctx); err != nil {
			return fmt.Errorf("store unreachable: %w", err)
		}
		fmt.Printf("Store OK (%s)\n", a.cfg.StoreBackend)
		return nil
	})
}

func cmdStoreList(collection string, args []string) error {
	fs := flag.NewFlagSet("store list", flag.ContinueOnError)
	kind := fs.String("kind", "", "filter by discriminator tag")
	tag := fs.String("tag", "", "filter by content tag")
	limit := fs.Int("limit", 0, "maximum rows")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if collection != store.CollectionQuestions && collection != store.CollectionAssets {
		return fmt.Errorf("unknown collection %q", collection)
	}

	return withStore(func(ctx context.Context, a *app) error {
		docs, err := a.docs.Query(ctx, collection, store.Filter{
			Kind:  *kind,
			Tag:   *tag,
			Limit: *limit,
		})
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			fmt.Println("No documents match.")
			return nil
		}
		for _, doc := range docs {
			ref := ""
			if doc.Ref != "" {
				ref = "  ref=" + doc.Ref
			}
			fmt.Printf("  %s  %-24s%s  updated=%s\n",
				doc.ID, doc.Kind, ref, doc.UpdatedAt.Format(time.RFC3339))
		}
		fmt.Printf("%d document(s)\n", len(docs))
		return nil
	})
}

func cmdStoreDelete(collection, id string) error {
	return withStore(func(ctx context.Context, a *app) error {
		if err := a.docs.Delete(ctx, collection, id); err != nil {
			return err
		}
		fmt.Printf("Deleted %s/%s\n", collection, id)
		return nil
	})
}

func cmdStoreMissingQuestions() error {
	return withStore(func(ctx context.Context, a *app) error {
		missing, err := store.MissingQuestions(ctx, a.docs)
		if err != nil {
			return err
		}
		if len(missing) == 0 {
			fmt.Println("Every passage has questions.")
			return nil
		}
		fmt.Println("Passages without questions:")
		for _, doc := range missing {
			fmt.Printf("  %s  updated=%s\n", doc.ID, doc.UpdatedAt.Format(time.RFC3339))
		}
		return nil
	})
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/lexforge/lexforge/internal/config"
	"github.com/lexforge/lexforge/internal/events"
)

// cmdConfig shows the effective configuration. The API key is reported as
// set or unset, never printed.
func cmdConfig() error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	fmt.Println("Current configuration:")
	fmt.Printf("  Store backend:   %s\n", cfg.StoreBackend)
	switch cfg.StoreBackend {
	case "sqlite":
		fmt.Printf("  SQLite path:     %s\n", cfg.SQLitePath)
	case "postgres":
		fmt.Printf("  Postgres URL:    %s\n", cfg.PostgresURL)
	case "mongo":
		fmt.Printf("  Mongo URI:       %s\n", cfg.MongoURI)
		fmt.Printf("  Mongo database:  %s\n", cfg.MongoDatabase)
	}
	fmt.Printf("  LLM provider:    %s\n", cfg.LLMProvider)
	if cfg.LLMModel != "" {
		fmt.Printf("  LLM model:       %s\n", cfg.LLMModel)
	}
	if cfg.LLMBaseURL != "" {
		fmt.Printf("  LLM base URL:    %s\n", cfg.LLMBaseURL)
	}
	if cfg.LLMAPIKey != "" {
		fmt.Println("  LLM API key:     set")
	} else {
		fmt.Println("  LLM API key:     not set")
	}
	if cfg.RabbitMQURL != "" {
		fmt.Println("  Event broker:    configured")
	} else {
		fmt.Println("  Event broker:    disabled")
	}
	fmt.Printf("  Questions:       %d per passage, %d choices each\n", cfg.QuestionCount, cfg.ChoiceCount)
	fmt.Printf("  Passage size:    ~%d words, %d paragraphs\n", cfg.WordTarget, cfg.ParagraphCount)
	if cfg.Level != "" {
		fmt.Printf("  Default level:   %s\n", cfg.Level)
	}
	return nil
}

// cmdDoctor checks each dependency and reports pass or fail without bailing
// at the first problem.
func cmdDoctor() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	healthy := true

	fmt.Print("Store:       ")
	if err := a.initStore(ctx); err != nil {
		fmt.Printf("FAIL (%v)\n", err)
		healthy = false
	} else if err := a.docs.Ping(ctx); err != nil {
		fmt.Printf("FAIL (%v)\n", err)
		healthy = false
	} else {
		fmt.Printf("OK (%s)\n", a.cfg.StoreBackend)
	}

	fmt.Print("Provider:    ")
	switch {
	case a.cfg.LLMProvider == "seed" || a.cfg.LLMProvider == "ollama":
		fmt.Printf("OK (%s, no API key needed)\n", a.cfg.LLMProvider)
	case a.cfg.LLMAPIKey == "":
		fmt.Printf("FAIL (%s configured but LEXFORGE_LLM_API_KEY not set)\n", a.cfg.LLMProvider)
		healthy = false
	default:
		fmt.Printf("OK (%s)\n", a.cfg.LLMProvider)
	}

	fmt.Print("Broker:      ")
	if a.cfg.RabbitMQURL == "" {
		fmt.Println("disabled")
	} else if conn, err := events.NewConnection(a.cfg.RabbitMQURL); err != nil {
		fmt.Printf("FAIL (%v)\n", err)
		healthy = false
	} else {
		conn.Close()
		fmt.Println("OK")
	}

	if !healthy {
		return fmt.Errorf("one or more checks failed")
	}
	fmt.Println("\nAll checks passed.")
	return nil
}

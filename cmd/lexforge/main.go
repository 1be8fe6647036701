package main

import (
	"fmt"
	"os"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "generate":
		err = cmdGenerate(os.Args[2:])
	case "asset":
		err = cmdAsset(os.Args[2:])
	case "store":
		err = cmdStore(os.Args[2:])
	case "config":
		err = cmdConfig()
	case "doctor":
		err = cmdDoctor()
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Printf("lexforge %s\n", Version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`LexForge - AI-generated English exam content

Usage:
  lexforge <command> [arguments]

Generation Commands:
  generate reading    Generate a passage with comprehension questions
  generate article    Generate a standalone article as a passage asset
  generate question   Generate one standalone question
  generate topic      Pick a fresh article topic

Asset Commands:
  asset add           Ingest an asset from a JSON file
  asset list          List stored assets

Store Commands:
  store check             Verify store connectivity
  store list              List stored documents
  store delete            Delete one document
  store missing-questions List passages without questions

Other:
  config          Show current configuration
  doctor          Check providers, store, and broker
  help            Show this help message
  version         Show version information

Examples:
  lexforge generate reading --topic "Night Markets in Taiwan"
  lexforge generate question FILL_IN_THE_BLANK --level "Junior High School - Grade 2"
  lexforge generate reading --seed     # offline, canned content
  lexforge asset add AUDIO clip.json
  lexforge store missing-questions`)
}

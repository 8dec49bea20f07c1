// Package main generates markdown reference documentation for querykit from
// the CLI command tree, the configuration defaults, the dialect registry and
// the suggestion catalog and the intent parser's line prefixes.
//
// Usage:
//
//	go run ./scripts/gendocs -gen=cli -outdir=docs/cli
//	go run ./scripts/gendocs -gen=config -outdir=docs/reference
//	go run ./scripts/gendocs -gen=dialects -outdir=docs/reference
//	go run ./scripts/gendocs -gen=suggestions -outdir=docs/reference
//	go run ./scripts/gendocs -gen=intent -outdir=docs/reference
//	go run ./scripts/gendocs -gen=all
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
)

var (
	genFlag    = flag.String("gen", "all", "what to generate: cli, config, dialects, suggestions, intent, all")
	outDirFlag = flag.String("outdir", "", "output directory (defaults based on gen type)")
)

// generator writes one kind of documentation into a directory.
type generator struct {
	name       string
	defaultDir string
	run        func(outDir string) error
}

var generators = []generator{
	{name: "cli", defaultDir: filepath.Join("docs", "cli"), run: generateCLIDocs},
	{name: "config", defaultDir: filepath.Join("docs", "reference"), run: generateConfigDocs},
	{name: "dialects", defaultDir: filepath.Join("docs", "reference"), run: generateDialectDocs},
	{name: "suggestions", defaultDir: filepath.Join("docs", "reference"), run: generateSuggestionDocs},
	{name: "intent", defaultDir: filepath.Join("docs", "reference"), run: generateIntentDocs},
}

func main() {
	flag.Parse()

	valid := *genFlag == "all"
	for _, g := range generators {
		valid = valid || g.name == *genFlag
	}
	if !valid {
		log.Fatalf("unknown -gen value: %s (use: cli, config, dialects, suggestions, intent, all)", *genFlag)
	}

	// Find project root (where go.mod is)
	projectRoot, err := findProjectRoot()
	if err != nil {
		log.Fatalf("failed to find project root: %v", err)
	}
	log.Printf("Project root: %s", projectRoot)

	for _, g := range generators {
		if *genFlag != "all" && *genFlag != g.name {
			continue
		}
		outDir := filepath.Join(projectRoot, g.defaultDir)
		if *outDirFlag != "" && *genFlag != "all" {
			outDir = *outDirFlag
		}
		if err := g.run(outDir); err != nil {
			log.Fatalf("failed to generate %s docs: %v", g.name, err)
		}
	}

	log.Println("Done!")
}

// findProjectRoot walks up from current directory to find go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/config"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/facts"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/facts/memfacts"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/facts/prolog"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/facts/sqlite"
)

func main() {
	var (
		kbPath       = flag.String("kb", "", "Fact file to load the knowledge base from")
		dbPath       = flag.String("db", "", "SQLite fact database (takes precedence over --kb)")
		backend      = flag.String("backend", "memory", "Store backend for --kb files: memory or prolog")
		synonymsPath = flag.String("synonyms", "", "Synonym lexicon YAML (optional)")
		fallbackPath = flag.String("fallback", "", "Custom fallback knowledge table YAML (optional)")
		topN         = flag.Int("top", 5, "How many top candidates to show")
		explainFlag  = flag.Bool("explain", false, "Show concise differences between top candidate and others")
		symptoms     = flag.String("symptoms", "", "One-shot diagnosis (non-interactive mode)")
	)
	flag.Parse()

	ctx := context.Background()

	engine, components, cleanup, err := buildEngine(ctx, *kbPath, *dbPath, *backend, *synonymsPath, *fallbackPath, *topN)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	snap := engine.Reload(ctx)
	log.Printf("diseases loaded: %d", snap.Len())

	// One-shot mode
	if *symptoms != "" {
		diagnose(engine, components, strings.Fields(*symptoms), *explainFlag)
		return
	}

	// Interactive mode
	fmt.Println("Doc Zaddy diagnosis CLI (weighted matching + synonyms)")
	fmt.Println("Enter symptoms separated by space (type 'exit' to quit). Example: fever cough")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Symptoms: ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if lower := strings.ToLower(line); lower == "exit" || lower == "quit" {
			break
		}

		diagnose(engine, components, strings.Fields(line), *explainFlag)
	}

	fmt.Println("\nGoodbye")
}

func diagnose(engine *zaddy.Zaddy, components *config.Components, tokens []string, explain bool) {
	if len(components.Normalizer.ResolveAll(tokens)) == 0 {
		fmt.Println("No matches (check spelling / try synonyms).")
		return
	}

	resp := engine.Diagnose(zaddy.DiagnoseRequest{
		Symptoms: tokens,
		Explain:  explain,
	})

	if len(resp.Results) == 0 {
		fmt.Println("No disease shares your symptoms directly. Try adding more symptoms or synonyms.")
		return
	}

	fmt.Println("\nTop candidates:")
	for _, r := range resp.Results {
		fmt.Printf(" - %s  (matched: %d/%d, weighted_score: %.2f, simple_score: %.2f)\n",
			r.Disease, r.Matched, r.Total, r.WeightedScore, r.SimpleScore)
	}

	if explain && len(resp.Comparisons) > 0 {
		fmt.Println("\nConcise differences vs top candidate:")
		for _, c := range resp.Comparisons {
			fmt.Printf(" - vs %s: %s\n", c.Disease, c.Summary)
		}
	}

	fmt.Println()
}

func buildEngine(ctx context.Context, kbPath, dbPath, backend, synonymsPath, fallbackPath string, topN int) (*zaddy.Zaddy, *config.Components, func(), error) {
	loader := config.Loader{
		SynonymsPath: synonymsPath,
		FallbackPath: fallbackPath,
	}
	components, err := loader.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	var store facts.Store
	switch {
	case dbPath != "":
		store, err = sqlite.Open(ctx, dbPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open store: %w", err)
		}
	case kbPath != "":
		parsed, err := facts.ParseFile(kbPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("load kb file: %w", err)
		}
		switch backend {
		case "", "memory":
			store = memfacts.Load(parsed)
		case "prolog":
			store, err = prolog.Load(parsed)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("load prolog store: %w", err)
			}
		default:
			return nil, nil, nil, fmt.Errorf("unknown backend %q (want memory or prolog)", backend)
		}
	}

	engine := zaddy.New(zaddy.Options{
		Store:    store,
		Lexicon:  components.Lexicon,
		Fallback: components.Fallback,
		TopN:     topN,
	})

	return engine, components, func() { engine.Close() }, nil
}

// Command kb-import loads s-expression fact files into a SQLite fact
// database, canonicalizing symptom tokens on the way in so the stored
// knowledge base matches what the diagnosis engine expects.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/facts"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/facts/sqlite"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/kb"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/symptom"
)

func main() {
	var (
		dbPath   = flag.String("db", "", "SQLite database to import into (required)")
		synonyms = flag.String("synonyms", "", "Synonym lexicon YAML for canonicalization")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --db FILE [--synonyms FILE] FACTFILE...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *dbPath == "" || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	lex := symptom.DefaultLexicon()
	if *synonyms != "" {
		loaded, err := symptom.LoadLexiconFromYAML(*synonyms)
		if err != nil {
			log.Fatalf("load synonyms: %v", err)
		}
		lex = loaded
	}
	norm := symptom.NewNormalizer()
	norm.SetLexicon(lex)

	ctx := context.Background()
	store, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	total := 0
	skipped := 0
	for _, path := range flag.Args() {
		parsed, err := facts.ParseFile(path)
		if err != nil {
			log.Fatalf("parse %s: %v", path, err)
		}

		imported := 0
		for _, f := range parsed {
			canonical, ok := kb.CanonicalFact(f, norm)
			if !ok {
				skipped++
				continue
			}
			if err := store.Assert(ctx, canonical); err != nil {
				log.Fatalf("assert %s(%s, %s): %v", f.Relation, f.Subject, f.Object, err)
			}
			imported++
		}
		log.Printf("%s: imported %d facts", path, imported)
		total += imported
	}

	snap, err := kb.NewAccessor(store, norm).Load(ctx)
	if err != nil {
		log.Fatalf("verify import: %v", err)
	}
	log.Printf("done: %d facts imported (%d skipped), %d diseases in %s", total, skipped, snap.Len(), *dbPath)
}

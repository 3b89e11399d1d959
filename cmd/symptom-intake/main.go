// Command symptom-intake walks a patient through a yes/no symptom
// checklist, runs rule-based detection over the answers, and prints a
// summary plus a machine-readable JSON export. With --out it also writes
// the active symptom list to a file the diagnose tools can consume.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/rules"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/symptom"
)

type reasonDetail struct {
	MatchedRequired []string `json:"matched_required"`
	MatchedOptional []string `json:"matched_optional"`
}

type intakeExport struct {
	Symptoms         map[string]bool         `json:"symptoms"`
	DetectedDiseases []string                `json:"detected_diseases"`
	ReasonDetails    map[string]reasonDetail `json:"reason_details"`
}

func main() {
	var (
		rulesPath = flag.String("rules", "", "Custom detection rules YAML")
		outPath   = flag.String("out", "", "Write active symptoms JSON to this file")
	)
	flag.Parse()

	engine := rules.DefaultEngine()
	checklist := rules.DefaultChecklist()
	if *rulesPath != "" {
		loaded, err := rules.LoadRulesFromYAML(*rulesPath)
		if err != nil {
			log.Fatalf("load rules: %v", err)
		}
		engine = rules.NewEngine(loaded, symptom.DefaultNormalizer())
		checklist = rules.ChecklistFromRules(engine.Rules())
	}

	fmt.Println("Interactive symptom intake — answer y/n for each symptom.")
	fmt.Println()

	sc := bufio.NewScanner(os.Stdin)
	responses := make(map[string]bool, len(checklist))
	var active []string
	for _, item := range checklist {
		yes, err := askYesNo(sc, item.Label)
		if err != nil {
			log.Fatalf("read input: %v", err)
		}
		responses[item.Key] = yes
		if yes {
			active = append(active, item.Key)
		}
	}

	fmt.Println()
	if len(active) == 0 {
		fmt.Println("Active symptoms: none")
	} else {
		fmt.Printf("Active symptoms: %s\n", strings.Join(active, ", "))
	}
	fmt.Println()

	detections := engine.Detect(active)

	fmt.Println("=== Diagnosis Summary ===")
	if len(detections) == 0 {
		fmt.Println("No diseases detected from current symptom set.")
	} else {
		for _, d := range detections {
			fmt.Printf(" - %s: %s\n", strings.ToUpper(d.Disease), d.Treatment)
			fmt.Printf("   required matched: %s", strings.Join(d.MatchedRequired, ", "))
			if len(d.MatchedOptional) > 0 {
				fmt.Printf("; optional matched: %s", strings.Join(d.MatchedOptional, ", "))
			}
			fmt.Println()
		}
	}

	export := intakeExport{
		Symptoms:         responses,
		DetectedDiseases: make([]string, 0, len(detections)),
		ReasonDetails:    make(map[string]reasonDetail, len(detections)),
	}
	for _, d := range detections {
		export.DetectedDiseases = append(export.DetectedDiseases, d.Disease)
		export.ReasonDetails[d.Disease] = reasonDetail{
			MatchedRequired: emptyIfNil(d.MatchedRequired),
			MatchedOptional: emptyIfNil(d.MatchedOptional),
		}
	}

	fmt.Println()
	fmt.Println("=== JSON Summary ===")
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		log.Fatalf("encode summary: %v", err)
	}
	fmt.Println(string(data))

	if *outPath != "" {
		if err := writeSymptomsFile(*outPath, active); err != nil {
			log.Fatalf("write %s: %v", *outPath, err)
		}
		log.Printf("wrote %d symptoms to %s", len(active), *outPath)
	}
}

func askYesNo(sc *bufio.Scanner, label string) (bool, error) {
	for {
		fmt.Printf("%s? (y/n): ", label)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return false, err
			}
			return false, fmt.Errorf("input closed")
		}
		switch strings.ToLower(strings.TrimSpace(sc.Text())) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Println("Please answer 'y' or 'n'.")
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// writeSymptomsFile saves {"symptoms": [...]} so downstream tools can pick
// the session up without re-asking the patient.
func writeSymptomsFile(path string, active []string) error {
	data, err := json.MarshalIndent(map[string][]string{"symptoms": emptyIfNil(active)}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Package zaddy is the diagnosis engine facade: it wires the fact store,
// symptom normalizer, knowledge snapshots, rarity weights, and scoring into
// one interface the commands build on.
package zaddy

import (
	"context"
	"math"

	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/explain"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/facts"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/kb"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/rank"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/symptom"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/weight"
)

// DefaultTopN caps how many candidates a diagnosis presents when the
// request does not say.
const DefaultTopN = 5

// Zaddy is the main diagnosis engine facade.
type Zaddy struct {
	store    facts.Store
	acc      *kb.Accessor
	norm     *symptom.Normalizer
	holder   *kb.Holder
	weights  *weight.Cache
	scorer   *rank.Scorer
	simple   *rank.Simple
	reports  *explain.Builder
	fallback *kb.Snapshot
	topN     int
}

// Options configures a Zaddy instance.
type Options struct {
	// Store is the fact store backing the knowledge base. A nil store is
	// allowed: every reload then serves the fallback table.
	Store facts.Store

	// Lexicon supplies symptom synonyms. Nil means the builtin lexicon.
	Lexicon *symptom.Lexicon

	// Fallback overrides the builtin fallback snapshot.
	Fallback *kb.Snapshot

	// TopN caps presented candidates; zero means DefaultTopN.
	TopN int

	// CacheSize bounds the weight-model cache; zero means the default.
	CacheSize int
}

// New creates a Zaddy instance with the given dependencies. The knowledge
// base starts at the fallback table; call Reload to pull the fact store in.
func New(opts Options) *Zaddy {
	norm := symptom.NewNormalizer()
	if opts.Lexicon != nil {
		norm.SetLexicon(opts.Lexicon)
	} else {
		norm.SetLexicon(symptom.DefaultLexicon())
	}

	fallback := opts.Fallback
	if fallback == nil {
		fallback = kb.Fallback()
	}

	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	return &Zaddy{
		store:    opts.Store,
		acc:      kb.NewAccessor(opts.Store, norm),
		norm:     norm,
		holder:   kb.NewHolder(fallback),
		weights:  weight.NewCache(opts.CacheSize),
		scorer:   rank.NewScorer(norm),
		simple:   rank.NewSimple(norm),
		reports:  explain.NewBuilder(),
		fallback: fallback,
		topN:     topN,
	}
}

// Close cleanly shuts down the engine.
func (z *Zaddy) Close() error {
	if z.store == nil {
		return nil
	}
	return z.store.Close()
}

// Reload scans the fact store into a fresh snapshot and publishes it
// atomically. In-flight diagnoses keep reading the snapshot they started
// with. When the store is unreachable or empty the fallback table is
// published instead. Returns the snapshot now being served.
func (z *Zaddy) Reload(ctx context.Context) *kb.Snapshot {
	snap := z.acc.LoadOrFallback(ctx, z.fallback)
	z.holder.Swap(snap)
	return snap
}

// Snapshot returns the knowledge snapshot currently being served.
func (z *Zaddy) Snapshot() *kb.Snapshot {
	return z.holder.Snapshot()
}

// Degraded reports whether diagnoses are currently served from the
// fallback table.
func (z *Zaddy) Degraded() bool {
	return z.holder.Snapshot().Degraded()
}

// DiagnoseRequest carries one diagnosis query.
type DiagnoseRequest struct {
	// Symptoms are raw user tokens; normalization and synonym resolution
	// happen inside.
	Symptoms []string

	// TopN caps presented candidates; zero means the engine default.
	TopN int

	// Explain adds differential comparisons against the top candidate and
	// a full identifiable report.
	Explain bool

	// Simple ranks by raw match count instead of rarity weighting.
	Simple bool

	// MaxDiffItems caps symptoms listed per diff segment; zero means the
	// explain default.
	MaxDiffItems int
}

// Result is one presented candidate. Scores are rounded to two decimals;
// the raw fractions live in the report when one is requested.
type Result struct {
	Disease string `json:"disease"`
	Matched int    `json:"matched"`
	Total   int    `json:"total"`

	// Confidence is the plain matched fraction matched/total.
	Confidence float64 `json:"confidence"`

	// WeightedScore is the rarity-weighted fraction the ranking uses.
	WeightedScore float64 `json:"weighted_score"`

	// SimpleScore repeats the matched fraction under the name the REPL
	// prints alongside the weighted score.
	SimpleScore float64 `json:"simple_score"`
}

// DiagnoseResponse is the outcome of one diagnosis query.
type DiagnoseResponse struct {
	Results     []Result             `json:"results"`
	Comparisons []explain.Comparison `json:"comparisons,omitempty"`
	Report      *explain.Report      `json:"report,omitempty"`
	Degraded    bool                 `json:"degraded"`
}

// Diagnose ranks the current knowledge snapshot against the reported
// symptoms. Only candidates sharing at least one symptom are presented.
// The call is pure in-memory work against an immutable snapshot, so it
// never fails and needs no context.
func (z *Zaddy) Diagnose(req DiagnoseRequest) DiagnoseResponse {
	snap := z.holder.Snapshot()

	var cands []rank.Candidate
	if req.Simple {
		cands = z.simple.Score(snap, req.Symptoms)
	} else {
		model := z.weights.For(snap)
		cands = z.scorer.Score(snap, model, req.Symptoms)
	}

	topN := req.TopN
	if topN <= 0 {
		topN = z.topN
	}
	shown := rank.TopMatches(cands, topN)

	resp := DiagnoseResponse{
		Results:  make([]Result, len(shown)),
		Degraded: snap.Degraded(),
	}
	for i, c := range shown {
		resp.Results[i] = Result{
			Disease:       c.Disease,
			Matched:       c.Matched,
			Total:         c.Total,
			Confidence:    round2(c.Simple()),
			WeightedScore: round2(c.Weighted),
			SimpleScore:   round2(c.Simple()),
		}
	}

	if req.Explain {
		if len(shown) > 1 {
			others := make([]string, 0, len(shown)-1)
			for _, c := range shown[1:] {
				others = append(others, c.Disease)
			}
			resp.Comparisons = explain.Compare(snap, shown[0].Disease, others, req.MaxDiffItems)
		}
		report := z.reports.Build(z.norm.ResolveAll(req.Symptoms), cands, resp.Comparisons, snap.Degraded())
		resp.Report = &report
	}

	return resp
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

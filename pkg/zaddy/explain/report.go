package explain

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/rank"
)

// Builder constructs identifiable diagnosis reports.
type Builder struct {
	entropy *ulid.MonotonicEntropy
}

// NewBuilder creates a report builder.
func NewBuilder() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Report is one complete diagnosis outcome: the resolved query, the ranked
// candidates, differential comparisons against the top candidate, and
// whether the knowledge base was degraded at the time.
type Report struct {
	ID          string           `json:"id"`
	Query       []string         `json:"query"`
	Candidates  []rank.Candidate `json:"candidates"`
	Comparisons []Comparison     `json:"comparisons,omitempty"`
	Degraded    bool             `json:"degraded"`
	CreatedAt   time.Time        `json:"created_at"`
}

// Build assembles a report and stamps it with a sortable unique ID.
func (b *Builder) Build(query []string, candidates []rank.Candidate, comparisons []Comparison, degraded bool) Report {
	return Report{
		ID:          ulid.MustNew(ulid.Now(), b.entropy).String(),
		Query:       query,
		Candidates:  candidates,
		Comparisons: comparisons,
		Degraded:    degraded,
		CreatedAt:   time.Now(),
	}
}

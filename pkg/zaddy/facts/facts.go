package facts

import "context"

// HasSymptom is the relation linking a disease to one of its symptoms.
const HasSymptom = "has-symptom"

// Fact is a single binary assertion: Relation(Subject, Object).
type Fact struct {
	Relation string
	Subject  string
	Object   string
}

// Store is the capability interface the knowledge base is built on.
// Implementations must treat no-row queries as empty results, not errors;
// errors are reserved for the store itself being unavailable or broken.
type Store interface {
	Close() error

	// Assert records a fact. Re-asserting an existing fact is a no-op.
	Assert(ctx context.Context, f Fact) error

	// Holds reports whether the exact fact is present.
	Holds(ctx context.Context, f Fact) (bool, error)

	// Subjects enumerates the distinct subjects of a relation.
	Subjects(ctx context.Context, relation string) ([]string, error)

	// Objects enumerates the distinct objects related to a subject.
	Objects(ctx context.Context, relation, subject string) ([]string, error)
}

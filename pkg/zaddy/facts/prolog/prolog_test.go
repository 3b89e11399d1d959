package prolog

import (
	"context"
	"errors"
	"testing"

	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/facts"
	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/internalerr"
)

func TestAssertAndQuery(t *testing.T) {
	ctx := context.Background()
	s, err := Load([]facts.Fact{
		{Relation: facts.HasSymptom, Subject: "flu", Object: "fever"},
		{Relation: facts.HasSymptom, Subject: "flu", Object: "cough"},
		{Relation: facts.HasSymptom, Subject: "malaria", Object: "fever"},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer s.Close()

	ok, err := s.Holds(ctx, facts.Fact{Relation: facts.HasSymptom, Subject: "flu", Object: "fever"})
	if err != nil {
		t.Fatalf("Holds: %v", err)
	}
	if !ok {
		t.Error("asserted fact should hold")
	}

	ok, err = s.Holds(ctx, facts.Fact{Relation: facts.HasSymptom, Subject: "flu", Object: "rash"})
	if err != nil {
		t.Fatalf("Holds: %v", err)
	}
	if ok {
		t.Error("unasserted fact should not hold")
	}

	subjects, err := s.Subjects(ctx, facts.HasSymptom)
	if err != nil {
		t.Fatalf("Subjects: %v", err)
	}
	if len(subjects) != 2 || subjects[0] != "flu" || subjects[1] != "malaria" {
		t.Errorf("Subjects = %v, want [flu malaria]", subjects)
	}

	objs, err := s.Objects(ctx, facts.HasSymptom, "flu")
	if err != nil {
		t.Fatalf("Objects: %v", err)
	}
	if len(objs) != 2 || objs[0] != "cough" || objs[1] != "fever" {
		t.Errorf("Objects = %v, want [cough fever]", objs)
	}
}

func TestHyphenatedRelationQuoting(t *testing.T) {
	// has-symptom only parses as an atom when quoted; this is the case the
	// quoting exists for.
	ctx := context.Background()
	s := New()
	defer s.Close()

	f := facts.Fact{Relation: "has-symptom", Subject: "covid19", Object: "loss_of_smell"}
	if err := s.Assert(ctx, f); err != nil {
		t.Fatalf("Assert: %v", err)
	}

	ok, err := s.Holds(ctx, f)
	if err != nil {
		t.Fatalf("Holds: %v", err)
	}
	if !ok {
		t.Error("hyphenated relation fact should hold")
	}
}

func TestReAssertIsNoOp(t *testing.T) {
	ctx := context.Background()
	s := New()
	defer s.Close()

	f := facts.Fact{Relation: facts.HasSymptom, Subject: "flu", Object: "fever"}
	for i := 0; i < 3; i++ {
		if err := s.Assert(ctx, f); err != nil {
			t.Fatalf("Assert #%d: %v", i+1, err)
		}
	}

	objs, err := s.Objects(ctx, facts.HasSymptom, "flu")
	if err != nil {
		t.Fatalf("Objects: %v", err)
	}
	if len(objs) != 1 {
		t.Errorf("got %d objects after re-assert, want 1", len(objs))
	}
}

func TestUnknownRelationIsEmpty(t *testing.T) {
	ctx := context.Background()
	s := New()
	defer s.Close()

	subjects, err := s.Subjects(ctx, "never-declared")
	if err != nil {
		t.Fatalf("Subjects: %v", err)
	}
	if len(subjects) != 0 {
		t.Errorf("Subjects = %v, want empty", subjects)
	}

	ok, err := s.Holds(ctx, facts.Fact{Relation: "never-declared", Subject: "a", Object: "b"})
	if err != nil {
		t.Fatalf("Holds: %v", err)
	}
	if ok {
		t.Error("unknown relation should not hold anything")
	}
}

func TestClosedStoreFails(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	err := s.Assert(ctx, facts.Fact{Relation: "r", Subject: "s", Object: "o"})
	if !errors.Is(err, internalerr.ErrStoreUnavailable) {
		t.Errorf("Assert after Close = %v, want ErrStoreUnavailable", err)
	}
}

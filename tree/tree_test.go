package tree

import (
	"reflect"
	"testing"
)

func TestTreeStringIndentation(t *testing.T) {
	tr := New("S",
		New("NP", Leaf("Det(the)"), Leaf("Noun(human)")),
		New("VP", Leaf("Verb(saw)"), New("NP", Leaf("Det(the)"), Leaf("Noun(greyhound)"))),
	)
	want := "S\n" +
		"--NP\n" +
		"  --Det(the)\n" +
		"  --Noun(human)\n" +
		"--VP\n" +
		"  --Verb(saw)\n" +
		"  --NP\n" +
		"    --Det(the)\n" +
		"    --Noun(greyhound)\n"
	if got := tr.String(); got != want {
		t.Fatalf("String() =\n%q\nwant\n%q", got, want)
	}
}

func TestTreeYieldExtractsWords(t *testing.T) {
	tr := New("S",
		New("NP", Leaf("Det(the)"), Leaf("Noun(human)")),
		New("VP", Leaf("Verb(saw)"), New("NP", Leaf("Det(the)"), Leaf("Noun(greyhound)"))),
	)
	got := tr.Yield()
	want := []string{"the", "human", "saw", "the", "greyhound"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Yield() = %v, want %v", got, want)
	}
}

func TestTreeEqual(t *testing.T) {
	a := New("S", Leaf("Noun(dog)"))
	b := New("S", Leaf("Noun(dog)"))
	c := New("S", Leaf("Noun(cat)"))
	if !a.Equal(b) {
		t.Fatal("expected structurally identical trees to be equal")
	}
	if a.Equal(c) {
		t.Fatal("expected trees with different leaves to be unequal")
	}
}

func TestTreeKeyMatchesEqual(t *testing.T) {
	a := New("S", Leaf("Noun(dog)"), New("VP", Leaf("Verb(barked)")))
	b := New("S", Leaf("Noun(dog)"), New("VP", Leaf("Verb(barked)")))
	if a.Key() != b.Key() {
		t.Fatal("expected equal trees to produce the same Key")
	}
	c := New("S", Leaf("Noun(cat)"), New("VP", Leaf("Verb(barked)")))
	if a.Key() == c.Key() {
		t.Fatal("expected differing trees to produce different Keys")
	}
}

func TestLeafIsChildless(t *testing.T) {
	l := Leaf("Noun(dog)")
	if len(l.Children) != 0 {
		t.Fatalf("expected a leaf to have no children, got %d", len(l.Children))
	}
}

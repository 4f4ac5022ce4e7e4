package event

import "testing"

func TestParseSemanticType(t *testing.T) {
	cases := map[string]SemanticType{
		"shower":    Shower,
		"TRACK":     ShapeTrack,
		"Michel":    Michel,
		"delta":     ShapeDelta,
		"LEScatter": LEScatter,
		"ghost":     Ghost,
	}
	for in, want := range cases {
		got, ok := ParseSemanticType(in)
		if !ok {
			t.Fatalf("ParseSemanticType(%q) returned ok=false", in)
		}
		if got != want {
			t.Errorf("ParseSemanticType(%q) = %v, want %v", in, got, want)
		}
	}

	if _, ok := ParseSemanticType("bogus"); ok {
		t.Errorf("expected bogus semantic type to fail parsing")
	}
}

func TestProcessTypeString(t *testing.T) {
	if Compton.String() != "Compton" {
		t.Errorf("Compton.String() = %q", Compton.String())
	}
	if InvalidProcess.String() != "InvalidProcess" {
		t.Errorf("InvalidProcess.String() = %q", InvalidProcess.String())
	}
}

package loader

import (
	"math"
	"strings"
	"testing"
)

func TestLengthMultiplier(t *testing.T) {
	cases := []struct {
		units string
		want  float64
		ok    bool
	}{
		{"mm", 0.001, true},
		{"cm", 0.01, true},
		{"m", 1.0, true},
		{"in", 0.0254, true},
		{"furlong", 0, false},
	}
	for _, c := range cases {
		got, ok := lengthMultiplier(c.units)
		if ok != c.ok {
			t.Fatalf("lengthMultiplier(%q) ok = %v, want %v", c.units, ok, c.ok)
		}
		if ok && got != c.want {
			t.Fatalf("lengthMultiplier(%q) = %v, want %v", c.units, got, c.want)
		}
	}
}

func TestParseAppliesLengthUnitsToBoreAndEmbouchure(t *testing.T) {
	src := `flute {
		parameters { temp = 20 length-units = cm }
		bore { from [0, 2] [60, 1.7] }
		embouchure @ 2 char-dim = 1 cav-length = 1.5
		termination @ 60 flange-diam = 2.5
	}
	`
	desc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(desc.Bore) != 2 {
		t.Fatalf("got %d bore points, want 2", len(desc.Bore))
	}
	if math.Abs(desc.Bore[1].AbsPos-0.60) > 1e-9 {
		t.Fatalf("bore[1].AbsPos = %v, want 0.60", desc.Bore[1].AbsPos)
	}
	if math.Abs(desc.Bore[0].Diam-0.02) > 1e-9 {
		t.Fatalf("bore[0].Diam = %v, want 0.02", desc.Bore[0].Diam)
	}
	if desc.Embouchure.HasDiam {
		t.Fatalf("embouchure diam should default to unset when omitted")
	}
	if math.Abs(desc.Embouchure.CharDim-0.01) > 1e-9 {
		t.Fatalf("embouchure.CharDim = %v, want 0.01", desc.Embouchure.CharDim)
	}
}

func TestParseLengthRefResolvesBoreOrigin(t *testing.T) {
	src := `flute {
		parameters { temp = 20 length-units = mm }
		length-ref { mouth @ -20 }
		bore { from mouth [0, 19] [20, 19] [320, 17] }
		embouchure @ 0 char-dim = 10 cav-length = 15
		termination @ 320 flange-diam = 25
	}
	`
	desc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if math.Abs(desc.Bore[0].AbsPos-(-0.020)) > 1e-9 {
		t.Fatalf("bore[0].AbsPos = %v, want -0.020", desc.Bore[0].AbsPos)
	}
	if math.Abs(desc.Bore[2].AbsPos-0.300) > 1e-9 {
		t.Fatalf("bore[2].AbsPos = %v, want 0.300", desc.Bore[2].AbsPos)
	}
}

func TestParseHoleDefaultsEdgeRCWhenOmitted(t *testing.T) {
	src := `flute {
		parameters { temp = 20 length-units = mm }
		bore { from [0, 19] [300, 17] }
		embouchure @ 0 char-dim = 10 cav-length = 15
		termination @ 300 flange-diam = 25
		holes { hole @ 100 diam = 8 depth = 3 }
	}
	`
	desc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(desc.Holes) != 1 {
		t.Fatalf("got %d holes, want 1", len(desc.Holes))
	}
	if desc.Holes[0].EdgeRC != defaultEdgeRC {
		t.Fatalf("EdgeRC = %v, want default %v", desc.Holes[0].EdgeRC, defaultEdgeRC)
	}
}

func TestParseHoleExplicitEdgeRCOverridesDefault(t *testing.T) {
	src := `flute {
		parameters { temp = 20 length-units = mm }
		bore { from [0, 19] [300, 17] }
		embouchure @ 0 char-dim = 10 cav-length = 15
		termination @ 300 flange-diam = 25
		holes { hole @ 100 diam = 8 depth = 3 edge-rc = 0.001 }
	}
	`
	desc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if math.Abs(desc.Holes[0].EdgeRC-0.000001) > 1e-12 {
		t.Fatalf("EdgeRC = %v, want 0.000001 (0.001mm)", desc.Holes[0].EdgeRC)
	}
}

func TestParseRejectsHoleOutsideHolesSection(t *testing.T) {
	src := `flute {
		parameters { temp = 20 length-units = mm }
		bore { from [0, 19] [300, 17] }
		embouchure @ 0 char-dim = 10 cav-length = 15
		termination @ 300 flange-diam = 25
		hole @ 100 diam = 8 depth = 3
	}
	`
	if _, err := Parse(src); err == nil {
		t.Fatalf("expected error for hole clause outside a holes section")
	}
}

func TestParseUnrecognizedSectionReportsLine(t *testing.T) {
	src := `flute {
		bogus { }
	}
	`
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("expected error for unrecognized section")
	}
	if !strings.HasPrefix(err.Error(), "line 2:") {
		t.Fatalf("error = %q, want it to report line 2", err)
	}
}

func TestParseNotesWithoutOctaveDefaultsToZero(t *testing.T) {
	src := `flute {
		notes { allClosed = "xx" }
		parameters { temp = 20 length-units = mm }
		bore { from [0, 19] [300, 17] }
		embouchure @ 0 char-dim = 10 cav-length = 15
		termination @ 300 flange-diam = 25
	}
	`
	desc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(desc.Notes) != 1 || desc.Notes[0].Octave != 0 || desc.Notes[0].Config != "xx" {
		t.Fatalf("got %+v", desc.Notes)
	}
}

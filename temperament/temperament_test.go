package temperament

import (
	"math"
	"testing"
)

func TestGetFrequencyEqualTemperament(t *testing.T) {
	temp := NewEqualTemperament()

	cases := []struct {
		name   string
		octave int
		want   float64
	}{
		{"A", 1, 880.0},
		{"C", 0, 440 * math.Pow(2, -9.0/12.0)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := temp.GetFrequency(c.name, c.octave, 440)
			if !ok {
				t.Fatalf("GetFrequency(%q, %d) not found", c.name, c.octave)
			}
			if math.Abs(got-c.want) > 1e-6 {
				t.Fatalf("GetFrequency(%q, %d) = %v, want %v", c.name, c.octave, got, c.want)
			}
		})
	}
}

func TestGetFrequencyUnknownNote(t *testing.T) {
	temp := NewEqualTemperament()
	if _, ok := temp.GetFrequency("H", 0, 440); ok {
		t.Fatalf("expected unknown note to report not found")
	}
}

func TestNearestNoteFindsSharpNeighbor(t *testing.T) {
	temp := NewEqualTemperament()
	n := temp.NearestNote(466.0, 440)
	if n.Name != "A#" && n.Name != "Bb" {
		t.Fatalf("NearestNote(466, 440).Name = %q, want A# or Bb", n.Name)
	}
	if n.Octave != 0 {
		t.Fatalf("NearestNote(466, 440).Octave = %d, want 0", n.Octave)
	}
	if math.Abs(n.CentsDeviation) > 5.0 {
		t.Fatalf("NearestNote(466, 440).CentsDeviation = %v, want within a few cents of 0", n.CentsDeviation)
	}
}

// firstMatchName returns the name of the earliest-listed note sharing cts's
// cents value — the name NearestNote reports for any enharmonic spelling
// with that cents value, per the first-match tie-break convention.
func firstMatchName(notes []Note, cts float64) string {
	for _, n := range notes {
		if n.Cents == cts {
			return n.Name
		}
	}
	return ""
}

func TestCentsRoundTrip(t *testing.T) {
	temp := NewEqualTemperament()
	for octave := -1; octave <= 1; octave++ {
		for _, n := range temp.Notes {
			f, ok := temp.GetFrequency(n.Name, octave, 440)
			if !ok {
				t.Fatalf("GetFrequency(%q, %d) not found", n.Name, octave)
			}
			got := temp.NearestNote(f, 440)
			want := firstMatchName(temp.Notes, n.Cents)
			if got.Name != want {
				t.Fatalf("NearestNote(GetFrequency(%q, %d)) name = %q, want %q", n.Name, octave, got.Name, want)
			}
			if got.Octave != octave {
				t.Fatalf("NearestNote(GetFrequency(%q, %d)) octave = %d", n.Name, octave, got.Octave)
			}
			if math.Abs(got.CentsDeviation) > 1e-6 {
				t.Fatalf("NearestNote(GetFrequency(%q, %d)) cents = %v, want 0", n.Name, octave, got.CentsDeviation)
			}
		}
	}
}

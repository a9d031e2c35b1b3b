package report

import (
	"strings"
	"testing"

	"github.com/cwbudde/algo-flute/acoustic"
)

func TestWriteBoreEmitsRunningLengthAndDiameter(t *testing.T) {
	params := acoustic.NewPhysParams(20)
	bore := []*acoustic.BoreSection{
		acoustic.NewBoreSection(params, 0.3, 0.0095, 0.0095),
		acoustic.NewBoreSection(params, 0.3, 0.0095, 0.0085),
	}

	var sb strings.Builder
	if err := WriteBore(&sb, bore); err != nil {
		t.Fatalf("WriteBore: %v", err)
	}

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (head + 2 section boundaries)", len(lines))
	}
	if !strings.HasPrefix(lines[0], "0\t0.019") {
		t.Fatalf("first line = %q, want head diameter 0.019", lines[0])
	}
	if !strings.HasPrefix(lines[2], "0.6\t0.017") {
		t.Fatalf("last line = %q, want running length 0.6 and diameter 0.017", lines[2])
	}
}

func TestWriteBoreEmptyBoreWritesZeroHead(t *testing.T) {
	var sb strings.Builder
	if err := WriteBore(&sb, nil); err != nil {
		t.Fatalf("WriteBore: %v", err)
	}
	if strings.TrimSpace(sb.String()) != "0\t0" {
		t.Fatalf("got %q, want a single zero/zero line", sb.String())
	}
}

func TestWriteSpectrumEmitsFourColumns(t *testing.T) {
	spec := acoustic.ImpedanceSpectrum{
		Freq: []float64{100, 200},
		Z:    []complex128{complex(1, 2), complex(3, -4)},
	}
	var sb strings.Builder
	if err := WriteSpectrum(&sb, spec); err != nil {
		t.Fatalf("WriteSpectrum: %v", err)
	}
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	fields := strings.Split(lines[1], "\t")
	if len(fields) != 4 {
		t.Fatalf("got %d fields, want 4", len(fields))
	}
	if fields[0] != "200" {
		t.Fatalf("freq column = %q, want 200", fields[0])
	}
}

func TestWriteTuningReportsOutOfRangeInsteadOfCents(t *testing.T) {
	tunings := []acoustic.NoteTuning{
		{Note: "A", Octave: 1, Nominal: 440, Cents: 3.2},
		{Note: "C", Octave: 2, Nominal: 523.25, OutOfRange: true},
	}
	var sb strings.Builder
	if err := WriteTuning(&sb, tunings); err != nil {
		t.Fatalf("WriteTuning: %v", err)
	}
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.HasSuffix(lines[0], "3.2") {
		t.Fatalf("in-range line = %q, want cents suffix", lines[0])
	}
	if !strings.HasSuffix(lines[1], "out of range") {
		t.Fatalf("out-of-range line = %q, want trailing marker", lines[1])
	}
}

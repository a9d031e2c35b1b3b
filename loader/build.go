package loader

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-flute/acoustic"
)

// waypoint is one position along the bore with a resolved diameter and,
// optionally, the hole that shunts off the bore at that exact position.
type waypoint struct {
	pos  float64
	diam float64
	hole *HoleSpec
}

// Build folds a parsed Description into a validated acoustic.Instrument.
func Build(desc *Description) (*acoustic.Instrument, error) {
	if len(desc.Bore) == 0 {
		return nil, fmt.Errorf("bore profile is empty")
	}

	params := acoustic.NewPhysParams(desc.Temp)

	waypoints, err := mergeBoreAndHoles(desc.Bore, desc.Holes)
	if err != nil {
		return nil, err
	}

	inst := acoustic.NewInstrument()

	if desc.Embouchure == nil {
		return nil, fmt.Errorf("instrument description has no embouchure")
	}

	embRadius := desc.Embouchure.Diam / 2
	if !desc.Embouchure.HasDiam {
		diam, err := waypointDiamAtZero(waypoints)
		if err != nil {
			return nil, err
		}
		embRadius = diam / 2
	}
	emb := acoustic.NewEmbouchure(params, embRadius, desc.Embouchure.CharDim, desc.Embouchure.CavLength)
	if err := inst.SetEmbouchure(emb); err != nil {
		return nil, err
	}

	for i := 0; i < len(waypoints)-1; i++ {
		a, b := waypoints[i], waypoints[i+1]
		bore := acoustic.NewBoreSection(params, b.pos-a.pos, a.diam/2, b.diam/2)
		inst.AddBore(bore)

		if b.hole != nil {
			hole, err := buildHole(params, b.diam/2, b.hole)
			if err != nil {
				return nil, err
			}
			inst.AddHole(hole)
		}
	}

	if desc.Termination == nil {
		return nil, fmt.Errorf("instrument description has no termination")
	}
	lastBore := inst.Bore()
	if len(lastBore) == 0 {
		return nil, fmt.Errorf("instrument has no bore sections")
	}
	term := acoustic.NewFlangedEnd(*lastBore[len(lastBore)-1], desc.Termination.FlangeDiam/2)
	if err := term.Validate(); err != nil {
		return nil, err
	}
	if err := inst.SetTerminal(term); err != nil {
		return nil, err
	}

	for _, n := range desc.Notes {
		inst.AddFingering(acoustic.Fingering{
			Note:   n.Name,
			Octave: n.Octave,
			Holes:  parseHoleConfig(n.Config),
		})
	}

	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// mergeBoreAndHoles unions the explicit bore points with the hole
// positions, interpolating a diameter for any hole that does not sit on an
// explicit bore point (spec section 6).
func mergeBoreAndHoles(bore []BorePoint, holes []HoleSpec) ([]waypoint, error) {
	waypoints := make([]waypoint, len(bore))
	for i, b := range bore {
		waypoints[i] = waypoint{pos: b.AbsPos, diam: b.Diam}
	}

	for i := range holes {
		h := &holes[i]
		idx := sort.Search(len(bore), func(j int) bool { return waypoints[j].pos >= h.Pos })
		if idx < len(bore) && waypoints[idx].pos == h.Pos {
			waypoints[idx].hole = h
			continue
		}
		diam, err := interpolateDiam(bore, h.Pos)
		if err != nil {
			return nil, err
		}
		waypoints = append(waypoints, waypoint{pos: h.Pos, diam: diam, hole: h})
	}

	sort.Slice(waypoints, func(i, j int) bool { return waypoints[i].pos < waypoints[j].pos })
	return waypoints, nil
}

// waypointDiamAtZero returns the bore diameter at the absolute length-
// reference origin, the same position ProcessParsedData looks up via
// mBorePoints.find(0.0) to seat the embouchure's bore radius. hasZeroPosition
// guarantees a bore point sits exactly there, so this never falls through.
func waypointDiamAtZero(waypoints []waypoint) (float64, error) {
	for _, w := range waypoints {
		if w.pos == 0 {
			return w.diam, nil
		}
	}
	return 0, fmt.Errorf("bore profile has no point at position 0")
}

func interpolateDiam(bore []BorePoint, pos float64) (float64, error) {
	if len(bore) == 0 || pos < bore[0].AbsPos || pos > bore[len(bore)-1].AbsPos {
		return 0, fmt.Errorf("position %g lies outside the bore profile", pos)
	}
	for i := 0; i+1 < len(bore); i++ {
		a, b := bore[i], bore[i+1]
		if pos >= a.AbsPos && pos <= b.AbsPos {
			if b.AbsPos == a.AbsPos {
				return a.Diam, nil
			}
			frac := (pos - a.AbsPos) / (b.AbsPos - a.AbsPos)
			return a.Diam + frac*(b.Diam-a.Diam), nil
		}
	}
	return bore[len(bore)-1].Diam, nil
}

func buildHole(params acoustic.PhysParams, boreRadius float64, spec *HoleSpec) (acoustic.HoleElement, error) {
	if spec.Padded {
		h := acoustic.NewPaddedHole(params, boreRadius, spec.Diam/2, spec.Depth, false, spec.EdgeRC, spec.PadHeight, spec.PadDiam/2)
		return h, nil
	}
	h := acoustic.NewHole(params, boreRadius, spec.Diam/2, spec.Depth, false, spec.EdgeRC)
	return h, nil
}

// parseHoleConfig turns an "xoxox" style string into a closed-flag slice,
// one per hole in head-to-foot order. Characters other than x/o are
// ignored (spec section 6).
func parseHoleConfig(config string) []bool {
	var closed []bool
	for _, c := range config {
		switch c {
		case 'x':
			closed = append(closed, true)
		case 'o':
			closed = append(closed, false)
		}
	}
	return closed
}

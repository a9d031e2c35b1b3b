package loader

import (
	"fmt"
	"sort"
)

// defaultEdgeRC is the edge radius of curvature assumed when a hole clause
// omits edge-rc (spec section 6).
const defaultEdgeRC = 0.0005

// parser consumes tokens from a lexer with one token of lookahead.
type parser struct {
	lex *lexer
	cur token
}

// Parse parses the contents of an instrument description file into a
// Description. Syntax errors are reported "line <N>: <msg>" (spec section
// 7, kind 1).
func Parse(src string) (*Description, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	desc := &Description{LengthUnits: "m"}
	lengthFactor := 1.0
	lengthRefAbs := map[string]float64{"": 0}

	if err := p.expectIdent("flute"); err != nil {
		return nil, err
	}
	if err := p.expect(tokLBrace); err != nil {
		return nil, err
	}

	for {
		if p.at(tokRBrace) {
			break
		}
		name, err := p.expectIdentAny()
		if err != nil {
			return nil, err
		}
		switch name {
		case "notes":
			notes, err := p.parseNotes()
			if err != nil {
				return nil, err
			}
			desc.Notes = notes
		case "parameters":
			temp, units, err := p.parseParameters()
			if err != nil {
				return nil, err
			}
			desc.Temp = temp
			desc.LengthUnits = units
			factor, ok := lengthMultiplier(units)
			if !ok {
				return nil, fmt.Errorf("line %d: unknown length-units %q", p.cur.line, units)
			}
			lengthFactor = factor
		case "length-ref":
			refs, err := p.parseLengthRef(lengthFactor)
			if err != nil {
				return nil, err
			}
			desc.LengthRefs = refs
			for _, r := range refs {
				lengthRefAbs[r.Label] = r.Pos
			}
		case "bore":
			points, err := p.parseBore(lengthFactor, lengthRefAbs)
			if err != nil {
				return nil, err
			}
			desc.Bore = points
		case "embouchure":
			emb, err := p.parseEmbouchure(lengthFactor)
			if err != nil {
				return nil, err
			}
			desc.Embouchure = emb
		case "termination":
			term, err := p.parseTermination(lengthFactor)
			if err != nil {
				return nil, err
			}
			desc.Termination = term
		case "holes":
			holes, err := p.parseHoles(lengthFactor)
			if err != nil {
				return nil, err
			}
			desc.Holes = holes
		default:
			return nil, fmt.Errorf("line %d: unrecognized section %q", p.cur.line, name)
		}
	}

	if err := p.expect(tokRBrace); err != nil {
		return nil, err
	}
	if !hasZeroPosition(desc.Bore) {
		return nil, fmt.Errorf("line %d: bore profile must include position 0", p.cur.line)
	}
	sort.Slice(desc.Holes, func(i, j int) bool { return desc.Holes[i].Pos < desc.Holes[j].Pos })

	return desc, nil
}

// hasZeroPosition reports whether any bore point sits at the absolute
// length-reference origin (the frame of an unlabelled "from", which is
// absolute position zero); every description must place a point there.
func hasZeroPosition(bore []BorePoint) bool {
	for _, b := range bore {
		if b.AbsPos == 0 {
			return true
		}
	}
	return false
}

func (p *parser) nextToken() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

func (p *parser) at(k tokenKind) bool {
	return p.cur.kind == k
}

func (p *parser) expect(k tokenKind) error {
	if p.cur.kind != k {
		return fmt.Errorf("line %d: unexpected token", p.cur.line)
	}
	return p.nextToken()
}

func (p *parser) expectIdent(text string) error {
	if p.cur.kind != tokIdent || p.cur.text != text {
		return fmt.Errorf("line %d: expected %q", p.cur.line, text)
	}
	return p.nextToken()
}

func (p *parser) expectIdentAny() (string, error) {
	if p.cur.kind != tokIdent {
		return "", fmt.Errorf("line %d: expected identifier", p.cur.line)
	}
	text := p.cur.text
	return text, p.nextToken()
}

func (p *parser) expectNumber() (float64, error) {
	if p.cur.kind != tokNumber {
		return 0, fmt.Errorf("line %d: expected number", p.cur.line)
	}
	v := p.cur.num
	return v, p.nextToken()
}

func (p *parser) expectString() (string, error) {
	if p.cur.kind != tokString {
		return "", fmt.Errorf("line %d: expected string", p.cur.line)
	}
	v := p.cur.text
	return v, p.nextToken()
}

// parseNumberField consumes "name = <number>" and returns the number.
func (p *parser) parseNumberField(name string) (float64, error) {
	if err := p.expectIdent(name); err != nil {
		return 0, err
	}
	if err := p.expect(tokEquals); err != nil {
		return 0, err
	}
	return p.expectNumber()
}

func (p *parser) parseNotes() ([]NoteEntry, error) {
	if err := p.expect(tokLBrace); err != nil {
		return nil, err
	}
	var notes []NoteEntry
	for !p.at(tokRBrace) {
		name, err := p.expectIdentAny()
		if err != nil {
			return nil, err
		}
		octave := 0
		if p.at(tokNumber) {
			octave = int(p.cur.num)
			if err := p.nextToken(); err != nil {
				return nil, err
			}
		}
		if err := p.expect(tokEquals); err != nil {
			return nil, err
		}
		config, err := p.expectString()
		if err != nil {
			return nil, err
		}
		notes = append(notes, NoteEntry{Name: name, Octave: octave, Config: config})
	}
	return notes, p.expect(tokRBrace)
}

func (p *parser) parseParameters() (temp float64, units string, err error) {
	if err := p.expect(tokLBrace); err != nil {
		return 0, "", err
	}
	temp, err = p.parseNumberField("temp")
	if err != nil {
		return 0, "", err
	}
	if err := p.expectIdent("length-units"); err != nil {
		return 0, "", err
	}
	if err := p.expect(tokEquals); err != nil {
		return 0, "", err
	}
	units, err = p.expectIdentAny()
	if err != nil {
		return 0, "", err
	}
	return temp, units, p.expect(tokRBrace)
}

func (p *parser) parseLengthRef(lengthFactor float64) ([]LengthRef, error) {
	if err := p.expect(tokLBrace); err != nil {
		return nil, err
	}
	var refs []LengthRef
	for !p.at(tokRBrace) {
		label, err := p.expectIdentAny()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokAt); err != nil {
			return nil, err
		}
		pos, err := p.expectNumber()
		if err != nil {
			return nil, err
		}
		refs = append(refs, LengthRef{Label: label, Pos: pos * lengthFactor})
	}
	return refs, p.expect(tokRBrace)
}

func (p *parser) parseBore(lengthFactor float64, refAbs map[string]float64) ([]BorePoint, error) {
	if err := p.expect(tokLBrace); err != nil {
		return nil, err
	}
	var points []BorePoint
	for !p.at(tokRBrace) {
		if err := p.expectIdent("from"); err != nil {
			return nil, err
		}
		label := ""
		if p.at(tokIdent) {
			label = p.cur.text
			if err := p.nextToken(); err != nil {
				return nil, err
			}
		}
		base, ok := refAbs[label]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown length-ref %q", p.cur.line, label)
		}
		for p.at(tokLBracket) {
			if err := p.nextToken(); err != nil {
				return nil, err
			}
			pos, err := p.expectNumber()
			if err != nil {
				return nil, err
			}
			if err := p.expect(tokComma); err != nil {
				return nil, err
			}
			diam, err := p.expectNumber()
			if err != nil {
				return nil, err
			}
			if err := p.expect(tokRBracket); err != nil {
				return nil, err
			}
			points = append(points, BorePoint{
				AbsPos: base + pos*lengthFactor,
				Diam:   diam * lengthFactor,
			})
		}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].AbsPos < points[j].AbsPos })
	return points, p.expect(tokRBrace)
}

func (p *parser) parseEmbouchure(lengthFactor float64) (*EmbouchureSpec, error) {
	if err := p.expect(tokAt); err != nil {
		return nil, err
	}
	pos, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	emb := &EmbouchureSpec{Pos: pos * lengthFactor}
	for p.at(tokIdent) {
		switch p.cur.text {
		case "char-dim":
			v, err := p.parseNumberField("char-dim")
			if err != nil {
				return nil, err
			}
			emb.CharDim = v * lengthFactor
		case "cav-length":
			v, err := p.parseNumberField("cav-length")
			if err != nil {
				return nil, err
			}
			emb.CavLength = v * lengthFactor
		case "diam":
			v, err := p.parseNumberField("diam")
			if err != nil {
				return nil, err
			}
			emb.Diam = v * lengthFactor
			emb.HasDiam = true
		default:
			return emb, nil
		}
	}
	return emb, nil
}

func (p *parser) parseTermination(lengthFactor float64) (*TerminationSpec, error) {
	if err := p.expect(tokAt); err != nil {
		return nil, err
	}
	pos, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	flangeDiam, err := p.parseNumberField("flange-diam")
	if err != nil {
		return nil, err
	}
	return &TerminationSpec{Pos: pos * lengthFactor, FlangeDiam: flangeDiam * lengthFactor}, nil
}

// parseHoles parses the "holes { ... }" section, a brace-delimited list of
// "hole" and "silver-flute-hole" entries — the Go shape of the original
// grammar's holes_statement/hole_list nonterminals (parser.h's T_HOLES plus
// the hole_or_silver_flute_hole alternation).
func (p *parser) parseHoles(lengthFactor float64) ([]HoleSpec, error) {
	if err := p.expect(tokLBrace); err != nil {
		return nil, err
	}
	var holes []HoleSpec
	for !p.at(tokRBrace) {
		name, err := p.expectIdentAny()
		if err != nil {
			return nil, err
		}
		switch name {
		case "hole":
			h, err := p.parseHole(lengthFactor, false)
			if err != nil {
				return nil, err
			}
			holes = append(holes, *h)
		case "silver-flute-hole":
			h, err := p.parseHole(lengthFactor, true)
			if err != nil {
				return nil, err
			}
			holes = append(holes, *h)
		default:
			return nil, fmt.Errorf("line %d: expected hole or silver-flute-hole, got %q", p.cur.line, name)
		}
	}
	return holes, p.expect(tokRBrace)
}

func (p *parser) parseHole(lengthFactor float64, padded bool) (*HoleSpec, error) {
	if err := p.expect(tokAt); err != nil {
		return nil, err
	}
	pos, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	diam, err := p.parseNumberField("diam")
	if err != nil {
		return nil, err
	}
	depth, err := p.parseNumberField("depth")
	if err != nil {
		return nil, err
	}

	h := &HoleSpec{
		Pos:    pos * lengthFactor,
		Diam:   diam * lengthFactor,
		Depth:  depth * lengthFactor,
		EdgeRC: defaultEdgeRC,
		Padded: padded,
	}

	if padded {
		if err := p.expectIdent("pad"); err != nil {
			return nil, err
		}
		if err := p.expect(tokLBrace); err != nil {
			return nil, err
		}
		padHeight, err := p.parseNumberField("height")
		if err != nil {
			return nil, err
		}
		padDiam, err := p.parseNumberField("diam")
		if err != nil {
			return nil, err
		}
		h.PadHeight = padHeight * lengthFactor
		h.PadDiam = padDiam * lengthFactor
		if err := p.expect(tokRBrace); err != nil {
			return nil, err
		}
	}

	if p.at(tokIdent) && p.cur.text == "edge-rc" {
		v, err := p.parseNumberField("edge-rc")
		if err != nil {
			return nil, err
		}
		h.EdgeRC = v * lengthFactor
	}

	return h, nil
}

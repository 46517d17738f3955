// Package chem provides the molecular structure model for esolpred: a
// simplified SMILES parser and the descriptor computations the prediction
// pipeline feeds into the regression model.  Production-grade parity with a
// full cheminformatics toolkit (RDKit) is explicitly out of scope; the
// heuristics here cover the organic subset the solubility model was trained
// on.
package chem

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Bond orders.  Aromatic bonds are tracked separately from single bonds so
// implicit-hydrogen estimation and rotatable-bond counting can treat them
// correctly.
const (
	BondSingle   = 1
	BondDouble   = 2
	BondTriple   = 3
	BondAromatic = 4
)

// Atom is one parsed atom of a molecule.
type Atom struct {
	Symbol     string
	AtomicNum  int
	IsAromatic bool
	Charge     int

	// NumH is the hydrogen count attached to this atom.  For bracket atoms
	// it is the explicit count from the SMILES; for organic-subset atoms it
	// is estimated from standard valences once all bonds are known.
	NumH int

	// hExplicit marks bracket atoms, whose H count must not be re-estimated.
	hExplicit bool
}

// Bond connects two atoms by index into Molecule.Atoms.
type Bond struct {
	Src   int
	Dst   int
	Order int
}

// Molecule is the parsed structure graph of one SMILES string.
type Molecule struct {
	SMILES string
	Atoms  []Atom
	Bonds  []Bond
}

// validSMILES defines the allowed character set for SMILES notation.
// Full validation happens during parsing; this is the cheap first gate.
var validSMILES = regexp.MustCompile(`^[A-Za-z0-9@+\-\[\]()=#$:/\\.%*]+$`)

// atomicNumbers maps element symbols to atomic numbers for the elements the
// solubility model's training set covers.
var atomicNumbers = map[string]int{
	"H": 1, "B": 5, "C": 6, "N": 7, "O": 8, "F": 9,
	"Si": 14, "P": 15, "S": 16, "Cl": 17, "Br": 35, "I": 53,
	"Na": 11, "K": 19, "Li": 3, "Ca": 20, "Mg": 12, "Zn": 30,
	"Fe": 26, "Cu": 29, "Se": 34, "Sn": 50, "As": 33, "Al": 13,
}

// standardValence gives the default valence used to estimate implicit
// hydrogens on organic-subset atoms.
var standardValence = map[int]int{
	5: 3, 6: 4, 7: 3, 8: 2, 9: 1, 15: 3, 16: 2, 17: 1, 35: 1, 53: 1,
}

// Parse converts a SMILES string into a Molecule, or returns an error when
// the notation is malformed.  The parser handles the organic subset,
// aromatic lowercase atoms, bracket atoms with charge and explicit hydrogen
// counts, branches, explicit bond symbols, one- and two-digit ring closures,
// and disconnected fragments.
func Parse(smiles string) (*Molecule, error) {
	smiles = strings.TrimSpace(smiles)
	if smiles == "" {
		return nil, fmt.Errorf("chem: SMILES string is empty")
	}
	if !validSMILES.MatchString(smiles) {
		return nil, fmt.Errorf("chem: SMILES contains invalid characters: %q", smiles)
	}
	if !balancedBrackets(smiles) {
		return nil, fmt.Errorf("chem: SMILES has unbalanced brackets: %q", smiles)
	}

	p := &parser{runes: []rune(smiles), ringBonds: map[int]ringOpening{}}
	if err := p.run(); err != nil {
		return nil, err
	}
	if len(p.atoms) == 0 {
		return nil, fmt.Errorf("chem: no atoms found in SMILES: %q", smiles)
	}
	if len(p.ringBonds) != 0 {
		return nil, fmt.Errorf("chem: unclosed ring bond in SMILES: %q", smiles)
	}

	mol := &Molecule{SMILES: smiles, Atoms: p.atoms, Bonds: p.bonds}
	mol.assignImplicitHydrogens()
	return mol, nil
}

// balancedBrackets checks that [ ] and ( ) are balanced and correctly nested.
func balancedBrackets(s string) bool {
	var stack []rune
	for _, ch := range s {
		switch ch {
		case '[', '(':
			stack = append(stack, ch)
		case ']':
			if len(stack) == 0 || stack[len(stack)-1] != '[' {
				return false
			}
			stack = stack[:len(stack)-1]
		case ')':
			if len(stack) == 0 || stack[len(stack)-1] != '(' {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0
}

// ringOpening remembers the atom and pending bond order at a ring-open digit.
type ringOpening struct {
	atom  int
	order int
}

type parser struct {
	runes     []rune
	pos       int
	atoms     []Atom
	bonds     []Bond
	branches  []int
	prevAtom  int
	nextOrder int
	ringBonds map[int]ringOpening
}

func (p *parser) run() error {
	p.prevAtom = -1
	p.nextOrder = 0 // 0 = unspecified; resolved per bond

	for p.pos < len(p.runes) {
		ch := p.runes[p.pos]

		switch {
		case ch == '(':
			if p.prevAtom < 0 {
				return fmt.Errorf("chem: branch opened before any atom at position %d", p.pos)
			}
			p.branches = append(p.branches, p.prevAtom)
			p.pos++

		case ch == ')':
			if len(p.branches) == 0 {
				return fmt.Errorf("chem: unmatched branch close at position %d", p.pos)
			}
			p.prevAtom = p.branches[len(p.branches)-1]
			p.branches = p.branches[:len(p.branches)-1]
			p.pos++

		case ch == '-':
			p.nextOrder = BondSingle
			p.pos++
		case ch == '=':
			p.nextOrder = BondDouble
			p.pos++
		case ch == '#':
			p.nextOrder = BondTriple
			p.pos++
		case ch == ':':
			p.nextOrder = BondAromatic
			p.pos++

		case ch == '/' || ch == '\\':
			// Stereo bond markers are parsed as plain single bonds.
			p.nextOrder = BondSingle
			p.pos++

		case ch == '.':
			// Disconnected fragment: no bond to the previous atom.
			p.prevAtom = -1
			p.nextOrder = 0
			p.pos++

		case ch == '[':
			if err := p.parseBracketAtom(); err != nil {
				return err
			}

		case ch == '%':
			if err := p.parseRingClosure(true); err != nil {
				return err
			}

		case ch >= '0' && ch <= '9':
			if err := p.parseRingClosure(false); err != nil {
				return err
			}

		case unicode.IsLetter(ch):
			if err := p.parseOrganicAtom(); err != nil {
				return err
			}

		case ch == '@' || ch == '*' || ch == '$':
			// Chirality markers and wildcards carry no descriptor weight.
			p.pos++

		default:
			return fmt.Errorf("chem: unexpected character %q at position %d", ch, p.pos)
		}
	}

	if len(p.branches) != 0 {
		return fmt.Errorf("chem: unclosed branch in SMILES")
	}
	return nil
}

// addAtom appends an atom and bonds it to the previous one.
func (p *parser) addAtom(atom Atom) {
	idx := len(p.atoms)
	p.atoms = append(p.atoms, atom)

	if p.prevAtom >= 0 {
		order := p.nextOrder
		if order == 0 {
			if atom.IsAromatic && p.atoms[p.prevAtom].IsAromatic {
				order = BondAromatic
			} else {
				order = BondSingle
			}
		}
		p.bonds = append(p.bonds, Bond{Src: p.prevAtom, Dst: idx, Order: order})
	}
	p.prevAtom = idx
	p.nextOrder = 0
}

// parseOrganicAtom consumes an organic-subset atom symbol (one or two
// letters, lowercase marks aromatic).
func (p *parser) parseOrganicAtom() error {
	ch := p.runes[p.pos]
	aromatic := unicode.IsLower(ch)
	upper := unicode.ToUpper(ch)

	symbol := string(upper)
	advance := 1

	// Two-letter elements (Cl, Br, Si, ...) are never aromatic in the
	// organic subset.
	if !aromatic && p.pos+1 < len(p.runes) && unicode.IsLower(p.runes[p.pos+1]) {
		twoLetter := symbol + string(p.runes[p.pos+1])
		if _, ok := atomicNumbers[twoLetter]; ok {
			symbol = twoLetter
			advance = 2
		}
	}

	num, ok := atomicNumbers[symbol]
	if !ok {
		return fmt.Errorf("chem: unknown element %q at position %d", symbol, p.pos)
	}

	p.addAtom(Atom{Symbol: symbol, AtomicNum: num, IsAromatic: aromatic})
	p.pos += advance
	return nil
}

// parseBracketAtom consumes an atom specification in [...] form: optional
// isotope, element symbol, optional chirality, explicit H count, and charge.
func (p *parser) parseBracketAtom() error {
	start := p.pos
	end := p.pos + 1
	for end < len(p.runes) && p.runes[end] != ']' {
		end++
	}
	if end >= len(p.runes) {
		return fmt.Errorf("chem: unclosed bracket atom at position %d", start)
	}
	content := p.runes[p.pos+1 : end]

	idx := 0
	// Skip isotope number.
	for idx < len(content) && unicode.IsDigit(content[idx]) {
		idx++
	}
	if idx >= len(content) || !unicode.IsLetter(content[idx]) {
		return fmt.Errorf("chem: bracket atom missing element symbol at position %d", start)
	}

	aromatic := unicode.IsLower(content[idx])
	symStart := idx
	idx++
	for idx < len(content) && unicode.IsLower(content[idx]) {
		idx++
	}
	symbol := string(content[symStart:idx])
	if aromatic {
		symbol = strings.ToUpper(symbol[:1]) + symbol[1:]
	}

	atom := Atom{Symbol: symbol, IsAromatic: aromatic, hExplicit: true}
	if num, ok := atomicNumbers[symbol]; ok {
		atom.AtomicNum = num
	}

	rest := string(content[idx:])
	// Explicit hydrogen count: H, H2, ... (skip for the element H itself).
	if symbol != "H" {
		if hIdx := strings.Index(rest, "H"); hIdx >= 0 {
			atom.NumH = 1
			if hIdx+1 < len(rest) && rest[hIdx+1] >= '0' && rest[hIdx+1] <= '9' {
				atom.NumH = int(rest[hIdx+1] - '0')
			}
		}
	}
	// Formal charge.
	switch {
	case strings.Contains(rest, "++"):
		atom.Charge = 2
	case strings.Contains(rest, "--"):
		atom.Charge = -2
	case strings.Contains(rest, "+"):
		atom.Charge = 1
	case strings.Contains(rest, "-"):
		atom.Charge = -1
	}

	p.addAtom(atom)
	p.pos = end + 1
	return nil
}

// parseRingClosure consumes a ring-bond label (one digit, or %NN for two
// digits) and either records the opening or closes the ring with a bond.
func (p *parser) parseRingClosure(percent bool) error {
	if p.prevAtom < 0 {
		return fmt.Errorf("chem: ring closure before any atom at position %d", p.pos)
	}

	var label int
	if percent {
		if p.pos+2 >= len(p.runes) ||
			!unicode.IsDigit(p.runes[p.pos+1]) || !unicode.IsDigit(p.runes[p.pos+2]) {
			return fmt.Errorf("chem: malformed two-digit ring closure at position %d", p.pos)
		}
		label = int(p.runes[p.pos+1]-'0')*10 + int(p.runes[p.pos+2]-'0')
		p.pos += 3
	} else {
		label = int(p.runes[p.pos] - '0')
		p.pos++
	}

	if open, ok := p.ringBonds[label]; ok {
		delete(p.ringBonds, label)
		if open.atom == p.prevAtom {
			return fmt.Errorf("chem: ring bond %d closes on its own atom", label)
		}
		order := p.nextOrder
		if order == 0 {
			order = open.order
		}
		if order == 0 {
			if p.atoms[open.atom].IsAromatic && p.atoms[p.prevAtom].IsAromatic {
				order = BondAromatic
			} else {
				order = BondSingle
			}
		}
		p.bonds = append(p.bonds, Bond{Src: open.atom, Dst: p.prevAtom, Order: order})
	} else {
		p.ringBonds[label] = ringOpening{atom: p.prevAtom, order: p.nextOrder}
	}
	p.nextOrder = 0
	return nil
}

// assignImplicitHydrogens estimates the hydrogen count on every
// organic-subset atom from standard valences once the full bond list is
// known.  Bracket atoms keep their explicit counts.  Aromatic atoms give one
// valence to the delocalised system, so an aromatic ring carbon with two
// neighbours ends up with a single hydrogen.
func (m *Molecule) assignImplicitHydrogens() {
	orderSum := make([]int, len(m.Atoms))
	for _, b := range m.Bonds {
		o := b.Order
		if o == BondAromatic {
			o = 1
		}
		orderSum[b.Src] += o
		orderSum[b.Dst] += o
	}

	for i := range m.Atoms {
		a := &m.Atoms[i]
		if a.hExplicit {
			continue
		}
		valence, ok := standardValence[a.AtomicNum]
		if !ok {
			continue
		}
		h := valence - orderSum[i]
		if a.IsAromatic {
			h--
		}
		if h < 0 {
			h = 0
		}
		a.NumH = h
	}
}

// Degree returns the number of bonds incident to atom i.
func (m *Molecule) Degree(i int) int {
	d := 0
	for _, b := range m.Bonds {
		if b.Src == i || b.Dst == i {
			d++
		}
	}
	return d
}

// HeavyAtomCount returns the number of non-hydrogen atoms.
func (m *Molecule) HeavyAtomCount() int {
	n := 0
	for _, a := range m.Atoms {
		if a.AtomicNum != 1 {
			n++
		}
	}
	return n
}

// AromaticAtomCount returns the number of aromatic heavy atoms.
func (m *Molecule) AromaticAtomCount() int {
	n := 0
	for _, a := range m.Atoms {
		if a.IsAromatic && a.AtomicNum != 1 {
			n++
		}
	}
	return n
}

// bondInRing reports whether bond k lies on a cycle: removing it must leave
// its endpoints connected through the remaining bonds.
func (m *Molecule) bondInRing(k int) bool {
	target := m.Bonds[k]

	adj := make(map[int][]int, len(m.Atoms))
	for i, b := range m.Bonds {
		if i == k {
			continue
		}
		adj[b.Src] = append(adj[b.Src], b.Dst)
		adj[b.Dst] = append(adj[b.Dst], b.Src)
	}

	visited := make(map[int]bool, len(m.Atoms))
	stack := []int{target.Src}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == target.Dst {
			return true
		}
		if visited[n] {
			continue
		}
		visited[n] = true
		stack = append(stack, adj[n]...)
	}
	return false
}

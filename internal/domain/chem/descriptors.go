package chem

import "math"

// FeatureColumns is the fixed descriptor order the regression model was
// trained on.  The feature matrix handed to the scaler must keep exactly
// this column order.
var FeatureColumns = []string{
	"MolWt",
	"LogP",
	"NumRotatableBonds",
	"NumHDonors",
	"NumHAcceptors",
	"AromaticProportion",
}

// NumFeatures is the width of one descriptor record.
const NumFeatures = 6

// Descriptors is the fixed-shape numeric record computed for one molecule.
// A field that could not be computed is NaN; callers filter NaN records
// before model input.
type Descriptors struct {
	MolWt              float64
	LogP               float64
	NumRotatableBonds  float64
	NumHDonors         float64
	NumHAcceptors      float64
	AromaticProportion float64
}

// Values returns the record as a dense vector in FeatureColumns order.
func (d Descriptors) Values() []float64 {
	return []float64{
		d.MolWt,
		d.LogP,
		d.NumRotatableBonds,
		d.NumHDonors,
		d.NumHAcceptors,
		d.AromaticProportion,
	}
}

// HasMissing reports whether any field of the record is NaN.
func (d Descriptors) HasMissing() bool {
	for _, v := range d.Values() {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// atomicMasses holds standard atomic weights for the supported elements.
var atomicMasses = map[int]float64{
	1: 1.008, 3: 6.94, 5: 10.81, 6: 12.011, 7: 14.007, 8: 15.999,
	9: 18.998, 11: 22.990, 12: 24.305, 13: 26.982, 14: 28.085,
	15: 30.974, 16: 32.06, 17: 35.45, 19: 39.098, 20: 40.078,
	26: 55.845, 29: 63.546, 30: 65.38, 33: 74.922, 34: 78.971,
	35: 79.904, 50: 118.71, 53: 126.90,
}

// logPContributions holds crude atom-level octanol/water partition
// increments.  These follow the sign and rough magnitude of Crippen-style
// contributions; exact parity with RDKit's MolLogP is out of scope.
var logPContributions = map[int]float64{
	6: 0.14, 7: -0.60, 8: -0.64, 9: 0.14, 15: -0.45,
	16: 0.25, 17: 0.65, 35: 0.86, 53: 1.12,
}

const (
	logPAromaticCarbon = 0.29
	logPHydrogen       = 0.11
)

// ComputeDescriptors computes the six-field descriptor record for a parsed
// molecule.  It never fails: a descriptor whose inputs are outside the
// supported element set is reported as NaN and filtered downstream, so one
// exotic atom does not abort the batch.
func ComputeDescriptors(mol *Molecule) Descriptors {
	return Descriptors{
		MolWt:              molecularWeight(mol),
		LogP:               logP(mol),
		NumRotatableBonds:  float64(rotatableBonds(mol)),
		NumHDonors:         float64(hDonors(mol)),
		NumHAcceptors:      float64(hAcceptors(mol)),
		AromaticProportion: AromaticProportion(mol),
	}
}

// AromaticProportion returns the fraction of heavy atoms that are aromatic,
// defined as 0 when the molecule has no heavy atoms.
func AromaticProportion(mol *Molecule) float64 {
	heavy := mol.HeavyAtomCount()
	if heavy == 0 {
		return 0
	}
	return float64(mol.AromaticAtomCount()) / float64(heavy)
}

// molecularWeight sums standard atomic weights plus implicit/explicit
// hydrogens.  An element without a mass entry makes the whole value NaN
// (missing), mirroring a toolkit descriptor that cannot be computed.
func molecularWeight(mol *Molecule) float64 {
	hMass := atomicMasses[1]
	var w float64
	for _, a := range mol.Atoms {
		mass, ok := atomicMasses[a.AtomicNum]
		if !ok {
			return math.NaN()
		}
		w += mass + float64(a.NumH)*hMass
	}
	return w
}

// logP estimates the octanol/water partition coefficient by summing atom
// contributions.
func logP(mol *Molecule) float64 {
	var p float64
	for _, a := range mol.Atoms {
		if a.AtomicNum == 1 {
			p += logPHydrogen
			continue
		}
		if a.IsAromatic && a.AtomicNum == 6 {
			p += logPAromaticCarbon
		} else if c, ok := logPContributions[a.AtomicNum]; ok {
			p += c
		}
		p += float64(a.NumH) * logPHydrogen
	}
	return p
}

// rotatableBonds counts single, non-ring bonds between two non-terminal
// heavy atoms.
func rotatableBonds(mol *Molecule) int {
	n := 0
	for k, b := range mol.Bonds {
		if b.Order != BondSingle {
			continue
		}
		src, dst := mol.Atoms[b.Src], mol.Atoms[b.Dst]
		if src.AtomicNum == 1 || dst.AtomicNum == 1 {
			continue
		}
		if mol.Degree(b.Src) < 2 || mol.Degree(b.Dst) < 2 {
			continue
		}
		if mol.bondInRing(k) {
			continue
		}
		n++
	}
	return n
}

// hDonors counts nitrogen and oxygen atoms carrying at least one hydrogen.
func hDonors(mol *Molecule) int {
	n := 0
	for _, a := range mol.Atoms {
		if (a.AtomicNum == 7 || a.AtomicNum == 8) && a.NumH > 0 {
			n++
		}
	}
	return n
}

// hAcceptors counts nitrogen and oxygen atoms.
func hAcceptors(mol *Molecule) int {
	n := 0
	for _, a := range mol.Atoms {
		if a.AtomicNum == 7 || a.AtomicNum == 8 {
			n++
		}
	}
	return n
}

package potential

import "math"

//Constants gathers the physical constants and switching caps used by the
//lattice potential generators. Units follow the CHARMM conventions:
//kcal/mol for energies, Angstroms for distances and electron charges for
//the partial charges, so the electrostatic lattice ends up in
//kcal/(mol*e) and multiplies a ligand charge on projection.
type Constants struct {
	Coulomb     float64 //Coulomb constant, kcal*A/(mol*e^2)
	Dielectric  float64 //uniform dielectric, adimensional
	ElecRepMax  float64 //cap of the repulsive electrostatic plateau, kcal/(mol*e)
	ElecAttrMax float64 //floor of the attractive electrostatic plateau, kcal/(mol*e). Negative.
	ProbeRadius float64 //radius added to every vdW minimum, A
	SoftcoreMax float64 //cap of the vdW softcore plateau, kcal/mol
}

//DefaultConstants returns Constants with reasonable values for
//protein-ligand work: the CHARMM Coulomb constant, a water-sized probe
//and plateau caps that keep clashes finite without flattening the
//attractive wells.
func DefaultConstants() *Constants {
	return &Constants{
		Coulomb:     332.0716,
		Dielectric:  2.0,
		ElecRepMax:  40,
		ElecAttrMax: -20,
		ProbeRadius: 1.4,
		SoftcoreMax: 2.0,
	}
}

//elecParams derives the softcore switching constants for one atom: the
//scaled charge, the cutoff below which the potential goes quadratic, and
//the curvature of that quadratic. The cutoff has to be obtained before
//the curvature, which depends on it.
func elecParams(charge float64, K *Constants) (ec, rc, alpha float64) {
	ec = K.Coulomb * charge / K.Dielectric
	emax := K.ElecRepMax
	if charge <= 0 {
		emax = K.ElecAttrMax
	}
	rc = math.Sqrt(2 * math.Abs(ec/emax))
	alpha = math.Abs(emax / (2 * rc * rc))
	return ec, rc, alpha
}

//vdwParams derives the softcore switching constants for one atom from
//its Lennard-Jones well depth and minimum-energy radius. Degenerate
//parameters (say, a zero epsilon) are not special-cased: the caller gets
//whatever the formulas produce.
func vdwParams(eps, vdwr float64, K *Constants) (rmin, epsSqrt, rc, beta float64) {
	rmin = vdwr + K.ProbeRadius
	epsSqrt = math.Sqrt(math.Abs(eps))
	vdwconst := 1 + math.Sqrt(1+0.5*math.Abs(K.SoftcoreMax)/epsSqrt)
	rc = rmin * math.Pow(vdwconst, -1.0/6.0)
	beta = 24 * epsSqrt / K.SoftcoreMax * (vdwconst*vdwconst - vdwconst)
	return rmin, epsSqrt, rc, beta
}

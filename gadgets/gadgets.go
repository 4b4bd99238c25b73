// Package gadgets provides set-membership and set-non-membership
// constraints as reusable functions built on the constraint-system API,
// plus a standalone is-nonzero gadget that follows the standard
// Bulletproofs R1CS idiom of proving x != 0 by exhibiting a committed
// inverse and constraining their product to 1.
package gadgets

import (
	"github.com/webb-tools/bulletproofs/r1cs"
	"github.com/webb-tools/bulletproofs/ristretto"
)

// SetMembership constrains cs so that v equals one of set's elements.
// diffVars[i] must be committed by the caller as set[i]-v; the gadget ties
// each diffVars[i] to that definition and proves the product of all
// diffVars is zero, i.e. at least one of them vanishes.
func SetMembership(cs r1cs.ConstraintSystem, v r1cs.Variable, diffVars []r1cs.Variable, set []uint64) error {
	productLC := r1cs.FromConstant(r1cs.OpaqueFromUint64(1))
	productAssign := r1cs.Known(ristretto.One())

	for i, elem := range set {
		elemLC := r1cs.FromConstant(r1cs.OpaqueFromUint64(elem))
		vMinusElem := r1cs.FromVariable(v).Sub(elemLC)
		cs.AddConstraint(r1cs.Constrain(r1cs.FromVariable(diffVars[i]).Add(vMinusElem)))

		out, err := r1cs.Multiply(cs, productLC, r1cs.FromVariable(diffVars[i]), productAssign, diffVars[i].Assignment)
		if err != nil {
			return err
		}
		productLC = r1cs.FromVariable(out)
		productAssign = out.Assignment
	}

	cs.AddConstraint(r1cs.Constrain(productLC))
	return nil
}

// SetNonMembership constrains cs so that v is distinct from every element
// of set. diffVars[i] must be committed as set[i]-v and diffInvVars[i] as
// its multiplicative inverse; IsNonzero enforces that each difference is
// genuinely invertible, hence nonzero.
func SetNonMembership(cs r1cs.ConstraintSystem, v r1cs.Variable, diffVars, diffInvVars []r1cs.Variable, set []uint64) error {
	for i, elem := range set {
		elemLC := r1cs.FromConstant(r1cs.OpaqueFromUint64(elem))
		vMinusElem := r1cs.FromVariable(v).Sub(elemLC)
		cs.AddConstraint(r1cs.Constrain(r1cs.FromVariable(diffVars[i]).Add(vMinusElem)))

		if err := IsNonzero(cs, diffVars[i], diffInvVars[i]); err != nil {
			return err
		}
	}
	return nil
}

// IsNonzero constrains cs so that x is nonzero, given xInv committed as a
// claimed multiplicative inverse of x: it allocates a gate multiplying x by
// xInv and constrains the product to 1, which is only satisfiable when x
// has an inverse.
func IsNonzero(cs r1cs.ConstraintSystem, x, xInv r1cs.Variable) error {
	out, err := r1cs.Multiply(cs, r1cs.FromVariable(x), r1cs.FromVariable(xInv), x.Assignment, xInv.Assignment)
	if err != nil {
		return err
	}
	cs.AddConstraint(r1cs.Constrain(r1cs.FromVariable(out).Sub(r1cs.FromConstant(r1cs.OpaqueFromUint64(1)))))
	return nil
}

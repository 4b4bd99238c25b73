package r1cs

// Multiply allocates a fresh multiplication gate whose left and right wires
// are constrained equal to leftLC and rightLC (the standard CS::multiply
// convenience gadgets build on top of the raw AssignMultiplier primitive:
// allocate the gate, then tie its L/R wires to the caller's linear
// combinations so the gate's output can stand in for leftLC*rightLC in
// further constraints). leftAssign/rightAssign are the assignments backing
// leftLC/rightLC respectively; the gate's own left/right assignments are
// fed from them so the output wire gets the right concrete value on the
// prover side while staying Missing on the verifier side.
func Multiply(cs ConstraintSystem, leftLC, rightLC LinearCombination, leftAssign, rightAssign Assignment) (Variable, error) {
	outAssign := leftAssign.Mul(rightAssign)
	l, r, o, err := cs.AssignMultiplier(leftAssign, rightAssign, outAssign)
	if err != nil {
		return Variable{}, err
	}
	cs.AddConstraint(Constrain(FromVariable(l).Sub(leftLC)))
	cs.AddConstraint(Constrain(FromVariable(r).Sub(rightLC)))
	return o, nil
}

package r1cs

// ConstraintSystem is the gadget-facing capability set available in both the
// PRE and POST commitment states (spec's ConstraintSystem trait). A gadget
// written only against this interface is oblivious to whether it is running
// against a VerifierCS or a ProverCS, and to whether fresh post-commitment
// challenges are available yet.
type ConstraintSystem interface {
	// AssignMultiplier allocates the next multiplier gate and returns its
	// three wires. No arithmetic check is performed on the assignments
	// (the verifier side's assignments are always Missing).
	AssignMultiplier(left, right, out Assignment) (Variable, Variable, Variable, error)
	// AddConstraint appends a constraint to the accumulator. It is never
	// removed and never renumbered.
	AddConstraint(c Constraint)
	// AfterCommitment registers a callback to run exactly once, in
	// registration order, once the commitment transition has happened. If
	// the receiver is already past the transition, it runs synchronously.
	AfterCommitment(f func(CommittedConstraintSystem) error) error
}

// CommittedConstraintSystem is the capability set available only after the
// commitment transition, when Fiat-Shamir challenges may safely be drawn
// because every external and intermediate commitment has been bound into
// the transcript.
type CommittedConstraintSystem interface {
	ConstraintSystem
	// ChallengeScalar draws a labeled Fiat-Shamir challenge. Returning an
	// OpaqueScalar rather than a plain Scalar keeps gadget code from
	// branching on the challenge value.
	ChallengeScalar(label string) OpaqueScalar
}

package inputselection

// SelectionPolicy controls whether the amount fulfiller keeps consuming
// Ed25519 candidates (tiers 1 and 2) after the missing amount is covered
// (spec.md §9 open question). Candidate order is the same under every
// policy, and tiers 3 and 4 stop the same way under both.
type SelectionPolicy byte

const (
	// PolicyMinInputs stops consuming a tier's candidates as soon as the
	// missing amount reaches zero, minimizing the number of inputs used.
	// This is spec.md §4.2's default behavior.
	PolicyMinInputs SelectionPolicy = iota
	// PolicyConsolidate consumes every available candidate in tiers 1 and 2
	// (still ordered lowest-amount-first) regardless of whether the
	// missing amount has already reached zero, trading a larger input
	// count for fewer leftover low-value outputs.
	PolicyConsolidate
)

package gont

// CheckOpt configures a compatibility check.
type CheckOpt struct {
	// FailFast stops at the first issue. Boolean predicates always run
	// fail-fast.
	FailFast bool
}

func resolveCheckOpt(opts []CheckOpt) CheckOpt {
	if len(opts) == 0 {
		return CheckOpt{}
	}
	return opts[0]
}

package genbranch

type branchMiddleware interface {

	// Receives each branching decision together with the block it concerns
	ProcessDecision(block int, d branchDecision)
}

type dummyMiddleware struct{}

func (d dummyMiddleware) ProcessDecision(block int, b branchDecision) {
	return
}

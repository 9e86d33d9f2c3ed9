package lecar

import (
	"math"
	"time"
)

// minProbability floors p_LFU (and, symmetrically, p_LRU) away from the
// boundary. Without this, a long run of ghost hits biased toward one
// policy can drive the losing weight to exact zero under floating-point
// underflow, degenerating the selector into always drawing one policy.
const minProbability = 1e-9

// learner implements the exponential multiplicative-weights update that
// turns a ghost-hit signal into a new p_LFU.
type learner struct {
	learningRate float64
	discountRate float64
}

func newLearner(learningRate, discountRate float64) *learner {
	return &learner{learningRate: learningRate, discountRate: discountRate}
}

// update computes the time-decayed reward from dwell and returns the new
// p_LFU. missPolicy is the policy whose ghost history produced the hit —
// evidence that *that* policy's earlier eviction of the key was
// regrettable — so the update boosts the *other* policy's weight.
func (l *learner) update(pLFU float64, missPolicy Policy, dwell time.Duration) float64 {
	reward := math.Pow(l.discountRate, dwell.Seconds())

	wLFU := pLFU
	wLRU := 1 - pLFU
	switch missPolicy.other() {
	case LFU:
		wLFU *= math.Exp(l.learningRate * reward)
	case LRU:
		wLRU *= math.Exp(l.learningRate * reward)
	}

	sum := wLFU + wLRU
	if sum <= 0 {
		// Both weights underflowed; hold the previous probability rather
		// than dividing by zero.
		return pLFU
	}
	p := wLFU / sum

	if p < minProbability {
		p = minProbability
	} else if p > 1-minProbability {
		p = 1 - minProbability
	}
	return p
}

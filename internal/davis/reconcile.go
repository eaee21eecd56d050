// FilePath: internal/davis/reconcile.go
package davis

// AlignSamples pairs each weather sample timestamp with the index of the
// gateway sample whose reporting interval covers it. A weather sample at
// ts belongs to gateway interval j when gateway[j] <= ts < gateway[j+1];
// a sample falling exactly on gateway[j+1] belongs to j+1. Samples beyond
// the last interval are pinned to the final gateway sample, which is the
// freshest health report available for them.
//
// Both slices must be in ascending timestamp order, as delivered by the
// archive feed. gatewayTS must be non-empty.
func AlignSamples(sampleTS, gatewayTS []int64) []int {
	pairing := make([]int, len(sampleTS))
	last := len(gatewayTS) - 1
	for i, ts := range sampleTS {
		j := last
		for k := 0; k < last; k++ {
			if ts == gatewayTS[k+1] {
				j = k + 1
				break
			}
			if gatewayTS[k] <= ts && ts < gatewayTS[k+1] {
				j = k
				break
			}
		}
		pairing[i] = j
	}
	return pairing
}

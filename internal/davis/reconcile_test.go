// FilePath: internal/davis/reconcile_test.go
package davis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignSamplesIntervals(t *testing.T) {
	gateway := []int64{90, 150, 250}

	pairing := AlignSamples([]int64{100, 200, 300}, gateway)

	// 100 falls in [90,150), 200 in [150,250), 300 past the last sample.
	assert.Equal(t, []int{0, 1, 2}, pairing)
}

func TestAlignSamplesExactBoundaryPrefersNewerSample(t *testing.T) {
	gateway := []int64{90, 150, 250}

	pairing := AlignSamples([]int64{150, 250}, gateway)

	assert.Equal(t, []int{1, 2}, pairing)
}

func TestAlignSamplesBeforeFirstFallsBackToLast(t *testing.T) {
	gateway := []int64{90, 150, 250}

	pairing := AlignSamples([]int64{50}, gateway)

	assert.Equal(t, []int{2}, pairing)
}

func TestAlignSamplesSingleGatewaySample(t *testing.T) {
	pairing := AlignSamples([]int64{100, 200, 300}, []int64{150})

	assert.Equal(t, []int{0, 0, 0}, pairing)
}

func TestAlignSamplesEmptySamples(t *testing.T) {
	assert.Empty(t, AlignSamples(nil, []int64{100}))
}

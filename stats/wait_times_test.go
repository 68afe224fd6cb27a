package stats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"waitstats/utils"
)

func TestNewClipsIntervalToSeries(t *testing.T) {
	w := New([]int64{100, 700, 1300}, DefaultBounds().WithStart(-500).WithEnd(9000))

	start, end := w.Interval()
	assert.Equal(t, int64(100), start)
	assert.Equal(t, int64(1300), end)
	assert.False(t, w.IsEmpty())
	assert.Equal(t, []int64{0, 600}, w.Headways())
}

func TestNewDefaultBounds(t *testing.T) {
	w := New([]int64{100, 700, 1300}, DefaultBounds())

	start, end := w.Interval()
	assert.Equal(t, int64(100), start)
	assert.Equal(t, int64(1300), end)
}

func TestNewStartBeyondSeriesIsEmpty(t *testing.T) {
	w := New([]int64{100, 300}, DefaultBounds().WithStart(400))

	assert.True(t, w.IsEmpty())

	_, err := w.Average()
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestEmptySeriesReturnsNoData(t *testing.T) {
	w := New([]int64{}, DefaultBounds())

	assert.True(t, w.IsEmpty())

	_, err := w.Average()
	assert.True(t, errors.Is(err, ErrNoData))

	_, err = w.CumulativeDistribution()
	assert.True(t, errors.Is(err, ErrNoData))

	_, err = w.Quantiles([]float64{0.5})
	assert.True(t, errors.Is(err, ErrNoData))

	_, err = w.Percentiles([]float64{50})
	assert.True(t, errors.Is(err, ErrNoData))

	_, err = w.Histogram([]float64{0, 5, 10})
	assert.True(t, errors.Is(err, ErrNoData))

	_, err = w.ProbabilityLessThan(5)
	assert.True(t, errors.Is(err, ErrNoData))

	_, err = w.ProbabilityGreaterThan(5)
	assert.True(t, errors.Is(err, ErrNoData))

	_, err = w.SampledWaits(60)
	assert.True(t, errors.Is(err, ErrNoData))

	_, err = w.SampledAverage(60)
	assert.True(t, errors.Is(err, ErrNoData))
}

// Two 10-minute headways with no arrival after the interval: the
// requested end of 1800 is cut back to the last arrival and the mean
// wait is half a headway.
func TestAverageTwoEqualHeadways(t *testing.T) {
	w := New([]int64{0, 600, 1200}, DefaultBounds().WithStart(0).WithEnd(1800))

	start, end := w.Interval()
	assert.Equal(t, int64(0), start)
	assert.Equal(t, int64(1200), end)

	average, err := w.Average()
	utils.AssertNil(t, err)
	utils.AssertEqual(t, average, 5.0)
}

func TestAverageWithTailWait(t *testing.T) {
	// Interval ends at 1300 with the next arrival at 1500: everyone in
	// the last 100s waits at least 200s.
	w := New([]int64{0, 600, 1200, 1500}, DefaultBounds().WithEnd(1300))

	average, err := w.Average()
	utils.AssertNil(t, err)

	// (0²+600²+600²)/2 + 200*100 + 100²/2 = 385000 wait-seconds over
	// 1300 seconds.
	utils.AssertClose(t, average, 385000.0/1300/60, 1e-12)
}

func TestSampledWaits(t *testing.T) {
	w := New([]int64{0, 600, 1200}, DefaultBounds().WithEnd(1800))

	waits, err := w.SampledWaits(60)
	utils.AssertNil(t, err)
	assert.Len(t, waits, 20)

	// Sampling misses the top of each ramp, so the sampled mean sits
	// half a step below the exact mean.
	average, err := w.SampledAverage(60)
	utils.AssertNil(t, err)
	utils.AssertClose(t, average, 4.5, 1e-9)
}

func TestSampledWaitsAlignment(t *testing.T) {
	// Samples align to multiples of the step, so the first one lands
	// at 120, before the interval start of 130.
	w := New([]int64{130, 250}, DefaultBounds())

	waits, err := w.SampledWaits(60)
	utils.AssertNil(t, err)

	assert.Equal(t, []float64{10.0 / 60, 70.0 / 60, 10.0 / 60}, waits)
}

func TestSampledAverageConvergesToExact(t *testing.T) {
	w := New([]int64{0, 480, 900, 1200, 2100, 2700}, DefaultBounds())

	exact, err := w.Average()
	utils.AssertNil(t, err)

	coarse, err := w.SampledAverage(60)
	utils.AssertNil(t, err)

	fine, err := w.SampledAverage(1)
	utils.AssertNil(t, err)

	coarseDiff := exact - coarse
	fineDiff := exact - fine
	utils.AssertTrue(t, fineDiff < coarseDiff)
	utils.AssertClose(t, fine, exact, 0.01)
}

func TestSampledWaitsDefaultStep(t *testing.T) {
	w := New([]int64{0, 600, 1200}, DefaultBounds())

	defaulted, err := w.SampledWaits(0)
	utils.AssertNil(t, err)

	explicit, err := w.SampledWaits(DefaultSampleSeconds)
	utils.AssertNil(t, err)

	assert.Equal(t, explicit, defaulted)
}

func TestSummarize(t *testing.T) {
	w := New([]int64{0, 600, 1200}, DefaultBounds())

	series := w.Summarize()
	utils.AssertEqual(t, series.FirstArrival, int64(0))
	utils.AssertEqual(t, series.LastArrival, int64(600))
	utils.AssertEqual(t, series.NumArrivals, uint64(2))
	utils.AssertEqual(t, series.HeadwayStats.Mean(), 600.0)
}

func TestSearchInt64s(t *testing.T) {
	values := []int64{10, 20, 20, 30}

	utils.AssertEqual(t, SearchInt64s(values, 5), 0)
	utils.AssertEqual(t, SearchInt64s(values, 10), 0)
	utils.AssertEqual(t, SearchInt64s(values, 20), 1)
	utils.AssertEqual(t, SearchInt64s(values, 25), 3)
	utils.AssertEqual(t, SearchInt64s(values, 35), 4)
}

package stats

import (
	"fmt"
	"sort"
)

// CDFPoint is one vertex of the piecewise-linear cumulative
// distribution of wait times: Probability is the fraction of the
// interval during which the wait would be less than WaitTime minutes.
type CDFPoint struct {
	WaitTime    float64
	Probability float64
}

// InvalidDistributionError reports that the constructed CDF failed its
// boundary postcondition (first probability 0, last probability 1).
// It indicates a defect in the geometric algorithm, not bad input, and
// carries the full intermediate state for diagnosis.
type InvalidDistributionError struct {
	Points         []CDFPoint
	Headways       []int64
	SortedWaits    []int64
	EndElapsedTime int64
	EndWaitTime    int64
	HasNextArrival bool
}

func (e *InvalidDistributionError) Error() string {
	return fmt.Sprintf(
		"invalid cumulative distribution: points=%v headways=%v sortedWaits=%v endElapsed=%d endWait=%d hasNext=%t",
		e.Points, e.Headways, e.SortedWaits,
		e.EndElapsedTime, e.EndWaitTime, e.HasNextArrival)
}

// CumulativeDistribution returns the exact CDF of wait time over the
// interval as an ascending sequence of points, linear between them.
// The first point has probability 0 and the last probability 1. The
// result is computed once and memoized; callers must not modify it.
func (w *WaitTimeStats) CumulativeDistribution() ([]CDFPoint, error) {
	w.cdfOnce.Do(func() {
		w.cdfPoints, w.cdfErr = w.buildCDF()
	})
	return w.cdfPoints, w.cdfErr
}

// buildCDF walks the distinct wait-time breakpoints in ascending
// order. Between two breakpoints the CDF is linear: every ramp at
// least as long as the previous breakpoint contributes one second of
// occupied interval per second of wait. The breakpoints are the
// headway values, plus (when an arrival follows the interval) the two
// synthetic tail values endWaitTime and endWaitTime+endElapsedTime,
// plus a zero anchor when the interval contains any arrival.
func (w *WaitTimeStats) buildCDF() ([]CDFPoint, error) {
	if w.empty {
		return nil, ErrNoData
	}

	hasArrival := len(w.headways) > 0

	var waitTimeValues []int64
	switch {
	case w.hasNextArrival:
		waitTimeValues = make([]int64, 0, len(w.headways)+3)
		waitTimeValues = append(waitTimeValues, w.headways...)
		waitTimeValues = append(waitTimeValues, w.endWaitTime, w.endWaitTime+w.endElapsedTime)
		if hasArrival {
			waitTimeValues = append(waitTimeValues, 0)
		}
	case hasArrival:
		waitTimeValues = make([]int64, 0, len(w.headways)+1)
		waitTimeValues = append(waitTimeValues, 0)
		waitTimeValues = append(waitTimeValues, w.headways...)
	default:
		// Not even one complete ramp in the interval.
		return nil, ErrNoData
	}

	sort.Slice(waitTimeValues, func(i, j int) bool {
		return waitTimeValues[i] < waitTimeValues[j]
	})

	numWaitTimeValues := len(waitTimeValues)
	intervalElapsed := float64(w.intervalEnd - w.intervalStart)

	points := make([]CDFPoint, 0, numWaitTimeValues)

	first := true
	var prevWaitTime int64
	var totElapsed int64

	for i, waitTime := range waitTimeValues {
		if !first && waitTime <= prevWaitTime {
			continue
		}

		// Ramps at least prevWaitTime long are still live here.
		numLiveRamps := numWaitTimeValues - i
		if w.hasNextArrival && waitTime <= w.endWaitTime {
			// The two synthetic tail breakpoints are not ramp lengths;
			// below endWaitTime they must not be counted as live.
			numLiveRamps -= 2
		}

		if !first {
			totElapsed += (waitTime - prevWaitTime) * int64(numLiveRamps)
		}

		points = append(points, CDFPoint{
			WaitTime:    float64(waitTime) / 60,
			Probability: float64(totElapsed) / intervalElapsed,
		})

		prevWaitTime = waitTime
		first = false
	}

	if points[0].Probability != 0 || points[len(points)-1].Probability != 1 {
		// Should never happen; the walk above is broken if it does.
		return nil, &InvalidDistributionError{
			Points:         points,
			Headways:       w.headways,
			SortedWaits:    waitTimeValues,
			EndElapsedTime: w.endElapsedTime,
			EndWaitTime:    w.endWaitTime,
			HasNextArrival: w.hasNextArrival,
		}
	}

	return points, nil
}

// Quantiles returns, for each q in qs (each in [0, 1]), the wait time
// in minutes at which the CDF reaches q, interpolating linearly
// between CDF points.
func (w *WaitTimeStats) Quantiles(qs []float64) ([]float64, error) {
	points, err := w.CumulativeDistribution()
	if err != nil {
		return nil, err
	}

	values := make([]float64, len(qs))
	for i, q := range qs {
		values[i] = quantileValue(points, q)
	}
	return values, nil
}

// Percentiles is Quantiles with inputs in [0, 100].
func (w *WaitTimeStats) Percentiles(ps []float64) ([]float64, error) {
	qs := make([]float64, len(ps))
	for i, p := range ps {
		qs[i] = p / 100
	}
	return w.Quantiles(qs)
}

func quantileValue(points []CDFPoint, q float64) float64 {
	end := sort.Search(len(points), func(i int) bool {
		return points[i].Probability >= q
	})
	if end == 0 {
		return points[0].WaitTime
	}
	if end >= len(points) {
		return points[len(points)-1].WaitTime
	}

	// Linear interpolation to the wait time where the CDF equals q.
	start := end - 1
	frac := (q - points[start].Probability) / (points[end].Probability - points[start].Probability)
	return points[start].WaitTime + frac*(points[end].WaitTime-points[start].WaitTime)
}

// ProbabilityLessThan returns the fraction of the interval during
// which the wait would be less than waitTime minutes.
func (w *WaitTimeStats) ProbabilityLessThan(waitTime float64) (float64, error) {
	points, err := w.CumulativeDistribution()
	if err != nil {
		return 0, err
	}
	return probabilityLessThan(points, waitTime), nil
}

// ProbabilityGreaterThan is 1 - ProbabilityLessThan.
func (w *WaitTimeStats) ProbabilityGreaterThan(waitTime float64) (float64, error) {
	probLess, err := w.ProbabilityLessThan(waitTime)
	if err != nil {
		return 0, err
	}
	return 1.0 - probLess, nil
}

func probabilityLessThan(points []CDFPoint, waitTime float64) float64 {
	end := sort.Search(len(points), func(i int) bool {
		return points[i].WaitTime >= waitTime
	})
	if end >= len(points) {
		return 1.0
	}
	if end == 0 {
		return 0.0
	}

	start := end - 1
	frac := (waitTime - points[start].WaitTime) / (points[end].WaitTime - points[start].WaitTime)
	return points[start].Probability + frac*(points[end].Probability-points[start].Probability)
}

// Histogram returns, for each adjacent pair of binEdges (ascending,
// in minutes), the probability of a wait inside that bin. The result
// has len(binEdges)-1 entries.
func (w *WaitTimeStats) Histogram(binEdges []float64) ([]float64, error) {
	points, err := w.CumulativeDistribution()
	if err != nil {
		return nil, err
	}

	if len(binEdges) < 2 {
		return []float64{}, nil
	}

	histogram := make([]float64, 0, len(binEdges)-1)
	prev := probabilityLessThan(points, binEdges[0])
	for _, edge := range binEdges[1:] {
		cumulative := probabilityLessThan(points, edge)
		histogram = append(histogram, cumulative-prev)
		prev = cumulative
	}
	return histogram, nil
}

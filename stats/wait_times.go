package stats

import (
	"errors"
	"sync"
)

// ErrNoData is returned by every query when there is nothing to
// compute statistics over: an empty arrival series, an interval that
// collapses to zero width, or a window containing no complete ramp.
var ErrNoData = errors.New("no data in interval")

// DefaultSampleSeconds is the step used by SampledWaits when the
// caller passes a non-positive step.
const DefaultSampleSeconds = int64(60)

// Bounds optionally restricts the interval statistics are computed
// over. The zero value leaves both ends open, defaulting to the full
// range of the arrival series.
type Bounds struct {
	startTime int64
	endTime   int64
	hasStart  bool
	hasEnd    bool
}

func DefaultBounds() Bounds {
	return Bounds{}
}

func (bounds Bounds) WithStart(t int64) Bounds {
	bounds.startTime = t
	bounds.hasStart = true
	return bounds
}

func (bounds Bounds) WithEnd(t int64) Bounds {
	bounds.endTime = t
	bounds.hasEnd = true
	return bounds
}

// WaitTimeStats computes exact statistics about the time a person
// arriving uniformly at random within an interval would wait for the
// next event, given an ascending series of event timestamps (Unix
// seconds).
//
// Wait time as a function of when the person shows up is a sawtooth of
// slope -1 ramps, one per headway, each hitting zero at an arrival.
// The area under that sawtooth gives the exact average; slicing it
// horizontally gives an exact piecewise-linear CDF (see cdf.go), from
// which quantiles, histograms and point probabilities follow without
// sampling. All returned statistics are in minutes.
//
// The interval is clipped to the range of the series. If no arrival
// exists after the interval, the portion after the last in-interval
// arrival is excluded entirely: the wait there depends on an event
// that was never observed.
//
// A WaitTimeStats is immutable after construction; the CDF is computed
// once on first use and memoized, so a single value is safe for
// concurrent readers.
type WaitTimeStats struct {
	timeValues []int64

	empty bool

	intervalStart int64
	intervalEnd   int64

	startIndex int
	endIndex   int

	intervalTimeValues []int64
	headways           []int64

	// endElapsedTime is the gap between the last in-interval arrival
	// and the interval end; endWaitTime the gap from the interval end
	// to the next arrival after it, valid only when hasNextArrival.
	endElapsedTime int64
	endWaitTime    int64
	hasNextArrival bool

	cdfOnce   sync.Once
	cdfPoints []CDFPoint
	cdfErr    error
}

// New builds wait time statistics for timeValues, an ascending series
// of event timestamps in seconds, over the interval described by
// bounds. The series is read, never modified.
func New(timeValues []int64, bounds Bounds) *WaitTimeStats {
	w := &WaitTimeStats{timeValues: timeValues}

	if len(timeValues) == 0 {
		w.empty = true
		return w
	}

	firstArrival := timeValues[0]
	lastArrival := timeValues[len(timeValues)-1]

	w.intervalStart = firstArrival
	if bounds.hasStart {
		w.intervalStart = Int64Max(firstArrival, bounds.startTime)
	}

	intervalEnd := lastArrival
	if bounds.hasEnd {
		intervalEnd = Int64Min(lastArrival, bounds.endTime)
	}
	w.intervalEnd = Int64Max(intervalEnd, w.intervalStart)

	w.startIndex = SearchInt64s(timeValues, w.intervalStart)
	w.endIndex = SearchInt64s(timeValues, w.intervalEnd)

	if w.endIndex > w.startIndex {
		w.intervalTimeValues = timeValues[w.startIndex:w.endIndex]
		w.headways = make([]int64, len(w.intervalTimeValues))
		prev := w.intervalStart
		for i, t := range w.intervalTimeValues {
			w.headways[i] = t - prev
			prev = t
		}
		w.endElapsedTime = w.intervalEnd - w.intervalTimeValues[len(w.intervalTimeValues)-1]
	} else {
		w.endElapsedTime = w.intervalEnd - w.intervalStart
	}

	if w.endIndex < len(timeValues) {
		w.hasNextArrival = true
		w.endWaitTime = timeValues[w.endIndex] - w.intervalEnd
	} else if w.endElapsedTime > 0 {
		// No arrival is known after the interval; the true wait for
		// anyone showing up after the last observed arrival is
		// unknowable, so that tail is cut off the interval.
		w.endElapsedTime = 0
		if n := len(w.intervalTimeValues); n > 0 {
			w.intervalEnd = w.intervalTimeValues[n-1]
		}
	}

	w.empty = w.intervalEnd-w.intervalStart <= 0
	return w
}

// IsEmpty reports whether the interval holds no data; every query on
// an empty WaitTimeStats returns ErrNoData.
func (w *WaitTimeStats) IsEmpty() bool {
	return w.empty
}

// Interval returns the final interval bounds after clipping and tail
// revision.
func (w *WaitTimeStats) Interval() (int64, int64) {
	return w.intervalStart, w.intervalEnd
}

// Headways returns the gaps between consecutive in-interval arrivals,
// the first measured from the interval start.
func (w *WaitTimeStats) Headways() []int64 {
	return w.headways
}

// Average returns the exact mean wait time in minutes over the
// interval.
func (w *WaitTimeStats) Average() (float64, error) {
	if w.empty {
		return 0, ErrNoData
	}

	totalWait := 0.0

	// Each headway's ramp sweeps a triangle of area h²/2.
	for _, h := range w.headways {
		totalWait += float64(h) * float64(h) / 2
	}

	if w.hasNextArrival {
		// The tail holds a rectangle (wait of at least endWaitTime for
		// all of endElapsedTime) under a triangle.
		endWait := float64(w.endWaitTime)
		endElapsed := float64(w.endElapsedTime)
		totalWait += endWait*endElapsed + endElapsed*endElapsed/2
	}

	intervalElapsed := float64(w.intervalEnd - w.intervalStart)

	return totalWait / intervalElapsed / 60, nil
}

// SampledWaits approximates the wait time distribution by sampling:
// one sample per sampleSec seconds, aligned to multiples of sampleSec,
// each waiting for the next arrival at or after it. Samples with no
// following arrival are dropped. Results are in minutes.
//
// This path is independent of the exact CDF and exists to cross-check
// it.
func (w *WaitTimeStats) SampledWaits(sampleSec int64) ([]float64, error) {
	if w.empty {
		return nil, ErrNoData
	}
	if sampleSec <= 0 {
		sampleSec = DefaultSampleSeconds
	}

	arrivals := make([]int64, 0, len(w.intervalTimeValues)+1)
	arrivals = append(arrivals, w.intervalTimeValues...)
	if w.hasNextArrival {
		arrivals = append(arrivals, w.intervalEnd+w.endWaitTime)
	}

	waits := make([]float64, 0)
	for t := w.intervalStart - w.intervalStart%sampleSec; t < w.intervalEnd; t += sampleSec {
		next := SearchInt64s(arrivals, t)
		if next < len(arrivals) {
			waits = append(waits, float64(arrivals[next]-t)/60)
		}
	}

	return waits, nil
}

// SampledAverage is the mean of SampledWaits(sampleSec). It converges
// to Average as sampleSec shrinks.
func (w *WaitTimeStats) SampledAverage(sampleSec int64) (float64, error) {
	waits, err := w.SampledWaits(sampleSec)
	if err != nil {
		return 0, err
	}
	if len(waits) == 0 {
		return 0, ErrNoData
	}

	welford := NewWelford()
	for _, wait := range waits {
		welford.Update(wait)
	}
	return welford.Mean(), nil
}

// Summarize returns arrival-series statistics for the in-interval
// arrivals.
func (w *WaitTimeStats) Summarize() *SeriesStatistics {
	series := NewSeriesStatistics()
	for _, t := range w.intervalTimeValues {
		series.Append(t)
	}
	return series
}

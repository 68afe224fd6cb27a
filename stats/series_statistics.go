package stats

// SeriesStatistics summarizes an arrival series: the observed time
// range, the number of arrivals, and Welford statistics over the
// headways between consecutive arrivals.
type SeriesStatistics struct {
	FirstArrival int64
	LastArrival  int64
	NumArrivals  uint64
	HeadwayStats *Welford
}

func NewSeriesStatistics() *SeriesStatistics {
	return &SeriesStatistics{
		FirstArrival: -1,
		LastArrival:  -1,
		NumArrivals:  0,
		HeadwayStats: NewWelford(),
	}
}

func (series *SeriesStatistics) Append(timestamp int64) {
	if series.FirstArrival == -1 {
		series.FirstArrival = timestamp
	} else {
		headway := timestamp - series.LastArrival
		series.HeadwayStats.Update(float64(headway))
	}
	series.NumArrivals++
	series.LastArrival = timestamp
}

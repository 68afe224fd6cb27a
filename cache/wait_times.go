package cache

import "encoding/json"

// WaitTimes is a decoded precomputed wait-times blob: one statistic
// value per (route, direction, stop).
type WaitTimes struct {
	Routes map[string]map[string]map[string]float64 `json:"routes"`
}

// Value looks up the statistic for one stop.
func (w *WaitTimes) Value(routeID, directionID, stopID string) (float64, bool) {
	routeData, ok := w.Routes[routeID]
	if !ok {
		return 0, false
	}

	directionData, ok := routeData[directionID]
	if !ok {
		return 0, false
	}

	value, ok := directionData[stopID]
	return value, ok
}

func decodeWaitTimes(buf []byte) (*WaitTimes, error) {
	var waitTimes WaitTimes
	if err := json.Unmarshal(buf, &waitTimes); err != nil {
		return nil, err
	}
	return &waitTimes, nil
}

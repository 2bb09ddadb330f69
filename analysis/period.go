package analysis

// EstimatePeriod estimates the oscillation period of a sampled series from
// its upward zero crossings (crossings of the series mean, so offset
// oscillations work too). The crossing instants are refined by linear
// interpolation between the bracketing samples. Returns 0 when fewer than
// two crossings are found.
func EstimatePeriod(times, series []float64) float64 {
	n := len(series)
	if n < 3 || len(times) != n {
		return 0
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	crossings := make([]float64, 0, 8)
	for i := 1; i < n; i++ {
		prev := series[i-1] - mean
		cur := series[i] - mean
		if prev < 0 && cur >= 0 {
			frac := 0.0
			if cur != prev {
				frac = -prev / (cur - prev)
			}
			crossings = append(crossings, times[i-1]+frac*(times[i]-times[i-1]))
		}
	}

	if len(crossings) < 2 {
		return 0
	}
	return (crossings[len(crossings)-1] - crossings[0]) / float64(len(crossings)-1)
}

// Peaks returns the times and values of the local maxima of a sampled
// series. Plateaus and endpoints are not reported.
func Peaks(times, series []float64) (peakTimes, peakValues []float64) {
	for i := 1; i < len(series)-1; i++ {
		if series[i] > series[i-1] && series[i] > series[i+1] {
			peakTimes = append(peakTimes, times[i])
			peakValues = append(peakValues, series[i])
		}
	}
	return peakTimes, peakValues
}

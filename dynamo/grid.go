package dynamo

// Linspace returns n evenly spaced samples over [start, end], endpoints
// included. n < 2 collapses to a single sample at start.
func Linspace(start, end float64, n int) []float64 {
	if n < 2 {
		return []float64{start}
	}
	ts := make([]float64, n)
	step := (end - start) / float64(n-1)
	for i := range ts {
		ts[i] = start + float64(i)*step
	}
	ts[n-1] = end
	return ts
}

func validGrid(times []float64) bool {
	if len(times) == 0 {
		return false
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return false
		}
	}
	return true
}

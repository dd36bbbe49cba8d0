package utils

// FindIndex returns the position of item in slice, or -1.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// MaxAll returns every item sharing the highest score, in input order.
func MaxAll[T any](items []T, score func(T) float64) []T {
	var best []T
	var bestScore float64
	for i, item := range items {
		s := score(item)
		switch {
		case i == 0 || s > bestScore:
			bestScore = s
			best = append(best[:0], item)
		case s == bestScore:
			best = append(best, item)
		}
	}
	return best
}

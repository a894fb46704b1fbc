package suggest

// Wrap normalises value into [0, size) so navigation cycles through the list.
// size must be positive; the panel closes on empty results so callers never
// navigate an empty set.
func Wrap(value, size int) int {
	return ((value % size) + size) % size
}

package style

// Attempt is one tier of an ordered accessor probe.
type Attempt[T any] struct {
	// Get reads the value.
	Get func() (T, error)
	// Recover decides whether a failure moves on to the next tier. A nil
	// Recover makes every failure final.
	Recover func(error) bool
}

// Probe runs attempts in order and returns the first successful value.
// A failure that the attempt does not recover from is returned as is. When
// every attempt recovers, the last failure is returned.
func Probe[T any](attempts ...Attempt[T]) (T, error) {
	var (
		zero    T
		lastErr error
	)

	for _, a := range attempts {
		v, err := a.Get()
		if err == nil {
			return v, nil
		}

		if a.Recover == nil || !a.Recover(err) {
			return zero, err
		}

		lastErr = err
	}

	return zero, lastErr
}

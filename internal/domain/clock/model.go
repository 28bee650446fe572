package clock

// LeagueClock is the league's current position, read once per operation and
// threaded through calls so season and week can never come from two
// different instants.
type LeagueClock struct {
	Season int
	Week   int
}

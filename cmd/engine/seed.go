package main

import "time"

// randSeed seeds the match RNG from wall-clock time; a deterministic
// replay run can instead construct its own rand.Source and call
// match.New directly (match.New takes the *rand.Rand the match uses).
func randSeed() int64 {
	return time.Now().UnixNano()
}

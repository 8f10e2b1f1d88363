package theworld

// Time holds the frame clock of a Game. It advances once at the start of
// every Step.
type Time struct {
	deltaTime    float64
	maxDeltaTime float64
	elapsed      float64
	frameCount   uint64
}

// DeltaTime returns the seconds elapsed since the previous frame, clamped
// to the configured maximum.
func (t *Time) DeltaTime() float64 {
	return t.deltaTime
}

// Elapsed returns the total game time in seconds.
func (t *Time) Elapsed() float64 {
	return t.elapsed
}

// FrameCount returns the number of frames stepped so far.
func (t *Time) FrameCount() uint64 {
	return t.frameCount
}

func (t *Time) advance(dt float64) float64 {
	if dt < 0 {
		dt = 0
	}
	if t.maxDeltaTime > 0 && dt > t.maxDeltaTime {
		dt = t.maxDeltaTime
	}
	t.deltaTime = dt
	t.elapsed += dt
	t.frameCount++
	return dt
}

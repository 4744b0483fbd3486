package peel

// Schedule supplies the diameter for each layer. prev is the previous layer,
// or nil for the first one. ok is false when peeling should stop.
type Schedule interface {
	Next(index int, prev *Layer) (diameter float64, ok bool)
}

// ScheduleFunc adapts a function to Schedule.
type ScheduleFunc func(index int, prev *Layer) (float64, bool)

// Next calls f.
func (f ScheduleFunc) Next(index int, prev *Layer) (float64, bool) { return f(index, prev) }

// Diameters peels exactly one layer per diameter.
func Diameters(ds ...float64) Schedule {
	return ScheduleFunc(func(index int, _ *Layer) (float64, bool) {
		if index >= len(ds) {
			return 0, false
		}
		return ds[index], true
	})
}

// Reuse peels up to maxLayers layers. Once ds is exhausted, each layer reuses
// the previous layer's diameter. A non-positive maxLayers means no limit.
func Reuse(ds []float64, maxLayers int) Schedule {
	return ScheduleFunc(func(index int, prev *Layer) (float64, bool) {
		if maxLayers > 0 && index >= maxLayers {
			return 0, false
		}
		if index < len(ds) {
			return ds[index], true
		}
		if prev == nil {
			return 0, false
		}
		return prev.Diameter, true
	})
}

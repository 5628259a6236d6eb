package kset

// Config tunes the resize behavior of a store.
// A nil *Config passed to a constructor selects [DefaultConfig].
type Config struct {
	// AllocCountMin is the minimum number of slots to keep allocated.
	// Must be greater than 1.
	AllocCountMin int

	// TableCountMin is the minimum number of slots participating in hashing.
	// Must be greater than 1.
	TableCountMin int

	// GrowThresholdPercent is the load percentage at or above which the table
	// grows. Must be greater than twice ShrinkThresholdPercent, otherwise a
	// grow could immediately trigger a shrink and vice versa.
	GrowThresholdPercent int

	// ShrinkThresholdPercent is the load percentage below which the table
	// shrinks, once it is larger than TableCountMin.
	ShrinkThresholdPercent int

	// AutoGrow allows Insert to resize the table up.
	AutoGrow bool

	// AutoShrink allows Remove to resize the table down.
	AutoShrink bool

	// DynamicAlloc allows the store to reallocate backing storage through its
	// allocator when resizing; without it the capacity allocated at creation
	// stays fixed. It is ignored in fixed-buffer mode.
	DynamicAlloc bool
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		AllocCountMin:          16,
		TableCountMin:          16,
		GrowThresholdPercent:   75,
		ShrinkThresholdPercent: 25,
		AutoGrow:               true,
		AutoShrink:             true,
		DynamicAlloc:           true,
	}
}

// valid checks the constraints documented on the fields.
func (config Config) valid() bool {
	return config.AllocCountMin > 1 &&
		config.TableCountMin > 1 &&
		config.GrowThresholdPercent > 2*config.ShrinkThresholdPercent
}

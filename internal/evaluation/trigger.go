package evaluation

// Cadence triggers evaluation every N epochs.
// WARN: when epochs are skipped, a gap spanning multiples of N still triggers
// only once instead of once per skipped multiple.
type Cadence struct {
	LastTriggeredEpoch int
	// interval is the number of epochs between triggers
	interval int
}

// NewCadence creates a Cadence that triggers every interval epochs.
// Intervals below 1 trigger every epoch.
func NewCadence(interval int) *Cadence {
	if interval < 1 {
		interval = 1
	}
	return &Cadence{
		LastTriggeredEpoch: -1,
		interval:           interval,
	}
}

// ShouldTrigger checks if the given epoch is due for evaluation. Before the
// first trigger, interval boundaries are due; afterwards any epoch at least
// interval past the last trigger is due.
func (c *Cadence) ShouldTrigger(epoch int) bool {
	if c.LastTriggeredEpoch < 0 {
		return epoch%c.interval == 0
	}
	return epoch-c.LastTriggeredEpoch >= c.interval
}

// MarkTriggered records that the given epoch was evaluated.
func (c *Cadence) MarkTriggered(epoch int) {
	c.LastTriggeredEpoch = epoch
}

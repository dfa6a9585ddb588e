package checklist

// DailyState is the mutable per-date record: which exercises are checked off
// and the free-text notes. Check keys are exercise identifiers
// "{section}_{index}"; an absent key means not done.
type DailyState struct {
	Checks map[string]bool `json:"checks"`
	Notes  string          `json:"notes"`
}

func NewDailyState() *DailyState {
	return &DailyState{
		Checks: make(map[string]bool),
	}
}

// DoneCount is the number of checked-off identifiers, regardless of whether
// they still map to a catalog entry.
func (s *DailyState) DoneCount() int {
	count := 0
	for _, done := range s.Checks {
		if done {
			count++
		}
	}
	return count
}

package pipeline

// RunStats tracks aggregate counters and byte totals across a batch run.
type RunStats struct {
	Total            int
	Converted        int
	Skipped          int
	Failed           int
	TotalInputBytes  int64
	TotalOutputBytes int64
}

// SpaceSaved returns the aggregate byte difference between inputs and outputs.
// Positive means outputs are smaller; negative means they grew.
func (s *RunStats) SpaceSaved() int64 {
	return s.TotalInputBytes - s.TotalOutputBytes
}

// outcome is the result of processing one file.
type outcome int

const (
	outcomeConverted outcome = iota
	outcomeSkipped
	outcomeFailed
)

// fileResult carries one file's outcome and sizes back to the runner.
type fileResult struct {
	outcome  outcome
	inBytes  int64
	outBytes int64
}

func (s *RunStats) add(r fileResult) {
	switch r.outcome {
	case outcomeConverted:
		s.Converted++
		s.TotalInputBytes += r.inBytes
		s.TotalOutputBytes += r.outBytes
	case outcomeSkipped:
		s.Skipped++
	case outcomeFailed:
		s.Failed++
	}
}

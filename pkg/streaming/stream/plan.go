package stream

// Mode is the evaluation mode of a stage during a terminal operation.
type Mode int

const (
	// ModeStreaming stages hand each element downstream as soon as it is
	// produced and stop as soon as downstream stops asking.
	ModeStreaming Mode = iota
	// ModeBuffered stages run to completion before the first element reaches
	// the terminal operation, because a sort barrier sits at or below them.
	ModeBuffered
)

func (m Mode) String() string {
	switch m {
	case ModeStreaming:
		return "streaming"
	case ModeBuffered:
		return "buffered"
	default:
		return "unknown"
	}
}

// StageInfo describes one stage of a pipeline.
type StageInfo struct {
	// Op names the operation, with its argument where it has one, e.g. "limit(3)".
	Op string
	// Barrier is true for stages that buffer every upstream element.
	Barrier bool
	// Mode is the evaluation mode the stage runs in.
	Mode Mode
}

func (i StageInfo) String() string {
	return i.Op + "[" + i.Mode.String() + "]"
}

// describe assigns modes: everything up to and including the last barrier is
// buffered, everything after it streams.
func describe(stages []StageInfo) []StageInfo {
	last := -1
	for i, info := range stages {
		if info.Barrier {
			last = i
		}
	}

	for i := range stages {
		if i <= last {
			stages[i].Mode = ModeBuffered
		} else {
			stages[i].Mode = ModeStreaming
		}
	}
	return stages
}

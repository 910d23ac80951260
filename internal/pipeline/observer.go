package pipeline

// Observer receives progress while a run is in flight. The CLI uses it to print
// each command before it runs; nothing in the pipeline depends on it.
type Observer interface {
	// StageStarted is called right before the stage process is spawned.
	StageStarted(stage Stage)

	// StageFinished is called after the stage outputs were checked.
	// err is nil when the stage succeeded.
	StageFinished(stage Stage, err error)

	// Warning reports a non-fatal problem, such as a missing options file.
	Warning(message string)
}

// nopObserver discards all events.
type nopObserver struct{}

func (nopObserver) StageStarted(Stage) {}

func (nopObserver) StageFinished(Stage, error) {}

func (nopObserver) Warning(string) {}

var _ Observer = nopObserver{}

package reporter

// RunLogger receives operator-facing notices about the run. Debug detail goes to the
// logging.Logger instead.
type RunLogger interface {
	RunStarted(name string)
	RunWarning(err error)
	RunFinished(summary Summary, err error)
}

type nullRunLogger struct{}

func (n nullRunLogger) RunStarted(string)          {}
func (n nullRunLogger) RunWarning(error)           {}
func (n nullRunLogger) RunFinished(Summary, error) {}

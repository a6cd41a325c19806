package agent

// Step is one entry of the reasoning trace.
type Step struct {
	Tool        string
	Input       string
	Log         string
	Observation string
}

// Result is the outcome of one reasoning session.
type Result struct {
	Input  string
	Output string
	Steps  []Step
}

// Stopped reports whether the session ran out of steps before a final answer.
func (r Result) Stopped() bool {
	return r.Output == StoppedOutput
}

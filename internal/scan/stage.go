package scan

// Stage is the progress of the simulated upload-then-analyze step.
type Stage int

const (
	StageIdle Stage = iota
	StageUploading
	StageAnalyzing
	StageComplete
)

// Busy reports whether the upload button must be disabled.
func (s Stage) Busy() bool {
	return s == StageUploading || s == StageAnalyzing
}

// Label is the text shown in the drop zone and on the button.
func (s Stage) Label() string {
	switch s {
	case StageUploading:
		return "Uploading..."
	case StageAnalyzing:
		return "Analyzing data..."
	case StageComplete:
		return "Data Processed"
	default:
		return "Upload Patient Data"
	}
}

// Next returns the stage that follows s. StageComplete is terminal.
func (s Stage) Next() Stage {
	if s >= StageComplete {
		return StageComplete
	}
	return s + 1
}

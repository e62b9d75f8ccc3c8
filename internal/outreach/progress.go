package outreach

// ProgressEvent represents a progress update during email generation.
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when generation progress occurs.
type ProgressCallback func(event ProgressEvent)

// Step identifiers emitted during generation.
const (
	StepValidate = "validate"
	StepCompose  = "compose"
	StepGenerate = "generate"
	StepParse    = "parse"
	StepQuality  = "quality"
	StepOutput   = "output"
)

// Categories group progress events for streaming consumers.
const (
	CategoryPipeline = "pipeline"
	CategoryResult   = "result"
)

// emitProgress calls the progress callback if configured.
func emitProgress(cb ProgressCallback, step, category, message string, content any) {
	if cb != nil {
		cb(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			Content:  content,
		})
	}
}

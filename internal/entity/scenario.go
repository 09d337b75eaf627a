package entity

// Scenario identifies one of the fixed document-generation workflows.
type Scenario string

const (
	ScenarioContract Scenario = "contract"
	ScenarioClaim    Scenario = "claim"
	ScenarioClause   Scenario = "clause"
)

// ScenarioRequest is a single document-generation request: a scenario tag
// plus the flat field-value payload as it arrived from the client.
type ScenarioRequest struct {
	Scenario Scenario
	// RawScenario keeps the original tag for echoing back when it is unknown.
	RawScenario string
	Fields      map[string]string
}

// ResultFormat selects the rendered document format for the contract scenario.
type ResultFormat string

const (
	FormatPDF      ResultFormat = "pdf"
	FormatDOCX     ResultFormat = "docx"
	FormatMarkdown ResultFormat = "markdown"
)

// GeneratedArtifact is what the scenario pipeline hands back to the caller.
// FileName is set only when a document was rendered (contract scenario).
type GeneratedArtifact struct {
	Scenario  string
	ReplyText string
	FileName  string
}

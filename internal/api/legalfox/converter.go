package legalfox

import (
	"github.com/legalfox/legalfox-backend/internal/entity"
	"github.com/legalfox/legalfox-backend/internal/scenario"
)

// GenerateResponse is the POST /legalfox response body.
type GenerateResponse struct {
	ReplyText string `json:"reply_text"`
	FileURL   string `json:"file_url,omitempty"`
	Scenario  string `json:"scenario"`
}

// toScenarioRequest converts the flat field payload into a typed request.
// The scenario tag may arrive under the English key or a Cyrillic spelling.
func toScenarioRequest(fields map[string]string) *entity.ScenarioRequest {
	tag := scenario.ScenarioTag(fields)
	return &entity.ScenarioRequest{
		Scenario:    entity.Scenario(tag),
		RawScenario: tag,
		Fields:      fields,
	}
}

func toGenerateResponse(artifact *entity.GeneratedArtifact, publicBaseURL string) *GenerateResponse {
	resp := &GenerateResponse{
		ReplyText: artifact.ReplyText,
		Scenario:  artifact.Scenario,
	}
	if artifact.FileName != "" {
		resp.FileURL = publicBaseURL + "/files/" + artifact.FileName
	}
	return resp
}

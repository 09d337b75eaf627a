package legalfox

import (
	"context"

	"github.com/legalfox/legalfox-backend/internal/entity"
)

// GeneratorUsecase runs the scenario-dispatch pipeline.
type GeneratorUsecase interface {
	Generate(ctx context.Context, req *entity.ScenarioRequest) (*entity.GeneratedArtifact, error)
}

// FileResolver maps generated file names to on-disk paths.
type FileResolver interface {
	Resolve(name string) (string, error)
}

// Package scenario maps an inbound scenario tag and field-value payload to a
// remote-model call and, for the contract scenario, a rendered document.
package scenario

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/legalfox/legalfox-backend/internal/entity"
	"github.com/legalfox/legalfox-backend/internal/pkg/formatter"
	pkgLogger "github.com/legalfox/legalfox-backend/internal/pkg/logger"
)

// Replies that short-circuit the pipeline without a remote call.
const (
	MsgUnknownScenario = "Я не понял, какой документ нужен. Укажите сценарий: contract, claim или clause."

	msgContractNeedData = "Чтобы составить договор, укажите хотя бы одно: тип договора, стороны или предмет."
	msgClaimNeedData    = "Чтобы составить претензию, опишите обстоятельства или требования."
	msgClauseNeedData   = "Пришлите текст пункта договора, который нужно проанализировать."
)

const contractFilePrefix = "contract"

type Usecase struct {
	llm       LLMConnector
	files     FileStore
	formatter *formatter.Factory
	logger    *zap.Logger
}

func NewUsecase(llm LLMConnector, files FileStore, factory *formatter.Factory, logger *zap.Logger) *Usecase {
	return &Usecase{
		llm:       llm,
		files:     files,
		formatter: factory,
		logger:    logger,
	}
}

// Generate dispatches the request by scenario tag. Short-circuit outcomes
// (unknown scenario, not enough data) come back as artifacts with guidance
// text and no error; a failed remote call is returned as an error wrapping
// entity.ErrCompletionUnavailable so the caller picks the fallback reply.
func (u *Usecase) Generate(ctx context.Context, req *entity.ScenarioRequest) (*entity.GeneratedArtifact, error) {
	switch req.Scenario {
	case entity.ScenarioContract:
		return u.generateContract(pkgLogger.WithAction(ctx, "generate_contract"), req)
	case entity.ScenarioClaim:
		return u.generateClaim(pkgLogger.WithAction(ctx, "generate_claim"), req)
	case entity.ScenarioClause:
		return u.generateClause(pkgLogger.WithAction(ctx, "analyze_clause"), req)
	default:
		ctxzap.Info(ctx, "unknown scenario", zap.String("scenario", req.RawScenario))
		return &entity.GeneratedArtifact{
			Scenario:  req.RawScenario,
			ReplyText: MsgUnknownScenario,
		}, nil
	}
}

func (u *Usecase) generateContract(ctx context.Context, req *entity.ScenarioRequest) (*entity.GeneratedArtifact, error) {
	if lookup(req.Fields, fieldContractType) == "" &&
		lookup(req.Fields, fieldParties) == "" &&
		lookup(req.Fields, fieldSubject) == "" {
		return &entity.GeneratedArtifact{
			Scenario:  string(entity.ScenarioContract),
			ReplyText: msgContractNeedData,
		}, nil
	}

	text, err := u.llm.Complete(ctx, contractSystemPrompt, buildContractMessage(req.Fields))
	if err != nil {
		return nil, fmt.Errorf("contract completion: %w", err)
	}

	artifact := &entity.GeneratedArtifact{
		Scenario:  string(entity.ScenarioContract),
		ReplyText: text,
	}

	fileName, err := u.renderDocument(ctx, req.Fields, text)
	if err != nil {
		// The generated text is still useful without the file.
		ctxzap.Warn(ctx, "document rendering failed", zap.Error(err))
		return artifact, nil
	}
	artifact.FileName = fileName

	return artifact, nil
}

func (u *Usecase) generateClaim(ctx context.Context, req *entity.ScenarioRequest) (*entity.GeneratedArtifact, error) {
	if lookup(req.Fields, fieldFacts) == "" && lookup(req.Fields, fieldDemands) == "" {
		return &entity.GeneratedArtifact{
			Scenario:  string(entity.ScenarioClaim),
			ReplyText: msgClaimNeedData,
		}, nil
	}

	text, err := u.llm.Complete(ctx, claimSystemPrompt, buildClaimMessage(req.Fields))
	if err != nil {
		return nil, fmt.Errorf("claim completion: %w", err)
	}

	return &entity.GeneratedArtifact{
		Scenario:  string(entity.ScenarioClaim),
		ReplyText: text,
	}, nil
}

func (u *Usecase) generateClause(ctx context.Context, req *entity.ScenarioRequest) (*entity.GeneratedArtifact, error) {
	if lookup(req.Fields, fieldClauseText) == "" {
		return &entity.GeneratedArtifact{
			Scenario:  string(entity.ScenarioClause),
			ReplyText: msgClauseNeedData,
		}, nil
	}

	text, err := u.llm.Complete(ctx, clauseSystemPrompt, buildClauseMessage(req.Fields))
	if err != nil {
		return nil, fmt.Errorf("clause completion: %w", err)
	}

	return &entity.GeneratedArtifact{
		Scenario:  string(entity.ScenarioClause),
		ReplyText: text,
	}, nil
}

// renderDocument renders the generated text in the requested format
// (PDF unless the payload asks otherwise) and stores it.
func (u *Usecase) renderDocument(ctx context.Context, fields map[string]string, text string) (string, error) {
	format := resolveFormat(fields)

	f, err := u.formatter.Create(format)
	if err != nil {
		return "", fmt.Errorf("create formatter: %w", err)
	}

	data, err := f.Format(text)
	if err != nil {
		return "", fmt.Errorf("format document: %w", err)
	}

	name, err := u.files.Save(contractFilePrefix, f.FileExtension(), data)
	if err != nil {
		return "", fmt.Errorf("save document: %w", err)
	}

	ctxzap.Info(ctx, "document rendered",
		zap.String("file", name),
		zap.String("format", string(format)),
	)

	return name, nil
}

func resolveFormat(fields map[string]string) entity.ResultFormat {
	switch lookup(fields, fieldFormat) {
	case "docx":
		return entity.FormatDOCX
	case "md", "markdown":
		return entity.FormatMarkdown
	default:
		return entity.FormatPDF
	}
}

package scenario

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/legalfox/legalfox-backend/internal/entity"
	"github.com/legalfox/legalfox-backend/internal/pkg/formatter"
)

type fakeLLM struct {
	calls    int
	lastSys  string
	lastUser string
	reply    string
	err      error
}

func (f *fakeLLM) Complete(_ context.Context, systemPrompt, userMessage string) (string, error) {
	f.calls++
	f.lastSys = systemPrompt
	f.lastUser = userMessage
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeStore struct {
	saved []byte
	name  string
	err   error
}

func (f *fakeStore) Save(prefix, ext string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = data
	f.name = prefix + "_generated" + ext
	return f.name, nil
}

func newTestUsecase(llm *fakeLLM, store *fakeStore) *Usecase {
	return NewUsecase(llm, store, formatter.NewFactory(), zap.NewNop())
}

func contractRequest(fields map[string]string) *entity.ScenarioRequest {
	return &entity.ScenarioRequest{
		Scenario:    entity.ScenarioContract,
		RawScenario: "contract",
		Fields:      fields,
	}
}

func TestGenerate_ContractSingleFieldReachesModel(t *testing.T) {
	llm := &fakeLLM{reply: "ДОГОВОР АРЕНДЫ\n\n1. Предмет договора."}
	store := &fakeStore{}
	uc := newTestUsecase(llm, store)

	artifact, err := uc.Generate(context.Background(), contractRequest(map[string]string{
		"Тип договора": "аренда",
	}))
	require.NoError(t, err)
	require.Equal(t, 1, llm.calls)
	require.Equal(t, "contract", artifact.Scenario)
	require.Contains(t, artifact.ReplyText, "ДОГОВОР АРЕНДЫ")
	require.Equal(t, store.name, artifact.FileName)
	require.NotEmpty(t, store.saved)

	require.Contains(t, llm.lastUser, "Тип договора: аренда")
	require.Contains(t, llm.lastUser, "Стороны: не указано")
}

func TestGenerate_ContractEmptyFieldsShortCircuits(t *testing.T) {
	llm := &fakeLLM{reply: "never"}
	uc := newTestUsecase(llm, &fakeStore{})

	artifact, err := uc.Generate(context.Background(), contractRequest(map[string]string{
		"Тип договора": "",
		"Стороны":      "  ",
		"Предмет":      "",
	}))
	require.NoError(t, err)
	require.Equal(t, 0, llm.calls, "short-circuit must not call the model")
	require.Equal(t, msgContractNeedData, artifact.ReplyText)
	require.Empty(t, artifact.FileName)
}

func TestGenerate_ContractUnderscoreAliasAccepted(t *testing.T) {
	llm := &fakeLLM{reply: "текст"}
	uc := newTestUsecase(llm, &fakeStore{})

	_, err := uc.Generate(context.Background(), contractRequest(map[string]string{
		"Тип_договора": "поставка",
	}))
	require.NoError(t, err)
	require.Equal(t, 1, llm.calls)
	require.Contains(t, llm.lastUser, "Тип договора: поставка")
}

func TestGenerate_AliasPrefersSpaceVariant(t *testing.T) {
	llm := &fakeLLM{reply: "текст"}
	uc := newTestUsecase(llm, &fakeStore{})

	_, err := uc.Generate(context.Background(), contractRequest(map[string]string{
		"Тип договора": "аренда",
		"Тип_договора": "поставка",
	}))
	require.NoError(t, err)
	require.Contains(t, llm.lastUser, "Тип договора: аренда")
	require.NotContains(t, llm.lastUser, "поставка")
}

func TestGenerate_UnknownScenarioEchoesTag(t *testing.T) {
	llm := &fakeLLM{reply: "never"}
	uc := newTestUsecase(llm, &fakeStore{})

	artifact, err := uc.Generate(context.Background(), &entity.ScenarioRequest{
		Scenario:    entity.Scenario("divorce"),
		RawScenario: "divorce",
		Fields:      map[string]string{},
	})
	require.NoError(t, err)
	require.Equal(t, 0, llm.calls)
	require.Equal(t, "divorce", artifact.Scenario)
	require.Equal(t, MsgUnknownScenario, artifact.ReplyText)
}

func TestGenerate_ClaimRequiresFactsOrDemands(t *testing.T) {
	llm := &fakeLLM{reply: "ПРЕТЕНЗИЯ"}
	uc := newTestUsecase(llm, &fakeStore{})

	artifact, err := uc.Generate(context.Background(), &entity.ScenarioRequest{
		Scenario: entity.ScenarioClaim,
		Fields:   map[string]string{},
	})
	require.NoError(t, err)
	require.Equal(t, msgClaimNeedData, artifact.ReplyText)
	require.Equal(t, 0, llm.calls)

	artifact, err = uc.Generate(context.Background(), &entity.ScenarioRequest{
		Scenario: entity.ScenarioClaim,
		Fields:   map[string]string{"Требования": "вернуть оплату"},
	})
	require.NoError(t, err)
	require.Equal(t, "ПРЕТЕНЗИЯ", artifact.ReplyText)
	require.Empty(t, artifact.FileName, "claim scenario renders no file")
	require.Equal(t, 1, llm.calls)
}

func TestGenerate_ClauseRequiresText(t *testing.T) {
	llm := &fakeLLM{reply: "Анализ пункта"}
	uc := newTestUsecase(llm, &fakeStore{})

	artifact, err := uc.Generate(context.Background(), &entity.ScenarioRequest{
		Scenario: entity.ScenarioClause,
		Fields:   map[string]string{"Контекст": "договор поставки"},
	})
	require.NoError(t, err)
	require.Equal(t, msgClauseNeedData, artifact.ReplyText)
	require.Equal(t, 0, llm.calls)

	artifact, err = uc.Generate(context.Background(), &entity.ScenarioRequest{
		Scenario: entity.ScenarioClause,
		Fields:   map[string]string{"Текст_пункта": "Поставщик вправе..."},
	})
	require.NoError(t, err)
	require.Equal(t, "Анализ пункта", artifact.ReplyText)
}

func TestGenerate_CompletionFailurePropagates(t *testing.T) {
	llm := &fakeLLM{err: entity.ErrCompletionUnavailable}
	uc := newTestUsecase(llm, &fakeStore{})

	_, err := uc.Generate(context.Background(), contractRequest(map[string]string{
		"Предмет": "поставка товара",
	}))
	require.ErrorIs(t, err, entity.ErrCompletionUnavailable)
}

func TestGenerate_RenderFailureStillReturnsText(t *testing.T) {
	llm := &fakeLLM{reply: "текст договора"}
	store := &fakeStore{err: errors.New("disk full")}
	uc := newTestUsecase(llm, store)

	artifact, err := uc.Generate(context.Background(), contractRequest(map[string]string{
		"Предмет": "поставка",
	}))
	require.NoError(t, err)
	require.Equal(t, "текст договора", artifact.ReplyText)
	require.Empty(t, artifact.FileName)
}

func TestGenerate_MarkdownFormatSelected(t *testing.T) {
	llm := &fakeLLM{reply: "текст"}
	store := &fakeStore{}
	uc := newTestUsecase(llm, store)

	artifact, err := uc.Generate(context.Background(), contractRequest(map[string]string{
		"Предмет": "поставка",
		"формат":  "md",
	}))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(artifact.FileName, ".md"))
}

func TestScenarioTag(t *testing.T) {
	require.Equal(t, "contract", ScenarioTag(map[string]string{"scenario": "contract"}))
	require.Equal(t, "claim", ScenarioTag(map[string]string{"сценарий": "claim"}))
	require.Equal(t, "clause", ScenarioTag(map[string]string{"Сценарий": "clause"}))
	require.Equal(t, "", ScenarioTag(map[string]string{"other": "x"}))
}

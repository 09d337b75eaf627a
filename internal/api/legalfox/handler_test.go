package legalfox

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/legalfox/legalfox-backend/internal/entity"
)

type fakeUsecase struct {
	artifact *entity.GeneratedArtifact
	err      error
	lastReq  *entity.ScenarioRequest
}

func (f *fakeUsecase) Generate(_ context.Context, req *entity.ScenarioRequest) (*entity.GeneratedArtifact, error) {
	f.lastReq = req
	return f.artifact, f.err
}

type fakeResolver struct {
	paths map[string]string
}

func (f *fakeResolver) Resolve(name string) (string, error) {
	if path, ok := f.paths[name]; ok {
		return path, nil
	}
	return "", entity.ErrFileNotFound
}

func newTestRouter(uc GeneratorUsecase, files FileResolver) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(uc, files, "http://example.com"))
	return r
}

func postLegalfox(t *testing.T, router http.Handler, body map[string]string) (*httptest.ResponseRecorder, GenerateResponse) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/legalfox", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp GenerateResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestGenerate_ContractWithFile(t *testing.T) {
	uc := &fakeUsecase{artifact: &entity.GeneratedArtifact{
		Scenario:  "contract",
		ReplyText: "текст договора",
		FileName:  "contract_abc.pdf",
	}}
	router := newTestRouter(uc, &fakeResolver{})

	rec, resp := postLegalfox(t, router, map[string]string{
		"scenario":     "contract",
		"Тип договора": "аренда",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "текст договора", resp.ReplyText)
	require.Equal(t, "http://example.com/files/contract_abc.pdf", resp.FileURL)
	require.Equal(t, "contract", resp.Scenario)

	require.Equal(t, entity.ScenarioContract, uc.lastReq.Scenario)
	require.Equal(t, "аренда", uc.lastReq.Fields["Тип договора"])
}

func TestGenerate_CyrillicScenarioKey(t *testing.T) {
	uc := &fakeUsecase{artifact: &entity.GeneratedArtifact{Scenario: "claim", ReplyText: "претензия"}}
	router := newTestRouter(uc, &fakeResolver{})

	rec, resp := postLegalfox(t, router, map[string]string{"сценарий": "claim", "Требования": "вернуть"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "claim", resp.Scenario)
	require.Empty(t, resp.FileURL)
	require.Equal(t, entity.ScenarioClaim, uc.lastReq.Scenario)
}

func TestGenerate_CompletionFailureReturnsFallbackReply(t *testing.T) {
	uc := &fakeUsecase{err: entity.ErrCompletionUnavailable}
	router := newTestRouter(uc, &fakeResolver{})

	rec, resp := postLegalfox(t, router, map[string]string{"scenario": "contract", "Предмет": "поставка"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, MsgAssistantUnavailable, resp.ReplyText)
	require.Equal(t, "contract", resp.Scenario)
}

func TestGenerate_InvalidBody(t *testing.T) {
	router := newTestRouter(&fakeUsecase{}, &fakeResolver{})

	req := httptest.NewRequest(http.MethodPost, "/legalfox", bytes.NewReader([]byte("not-json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetFile_NotFound(t *testing.T) {
	router := newTestRouter(&fakeUsecase{}, &fakeResolver{})

	req := httptest.NewRequest(http.MethodGet, "/files/contract_missing.pdf", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetFile_ServesRenderedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contract_abc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 content"), 0o644))

	router := newTestRouter(&fakeUsecase{}, &fakeResolver{paths: map[string]string{
		"contract_abc.pdf": path,
	}})

	req := httptest.NewRequest(http.MethodGet, "/files/contract_abc.pdf", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "%PDF-1.4 content", rec.Body.String())
}

package legalfox

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/legalfox/legalfox-backend/internal/entity"
	"github.com/legalfox/legalfox-backend/internal/pkg/response"
)

// MsgAssistantUnavailable is returned when the remote model cannot be reached.
const MsgAssistantUnavailable = "Не удалось связаться с ассистентом. Попробуйте ещё раз позже."

type Handler struct {
	uc            GeneratorUsecase
	files         FileResolver
	publicBaseURL string
}

func NewHandler(uc GeneratorUsecase, files FileResolver, publicBaseURL string) *Handler {
	return &Handler{
		uc:            uc,
		files:         files,
		publicBaseURL: publicBaseURL,
	}
}

// Generate handles POST /legalfox: a flat mapping of field names to values.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req := toScenarioRequest(fields)
	ctxzap.Info(ctx, "scenario request received",
		zap.String("scenario", req.RawScenario),
		zap.Int("field_count", len(fields)),
	)

	artifact, err := h.uc.Generate(ctx, req)
	if err != nil {
		// Every failure of the remote model maps to the same user-facing reply.
		ctxzap.Error(ctx, "scenario generation failed", zap.Error(err))
		response.Success(w, &GenerateResponse{
			ReplyText: MsgAssistantUnavailable,
			Scenario:  req.RawScenario,
		})
		return
	}

	response.Success(w, toGenerateResponse(artifact, h.publicBaseURL))
}

// GetFile handles GET /files/{filename}: serves a previously rendered document.
func (h *Handler) GetFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")

	path, err := h.files.Resolve(name)
	if err != nil {
		if errors.Is(err, entity.ErrFileNotFound) || errors.Is(err, entity.ErrInvalidFileName) {
			response.Error(w, http.StatusNotFound, "file not found")
			return
		}
		ctxzap.Error(r.Context(), "file lookup failed", zap.Error(err), zap.String("file", name))
		response.Error(w, http.StatusInternalServerError, "file lookup failed")
		return
	}

	http.ServeFile(w, r, path)
}

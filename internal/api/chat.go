package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/starford/portal/internal/chat"
	"github.com/starford/portal/internal/models"
)

var errNoChatClient = errors.New("api: no chat client configured")

func ollamaBase(cfg models.ChatConfig) string {
	if base := strings.TrimSpace(cfg.OllamaBaseURL); base != "" {
		return base
	}
	return models.DefaultOllamaBaseURL
}

// OllamaModels handles GET /ollama-models.
func (h *Handler) OllamaModels(w http.ResponseWriter, r *http.Request) {
	if h.Chat == nil {
		h.fail(w, r, "fetching Ollama models", errNoChatClient)
		return
	}
	cfg := h.Settings.ChatConfig(r.Context())
	list, err := h.Chat.Models(r.Context(), ollamaBase(cfg))
	if err != nil {
		h.fail(w, r, "fetching Ollama models", err)
		return
	}
	writeOK(w, envelope{"models": list})
}

// OllamaChat handles POST /ollama-chat. The model defaults to the configured
// one and the reply passes through the response filter.
func (h *Handler) OllamaChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !decodeJSON(w, r, maxBodyBytes, &req) {
		return
	}
	if h.Chat == nil {
		h.fail(w, r, "Ollama chat", errNoChatClient)
		return
	}

	cfg := h.Settings.ChatConfig(r.Context())
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = cfg.OllamaModel
	}
	messages := req.Messages
	if len(messages) == 0 && strings.TrimSpace(req.Message) != "" {
		messages = []chat.Message{{Role: "user", Content: req.Message}}
	}

	reply, err := h.Chat.Chat(r.Context(), ollamaBase(cfg), model, messages)
	if err != nil {
		h.fail(w, r, "Ollama chat", err)
		return
	}
	filter := h.Settings.FilterConfig(r.Context())
	writeOK(w, envelope{"response": filter.Apply(reply)})
}

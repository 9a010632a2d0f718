package api

import (
	"github.com/starford/portal/internal/chat"
	"github.com/starford/portal/internal/dashboard"
)

// LoginRequest is the body of POST /admin/login.
type LoginRequest struct {
	Password string `json:"password"`
}

// LinkRequest is the body of link create and update. CategoryID accepts a
// number, a numeric string or null.
type LinkRequest struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	CategoryID any    `json:"categoryId"`
}

func (req LinkRequest) input() dashboard.LinkInput {
	return dashboard.LinkInput{
		Name:       req.Name,
		URL:        req.URL,
		CategoryID: dashboard.CoerceCategoryID(req.CategoryID),
	}
}

// StatusRequest is the body of POST /status/{id}.
type StatusRequest struct {
	URL string `json:"url"`
}

// CategoryRequest is the body of category create and rename.
type CategoryRequest struct {
	Name string `json:"name"`
}

// PrivacyRequest is the body of PATCH /categories/{id}/privacy.
type PrivacyRequest struct {
	Private *bool `json:"private"`
}

// ReorderRequest is the body of POST /categories/reorder.
type ReorderRequest struct {
	CategoryOrder []dashboard.OrderAssignment `json:"categoryOrder"`
}

// ProjectRequest is the body of POST /projects/{name}.
type ProjectRequest struct {
	Content *string `json:"content"`
}

// ChatRequest is the body of POST /ollama-chat. Message is shorthand for a
// single user turn when Messages is empty.
type ChatRequest struct {
	Model    string         `json:"model"`
	Messages []chat.Message `json:"messages"`
	Message  string         `json:"message"`
}

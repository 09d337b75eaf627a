package scenario

import "context"

// LLMConnector is the remote-completion capability.
type LLMConnector interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// FileStore persists rendered documents and hands back their names.
type FileStore interface {
	Save(prefix, ext string, data []byte) (string, error)
}

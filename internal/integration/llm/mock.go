package llm

import (
	"context"

	"go.uber.org/zap"
)

// MockConnector returns a canned completion without calling any service.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (c *MockConnector) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	c.logger.Info("mock completion requested",
		zap.Int("system_len", len(systemPrompt)),
		zap.Int("user_len", len(userMessage)),
	)
	return "Черновик документа (демо-режим).\n\n1. Предмет.\n2. Права и обязанности сторон.\n3. Ответственность сторон.", nil
}

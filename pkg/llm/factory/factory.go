package factory

import (
	"fmt"

	"care-assistant-be/pkg/llm"
	"care-assistant-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL string, timeoutSecs int) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName, timeoutSecs), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}

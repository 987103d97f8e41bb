package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_DisabledByDefault(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 30000, cfg.Tasks[TaskDissect].TimeoutMs)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GOALPOST_LLM_ENABLED", "true")
	t.Setenv("GOALPOST_LLM_ENDPOINT", "http://model-host:11434")
	t.Setenv("GOALPOST_LLM_MODEL", "qwen2.5")
	t.Setenv("GOALPOST_LLM_TIMEOUT_MS", "9000")
	t.Setenv("GOALPOST_LLM_DISSECT_TIMEOUT_MS", "45000")

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "http://model-host:11434", cfg.Endpoint)
	assert.Equal(t, "qwen2.5", cfg.Model)
	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 45000, cfg.TaskTimeout(TaskDissect))
}

func TestLoadConfig_InvalidTaskTimeoutOverrideIgnored(t *testing.T) {
	t.Setenv("GOALPOST_LLM_DISSECT_TIMEOUT_MS", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, 30000, cfg.TaskTimeout(TaskDissect))
}

func TestTaskTimeout_FallsBackToGlobal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tasks = map[TaskType]TaskConfig{}
	assert.Equal(t, cfg.TimeoutMs, cfg.TaskTimeout(TaskDissect))
}

package msg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMessage_Bundled(t *testing.T) {
	assert.Equal(t, "Todo could not be found", GetMessage("todo.error.not-found"))
	assert.Equal(t, "Todo 2: Title cannot be empty", GetMessage("todo.error.batch-item", 2, GetMessage("todo.error.empty-title")))
}

func TestGetMessage_Missing(t *testing.T) {
	assert.Equal(t, "Message not found: todo.unknown", GetMessage("todo.unknown"))
}

func TestGetMessage_Arguments(t *testing.T) {
	assert.Equal(t, "Session lookup failed: timeout", GetMessage("session.error.lookup-failed", errors.New("timeout")))
	assert.Equal(t, "Session lookup failed: {\"a\":1}", GetMessage("session.error.lookup-failed", map[string]int{"a": 1}))
	assert.Equal(t, "Session lookup failed: ", GetMessage("session.error.lookup-failed", nil))
}

func TestInit_OverridesMessages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yml")
	require.NoError(t, os.WriteFile(path, []byte("custom:\n  greeting: \"Hello {0}\"\n"), 0o600))

	Init(path)

	assert.Equal(t, "Hello todo", GetMessage("custom.greeting", "todo"))
	assert.Equal(t, "Forbidden", GetMessage("todo.error.forbidden"))
}

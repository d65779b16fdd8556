package resolver

import (
	"math"
	"testing"
	"todo-api/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoResponseResolver_TotalIsClampedToInt(t *testing.T) {
	for name, tc := range map[string]struct {
		total    int64
		expected int32
	}{
		"zero":        {total: 0, expected: 0},
		"regular":     {total: 42, expected: 42},
		"max":         {total: math.MaxInt32, expected: math.MaxInt32},
		"above int32": {total: math.MaxInt32 + 1, expected: math.MaxInt32},
		"far above":   {total: math.MaxInt64, expected: math.MaxInt32},
	} {
		t.Run(name, func(t *testing.T) {
			total := tc.total
			resolver := &TodoResponseResolver{response: model.TodoResponse{Total: &total}}

			got := resolver.Total()

			require.NotNil(t, got)
			assert.Equal(t, tc.expected, *got)
		})
	}

	assert.Nil(t, (&TodoResponseResolver{}).Total())
}

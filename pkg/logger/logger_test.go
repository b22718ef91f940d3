package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ContextHandler(t *testing.T) {
	testCases := []struct {
		name      string
		ctx       context.Context
		expected  string
		hasCmdKey bool
	}{
		{name: "With command ID", ctx: WithCommandID(context.Background(), "cmd-1"), expected: "cmd-1", hasCmdKey: true},
		{name: "Without command ID", ctx: context.Background()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			var buf bytes.Buffer
			log := slog.New(NewContextHandler(slog.NewJSONHandler(&buf, nil))).With("component", "test")

			// when
			log.InfoContext(tc.ctx, "hello")

			// then
			var record map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
			assert.Equal(t, "test", record["component"])
			id, ok := record["command_id"]
			assert.Equal(t, tc.hasCmdKey, ok)
			if tc.hasCmdKey {
				assert.Equal(t, tc.expected, id)
			}
		})
	}
}

func Test_CommandID(t *testing.T) {
	assert.Equal(t, "", CommandID(context.Background()))
	assert.Equal(t, "abc", CommandID(WithCommandID(context.Background(), "abc")))
}

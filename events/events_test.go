package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage(t *testing.T) {
	at := time.Date(2025, 7, 4, 10, 45, 29, 0, time.UTC)
	ev := MergeCompleted{
		RequestID: "req-1",
		UserID:    "hoanvlh",
		Output:    "estec/out/ES_20250704_104529.xlsx",
		Inputs:    []string{"in/a.xlsx", "in/b.xlsx"},
		Rows:      12,
		Overwork:  2,
		At:        at,
	}

	msg, err := Message(ev)
	require.NoError(t, err)
	assert.Equal(t, []byte("req-1"), msg.Key)
	assert.Equal(t, at, msg.Time)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "estec/out/ES_20250704_104529.xlsx", decoded["output"])
	assert.EqualValues(t, 12, decoded["rows"])
	assert.NotContains(t, decoded, "summary_file")
}

func TestNop(t *testing.T) {
	var n Nop
	require.NoError(t, n.Publish(context.Background(), MergeCompleted{}))
	require.NoError(t, n.Close())
}

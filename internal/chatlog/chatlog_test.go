package chatlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(role, id, content string) Entry {
	return Entry{
		Timestamp: time.Date(2025, 7, 3, 10, 30, 0, 0, time.UTC),
		Role:      role,
		MessageID: id,
		Content:   content,
	}
}

func TestAppendAndRead(t *testing.T) {
	dir := t.TempDir()

	err := Append(dir, []Entry{
		entry("user", "msg_1", "how much did I spend?"),
		entry("assistant", "msg_2", "You spent 50.00 this month."),
	})
	require.NoError(t, err)

	got, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "user", got[0].Role)
	assert.Equal(t, "msg_2", got[1].MessageID)
	assert.Equal(t, "You spent 50.00 this month.", got[1].Content)
}

func TestAppendTwiceKeepsOneHeader(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Append(dir, []Entry{entry("user", "msg_1", "hi")}))
	require.NoError(t, Append(dir, []Entry{entry("assistant", "msg_2", "hello")}))

	got, err := Read(dir)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	data, err := os.ReadFile(filepath.Join(dir, "logs", "chat-log.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), Header)
}

func TestReadMissingFile(t *testing.T) {
	got, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestContentWithCommasAndQuotes(t *testing.T) {
	dir := t.TempDir()

	raw := `spent 1.00 on "chai", 2.00 on food`
	require.NoError(t, Append(dir, []Entry{entry("user", "msg_1", raw)}))

	got, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, raw, got[0].Content)
}

package assist

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook-dev/finbook/internal/chatlog"
	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/store"
	"github.com/finbook-dev/finbook/internal/summary"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// recordingAssistant captures the context it was handed and returns a
// canned reply.
type recordingAssistant struct {
	gotOverview summary.Overview
	gotMessage  string
	reply       string
	err         error
}

func (a *recordingAssistant) Reply(_ context.Context, ov summary.Overview, message string) (string, error) {
	a.gotOverview = ov
	a.gotMessage = message
	if a.err != nil {
		return "", a.err
	}
	return a.reply, nil
}

func newTestService(t *testing.T, a Assistant) (*Service, *store.Store) {
	t.Helper()
	s := store.New()
	return NewService(s, summary.NewService(s), a), s
}

func TestSendPersistsBothMessages(t *testing.T) {
	asst := &recordingAssistant{reply: "You are doing fine."}
	svc, s := newTestService(t, asst)

	user, reply, err := svc.Send(context.Background(), "how am I doing?")
	require.NoError(t, err)
	assert.True(t, user.IsUser)
	assert.False(t, reply.IsUser)
	assert.Equal(t, "how am I doing?", user.Content)
	assert.Equal(t, "You are doing fine.", reply.Content, "assistant text stored verbatim")

	msgs, err := s.Messages()
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, user.ID, msgs[0].ID)
	assert.Equal(t, reply.ID, msgs[1].ID)
}

func TestSendHandsAssistantTheOverview(t *testing.T) {
	asst := &recordingAssistant{reply: "ok"}
	svc, s := newTestService(t, asst)
	accts, err := s.Accounts()
	require.NoError(t, err)
	main := accts[0]

	_, err = s.CreateTransaction(store.TransactionParams{
		AccountID: main.ID, Type: model.TransactionExpense, Amount: dec("50.00"), Category: model.CategoryFood,
	})
	require.NoError(t, err)

	_, _, err = svc.Send(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, "hello", asst.gotMessage)
	assert.Equal(t, "11150.00", asst.gotOverview.TotalBalance.StringFixed(2))
	assert.Equal(t, "50.00", asst.gotOverview.MonthlySpent.StringFixed(2))
}

func TestSendAssistantFailure(t *testing.T) {
	asst := &recordingAssistant{err: errors.New("model unavailable")}
	svc, s := newTestService(t, asst)

	_, _, err := svc.Send(context.Background(), "hi")
	require.Error(t, err)

	// The user's message stays; no assistant message is persisted.
	msgs, err := s.Messages()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].IsUser)
}

func TestSendEmptyMessage(t *testing.T) {
	svc, _ := newTestService(t, &recordingAssistant{reply: "ok"})

	_, _, err := svc.Send(context.Background(), "")
	var verr store.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestHistoryAndClear(t *testing.T) {
	svc, _ := newTestService(t, &recordingAssistant{reply: "ok"})

	_, _, err := svc.Send(context.Background(), "one")
	require.NoError(t, err)
	_, _, err = svc.Send(context.Background(), "two")
	require.NoError(t, err)

	history, err := svc.History()
	require.NoError(t, err)
	assert.Len(t, history, 4)

	require.NoError(t, svc.Clear())
	history, err = svc.History()
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestTranscriptLogging(t *testing.T) {
	svc, _ := newTestService(t, &recordingAssistant{reply: "logged reply"})
	dir := t.TempDir()
	svc.LogTo(dir)

	_, _, err := svc.Send(context.Background(), "log me")
	require.NoError(t, err)

	entries, err := chatlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "user", entries[0].Role)
	assert.Equal(t, "log me", entries[0].Content)
	assert.Equal(t, "assistant", entries[1].Role)
	assert.Equal(t, "logged reply", entries[1].Content)
}

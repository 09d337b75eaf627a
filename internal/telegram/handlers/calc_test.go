package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/legalfox/legalfox-backend/internal/entity"
	"github.com/legalfox/legalfox-backend/internal/telegram/render"
	"github.com/legalfox/legalfox-backend/internal/telegram/state"
)

type sentMessage struct {
	chatID int64
	text   string
}

type fakeSender struct {
	messages []sentMessage
}

func (s *fakeSender) Send(chatID int64, text string, _ interface{}) error {
	s.messages = append(s.messages, sentMessage{chatID: chatID, text: text})
	return nil
}

func (s *fakeSender) last() sentMessage {
	return s.messages[len(s.messages)-1]
}

type fakeAdvisor struct {
	tip   string
	err   error
	calls int
}

func (a *fakeAdvisor) Complete(_ context.Context, _, _ string) (string, error) {
	a.calls++
	return a.tip, a.err
}

func newTestHandler(t *testing.T, advisor Advisor) (*CalcHandler, *fakeSender, *state.Manager) {
	t.Helper()
	sender := &fakeSender{}
	states := state.NewManager(state.NewCacheStorage(time.Minute))
	return NewCalcHandler(states, sender, advisor, zap.NewNop()), sender, states
}

func TestConcreteFlowEndToEnd(t *testing.T) {
	advisor := &fakeAdvisor{tip: "Проливайте бетон водой первые дни."}
	h, sender, states := newTestHandler(t, advisor)
	ctx := context.Background()

	require.NoError(t, h.StartFlow(10, 1, "concrete"))
	require.Contains(t, sender.last().text, "длину")

	require.NoError(t, h.HandleText(ctx, 10, 1, "5"))
	require.Contains(t, sender.last().text, "ширину")

	require.NoError(t, h.HandleText(ctx, 10, 1, "3"))
	require.Contains(t, sender.last().text, "высоту")

	require.NoError(t, h.HandleText(ctx, 10, 1, "0.15"))

	require.Len(t, sender.messages, 5)
	summary := sender.messages[3].text
	require.Contains(t, summary, "2.25")
	require.Contains(t, summary, "2.48")

	require.Equal(t, render.AdvicePrefix+"Проливайте бетон водой первые дни.", sender.messages[4].text)
	require.Equal(t, 1, advisor.calls)

	_, ok := states.Get(1)
	require.False(t, ok)

	err := h.HandleText(ctx, 10, 1, "7")
	require.ErrorIs(t, err, entity.ErrNoActiveFlow)
}

func TestInvalidInputRepeatsStep(t *testing.T) {
	h, sender, states := newTestHandler(t, nil)
	ctx := context.Background()

	require.NoError(t, h.StartFlow(10, 1, "screed"))
	require.NoError(t, h.HandleText(ctx, 10, 1, "abc"))

	require.Contains(t, sender.last().text, render.ErrNotANumber)
	require.Contains(t, sender.last().text, "площадь")

	sess, ok := states.Get(1)
	require.True(t, ok)
	require.Equal(t, 0, sess.Step)
	require.Empty(t, sess.Values)
}

func TestCommaDecimalAccepted(t *testing.T) {
	h, _, states := newTestHandler(t, nil)

	require.NoError(t, h.StartFlow(10, 1, "plaster"))
	require.NoError(t, h.HandleText(context.Background(), 10, 1, "12,5"))

	sess, ok := states.Get(1)
	require.True(t, ok)
	require.Equal(t, 1, sess.Step)
	require.InDelta(t, 12.5, sess.Values["area"], 1e-9)
}

func TestStartFlowReplacesActiveDialogue(t *testing.T) {
	h, sender, states := newTestHandler(t, nil)
	ctx := context.Background()

	require.NoError(t, h.StartFlow(10, 1, "concrete"))
	require.NoError(t, h.HandleText(ctx, 10, 1, "5"))

	require.NoError(t, h.StartFlow(10, 1, "tile"))
	require.Contains(t, sender.last().text, "площадь укладки")

	sess, ok := states.Get(1)
	require.True(t, ok)
	require.Equal(t, "tile", sess.Flow)
	require.Equal(t, 0, sess.Step)
	require.Empty(t, sess.Values)
}

func TestTileFlowCountsPieces(t *testing.T) {
	h, sender, _ := newTestHandler(t, nil)
	ctx := context.Background()

	require.NoError(t, h.StartFlow(10, 1, "tile"))
	require.NoError(t, h.HandleText(ctx, 10, 1, "10"))
	require.NoError(t, h.HandleText(ctx, 10, 1, "30"))
	require.NoError(t, h.HandleText(ctx, 10, 1, "30"))

	summary := sender.messages[len(sender.messages)-2].text
	require.Contains(t, summary, "111 шт")
	require.Contains(t, summary, "122 шт")
}

func TestNilAdvisorFallsBackToStaticTip(t *testing.T) {
	h, sender, _ := newTestHandler(t, nil)
	ctx := context.Background()

	require.NoError(t, h.StartFlow(10, 1, "screed"))
	require.NoError(t, h.HandleText(ctx, 10, 1, "10"))
	require.NoError(t, h.HandleText(ctx, 10, 1, "5"))

	require.Equal(t, render.AdviceFallback, sender.last().text)
}

func TestAdvisorFailureFallsBackToStaticTip(t *testing.T) {
	advisor := &fakeAdvisor{err: errors.New("upstream down")}
	h, sender, _ := newTestHandler(t, advisor)
	ctx := context.Background()

	require.NoError(t, h.StartFlow(10, 1, "screed"))
	require.NoError(t, h.HandleText(ctx, 10, 1, "10"))
	require.NoError(t, h.HandleText(ctx, 10, 1, "5"))

	require.Equal(t, render.AdviceFallback, sender.last().text)
	require.Equal(t, 1, advisor.calls)
}

func TestCancel(t *testing.T) {
	h, _, _ := newTestHandler(t, nil)

	require.False(t, h.Cancel(1))

	require.NoError(t, h.StartFlow(10, 1, "concrete"))
	require.True(t, h.Cancel(1))
	require.False(t, h.Cancel(1))
}

func TestUnknownFlow(t *testing.T) {
	h, _, _ := newTestHandler(t, nil)

	err := h.StartFlow(10, 1, "wallpaper")
	require.ErrorIs(t, err, entity.ErrUnknownFlow)
}

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "2.5", want: 2.5},
		{in: "2,5", want: 2.5},
		{in: " 10 ", want: 10},
		{in: "0", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := parseDecimal(tc.in)
		if tc.wantErr {
			require.ErrorIs(t, err, entity.ErrInvalidNumber, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		require.InDelta(t, tc.want, got, 1e-9, tc.in)
	}
}

package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptstudio/internal/domain"
)

type fakeTurner struct {
	mu      sync.Mutex
	calls   []string
	err     error
	block   chan struct{}
	replyFn func(text string) string
}

func (f *fakeTurner) SendTurn(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if f.err != nil {
		return "", f.err
	}
	if f.replyFn != nil {
		return f.replyFn(text), nil
	}
	return "echo: " + text, nil
}

func TestTranscriptStartsWithGreeting(t *testing.T) {
	f := NewFlow(&fakeTurner{}, "en")
	msgs := f.Transcript()
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.RoleModel, msgs[0].Role)
	assert.Equal(t, Greeting("en"), msgs[0].Text)
}

func TestGreetingLocaleFallback(t *testing.T) {
	assert.Equal(t, Greeting("en"), Greeting("fr"))
	assert.NotEqual(t, Greeting("en"), Greeting("id"))
}

func TestSequentialTurnsKeepOrder(t *testing.T) {
	const turns = 4
	turner := &fakeTurner{}
	f := NewFlow(turner, "en")

	for i := 0; i < turns; i++ {
		text := fmt.Sprintf("question %d", i)
		msg, err := f.Send(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, "echo: "+text, msg.Text)
	}

	msgs := f.Transcript()
	require.Len(t, msgs, 2*turns+1, "greeting + user/model pair per turn")
	for i := 0; i < turns; i++ {
		user := msgs[1+2*i]
		model := msgs[2+2*i]
		assert.Equal(t, domain.RoleUser, user.Role)
		assert.Equal(t, fmt.Sprintf("question %d", i), user.Text)
		assert.Equal(t, domain.RoleModel, model.Role)
		assert.Equal(t, "echo: "+user.Text, model.Text)
	}
}

func TestFailedTurnAppendsFallback(t *testing.T) {
	f := NewFlow(&fakeTurner{err: errors.New("boom")}, "en")

	msg, err := f.Send(context.Background(), "hello")
	require.NoError(t, err, "failures surface inside the transcript")
	assert.Equal(t, FallbackReply, msg.Text)

	msgs := f.Transcript()
	require.Len(t, msgs, 3)
	assert.Equal(t, FallbackReply, msgs[2].Text)
}

func TestConcurrentTurnRejected(t *testing.T) {
	turner := &fakeTurner{block: make(chan struct{})}
	f := NewFlow(turner, "en")

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = f.Send(context.Background(), "slow question")
	}()

	// Wait for the first turn to reach the gateway.
	for {
		turner.mu.Lock()
		started := len(turner.calls) == 1
		turner.mu.Unlock()
		if started {
			break
		}
	}

	_, err := f.Send(context.Background(), "impatient question")
	assert.ErrorIs(t, err, domain.ErrTurnInFlight)

	close(turner.block)
	<-done
	require.Len(t, f.Transcript(), 3, "the rejected turn must not touch the transcript")
}

package tts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectAudio_StalledStreamHonorsDeadline(t *testing.T) {
	ch := make(chan map[string]interface{}) // never delivers, never closes

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := collectAudio(ctx, ch)
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(time.Second):
		t.Fatal("receive did not give up after the deadline passed")
	}
}

func TestCollectAudio_ConcatenatesAudioChunks(t *testing.T) {
	ch := make(chan map[string]interface{}, 3)
	ch <- map[string]interface{}{"type": "audio", "data": []byte{1, 2}}
	ch <- map[string]interface{}{"type": "metadata"}
	ch <- map[string]interface{}{"type": "audio", "data": []byte{3}}
	close(ch)

	got, err := collectAudio(context.Background(), ch)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
}

func TestCollectAudio_CanceledContext(t *testing.T) {
	ch := make(chan map[string]interface{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := collectAudio(ctx, ch)
	assert.ErrorIs(t, err, context.Canceled)
}

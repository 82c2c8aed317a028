package worker

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_RunsTasks(t *testing.T) {
	p, err := New(4, slog.Default())
	require.NoError(t, err)
	defer p.Release(time.Second)

	var n atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		for {
			err := p.Submit(func() {
				defer wg.Done()
				n.Add(1)
			})
			if err == nil {
				break
			}
			require.ErrorIs(t, err, ants.ErrPoolOverload)
			time.Sleep(time.Millisecond)
		}
	}
	wg.Wait()
	assert.Equal(t, int32(10), n.Load())
}

func TestPool_RejectsWhenSaturated(t *testing.T) {
	p, err := New(1, slog.Default())
	require.NoError(t, err)
	defer p.Release(time.Second)

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, p.Submit(func() {
		close(started)
		<-release
	}))
	<-started

	assert.ErrorIs(t, p.Submit(func() {}), ants.ErrPoolOverload)
	close(release)
}

func TestPool_RecoversPanics(t *testing.T) {
	p, err := New(1, slog.Default())
	require.NoError(t, err)
	defer p.Release(time.Second)

	done := make(chan struct{})
	require.NoError(t, p.Submit(func() { panic("boom") }))
	require.Eventually(t, func() bool {
		return p.Submit(func() { close(done) }) == nil
	}, time.Second, 5*time.Millisecond)
	<-done
}

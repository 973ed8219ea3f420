package infra

import (
	"context"
	"sync"
	"testing"
	"time"

	"stronghold-supply/supply/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testSignal interface {
	domain.Signal
	IsSet() bool
}

func signalImpls() map[string]func() testSignal {
	return map[string]func() testSignal{
		"cond": func() testSignal { return NewSignal("test") },
		"chan": func() testSignal { return NewChanSignal() },
	}
}

func waitAsync(ctx context.Context, s domain.Signal) <-chan error {
	done := make(chan error, 1)
	go func() { done <- s.Wait(ctx) }()
	return done
}

func TestSignal_SetBeforeWaitIsNotLost(t *testing.T) {
	for name, newSig := range signalImpls() {
		t.Run(name, func(t *testing.T) {
			s := newSig()
			s.Set()
			require.True(t, s.IsSet())

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			require.NoError(t, s.Wait(ctx))
			assert.False(t, s.IsSet(), "waiter must consume the flag")
		})
	}
}

func TestSignal_WaitBeforeSet(t *testing.T) {
	for name, newSig := range signalImpls() {
		t.Run(name, func(t *testing.T) {
			s := newSig()
			done := waitAsync(context.Background(), s)

			select {
			case err := <-done:
				t.Fatalf("Wait returned before Set: %v", err)
			case <-time.After(20 * time.Millisecond):
			}

			s.Set()
			select {
			case err := <-done:
				require.NoError(t, err)
			case <-time.After(time.Second):
				t.Fatalf("Wait did not return after Set")
			}
			assert.False(t, s.IsSet())
		})
	}
}

func TestSignal_ConcurrentSetsCollapseIntoOne(t *testing.T) {
	for name, newSig := range signalImpls() {
		t.Run(name, func(t *testing.T) {
			s := newSig()

			var wg sync.WaitGroup
			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					s.Set()
				}()
			}
			wg.Wait()

			require.NoError(t, s.Wait(context.Background()))

			// binário: os 16 Sets valem um só
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()
			assert.ErrorIs(t, s.Wait(ctx), context.DeadlineExceeded)
		})
	}
}

func TestSignal_CancelUnblocksWaiter(t *testing.T) {
	for name, newSig := range signalImpls() {
		t.Run(name, func(t *testing.T) {
			s := newSig()
			ctx, cancel := context.WithCancel(context.Background())
			done := waitAsync(ctx, s)

			time.Sleep(10 * time.Millisecond)
			cancel()

			select {
			case err := <-done:
				assert.ErrorIs(t, err, context.Canceled)
			case <-time.After(time.Second):
				t.Fatalf("Wait ignored cancellation")
			}

			// um Set posterior continua disponível para o próximo Wait
			s.Set()
			assert.True(t, s.IsSet())
		})
	}
}

func TestSignal_PendingSetWinsOverCanceledContext(t *testing.T) {
	for name, newSig := range signalImpls() {
		t.Run(name, func(t *testing.T) {
			s := newSig()
			s.Set()
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			assert.NoError(t, s.Wait(ctx))
		})
	}
}

func TestSignal_PingPong(t *testing.T) {
	for name, newSig := range signalImpls() {
		t.Run(name, func(t *testing.T) {
			ping, pong := newSig(), newSig()
			const n = 500

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			errs := make(chan error, 1)
			go func() {
				for i := 0; i < n; i++ {
					if err := ping.Wait(ctx); err != nil {
						errs <- err
						return
					}
					pong.Set()
				}
				errs <- nil
			}()

			for i := 0; i < n; i++ {
				ping.Set()
				require.NoError(t, pong.Wait(ctx), "round %d", i)
			}
			require.NoError(t, <-errs)
		})
	}
}

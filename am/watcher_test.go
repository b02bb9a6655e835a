package am

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputWatcher(t *testing.T) {
	dir := t.TempDir()
	schema := filepath.Join(dir, "schema.json")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(schema, []byte("{}"), 0644))

	iw, err := NewInputWatcher(schema)
	require.NoError(t, err)
	iw.SetDebounce(20 * time.Millisecond)

	changes := make(chan []string, 4)
	iw.OnChange(func(changed []string) error {
		changes <- changed
		return nil
	})
	iw.Start()
	t.Cleanup(func() { iw.Stop() })

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0644))
	require.NoError(t, os.WriteFile(schema, []byte(`{"interfaces": []}`), 0644))

	select {
	case changed := <-changes:
		assert.Equal(t, []string{schema}, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestNewInputWatcher_Errors(t *testing.T) {
	_, err := NewInputWatcher()
	assert.Error(t, err)

	_, err = NewInputWatcher(filepath.Join(t.TempDir(), "missing-dir", "schema.json"))
	assert.Error(t, err)
}

func TestInputWatcher_CallbacksDoNotOverlap(t *testing.T) {
	iw := &InputWatcher{}

	var running, maxRunning, calls atomic.Int32
	iw.OnChange(func(changed []string) error {
		n := running.Add(1)
		defer running.Add(-1)
		for {
			m := maxRunning.Load()
			if n <= m || maxRunning.CompareAndSwap(m, n) {
				break
			}
		}
		calls.Add(1)
		time.Sleep(10 * time.Millisecond)
		return nil
	})

	// Debounce timers of separate bursts fire on their own goroutines
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			iw.notify([]string{"schema.json"})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(8), calls.Load())
	assert.Equal(t, int32(1), maxRunning.Load())
}

package audit

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileSinkAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hash_log.jsonl")
	sink := NewFileSink(path)

	require.NoError(t, sink.Append(context.Background(), []byte(`{"a":1}`)))
	require.NoError(t, sink.Append(context.Background(), []byte(`{"b":2}`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "{\"a\":1}\n{\"b\":2}\n", string(data))
}

func TestFileSinkConcurrentAppendsDoNotInterleave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decision_log.jsonl")
	sink := NewFileSink(path)

	const writers = 8
	const perWriter = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				line := fmt.Sprintf(`{"writer":%d,"seq":%d}`, w, i)
				require.NoError(t, sink.Append(context.Background(), []byte(line)))
			}
		}(w)
	}
	wg.Wait()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var count int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var record map[string]int
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &record), "interleaved line: %q", scanner.Text())
		count++
	}
	require.NoError(t, scanner.Err())
	require.Equal(t, writers*perWriter, count)
}

func TestFileSinkUnwritablePath(t *testing.T) {
	sink := NewFileSink(filepath.Join(t.TempDir(), "missing", "nested", "log.jsonl"))
	require.Error(t, sink.Append(context.Background(), []byte(`{}`)))
}

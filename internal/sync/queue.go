// Package sync implements asynchronous background replay and offline queuing
// for library writes that failed against the network.
package sync

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/trakr-cli/trakr/filesystem"
	"github.com/trakr-cli/trakr/trakt"
	"github.com/trakr-cli/trakr/where"
)

// PendingWrite encapsulates a single library write for deferred replay.
type PendingWrite struct {
	Timestamp int64           `json:"timestamp"`
	Label     string          `json:"label"`
	Path      string          `json:"path"`
	Payload   json.RawMessage `json:"payload"`
}

// QueueFailure persists a failed write to a local JSON-log for deferred replay.
// Label is only for display, the path and payload are what get replayed.
func QueueFailure(label, path string, payload json.RawMessage) error {
	f, err := filesystem.API().OpenFile(where.Queue(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	write := PendingWrite{
		Timestamp: time.Now().Unix(),
		Label:     label,
		Path:      path,
		Payload:   payload,
	}

	// Stream JSON directly to the log tail.
	encoder := json.NewEncoder(f)
	return encoder.Encode(write)
}

// Pending returns every queued write without draining the queue.
func Pending() ([]PendingWrite, error) {
	content, err := afero.ReadFile(filesystem.API(), where.Queue())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	return decodeWrites(content), nil
}

func decodeWrites(content []byte) []PendingWrite {
	var writes []PendingWrite
	decoder := json.NewDecoder(bytes.NewReader(content))
	for decoder.More() {
		var w PendingWrite
		if err := decoder.Decode(&w); err == nil {
			writes = append(writes, w)
		}
	}
	return writes
}

// ReconcileFailures initializes an asynchronous background process to replay
// previously failed writes. The queue is cleared only when every write lands,
// so a partial run retries the batch next start.
func ReconcileFailures() {
	go func() {
		path := where.Queue()
		info, err := filesystem.API().Stat(path)
		if err != nil || info.Size() == 0 {
			return
		}

		content, err := afero.ReadFile(filesystem.API(), path)
		if err != nil {
			return
		}

		writes := decodeWrites(content)
		if len(writes) == 0 {
			return
		}

		successCount := 0

		for i, w := range writes {
			// Incremental delay with randomized jitter to manage request throttling.
			backoff := time.Duration((1<<i)*100)*time.Millisecond + time.Duration(rand.Intn(100))*time.Millisecond
			time.Sleep(backoff)

			if err := trakt.Replay(w.Path, w.Payload); err == nil {
				successCount++
			}
		}

		if successCount == len(writes) {
			_ = filesystem.API().Remove(path)
		}
	}()
}

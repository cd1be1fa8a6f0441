package models

import (
	"sync"
	"testing"
)

func TestBatchJob_ConcurrentWritesAndSnapshots(t *testing.T) {
	const total = 50
	job := &BatchJob{
		ID:      "batch-test",
		Status:  "processing",
		Total:   total,
		Results: make([]*ProductResponse, total),
	}

	var wg sync.WaitGroup
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			job.SetResult(idx, &ProductResponse{Success: true, ItemID: "id"})
		}(i)
	}

	// Read snapshots while workers write; the race detector flags any
	// unsynchronized access here.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			snap := job.Snapshot()
			if snap.Completed < 0 || snap.Completed > total {
				t.Errorf("completed = %d out of range", snap.Completed)
				return
			}
		}
	}()

	wg.Wait()
	<-done
	job.Finish("completed")

	snap := job.Snapshot()
	if snap.Completed != total {
		t.Errorf("completed = %d, want %d", snap.Completed, total)
	}
	if snap.Status != "completed" {
		t.Errorf("status = %q", snap.Status)
	}
	for i, r := range snap.Results {
		if r == nil {
			t.Fatalf("results[%d] is nil", i)
		}
	}
}

func TestBatchJob_SnapshotIsolatesResults(t *testing.T) {
	job := &BatchJob{ID: "batch-iso", Status: "processing", Total: 1, Results: make([]*ProductResponse, 1)}
	snap := job.Snapshot()

	job.SetResult(0, &ProductResponse{Success: true})
	if snap.Results[0] != nil {
		t.Error("a snapshot taken before the write must not see it")
	}
}

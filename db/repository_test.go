package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func sampleRun(id string, degree, size int, created time.Time) RenderRun {
	return RenderRun{
		RunID:              id,
		Degree:             degree,
		Size:               size,
		Threads:            4,
		DurationMS:         125,
		AttractorHistogram: "[1,2,3,0,0,0,0,0,0,4]",
		MeanConvergence:    6.25,
		CreatedAt:          created,
	}
}

func TestRepository_InsertAndLastRun(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))
	base := time.UnixMilli(1_700_000_000_000)

	for i, run := range []RenderRun{
		sampleRun("a", 3, 100, base),
		sampleRun("b", 3, 100, base.Add(time.Minute)),
		sampleRun("c", 5, 100, base.Add(2*time.Minute)),
	} {
		id, err := repo.InsertRun(ctx, run)
		if err != nil {
			t.Fatalf("InsertRun(%d) error = %v", i, err)
		}
		if id != int64(i+1) {
			t.Errorf("InsertRun(%d) id = %d, want %d", i, id, i+1)
		}
	}

	got, err := repo.LastRun(ctx, 3, 100)
	if err != nil {
		t.Fatalf("LastRun() error = %v", err)
	}
	if got.RunID != "b" {
		t.Errorf("LastRun().RunID = %q, want b", got.RunID)
	}
	if !got.CreatedAt.Equal(base.Add(time.Minute)) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, base.Add(time.Minute))
	}
	if got.AttractorHistogram != "[1,2,3,0,0,0,0,0,0,4]" || got.MeanConvergence != 6.25 {
		t.Errorf("LastRun() = %+v, stored fields not round-tripped", got)
	}

	if _, err := repo.LastRun(ctx, 9, 100); !errors.Is(err, ErrNotFound) {
		t.Errorf("LastRun() for unknown geometry error = %v, want ErrNotFound", err)
	}
}

func TestRepository_RecentRuns(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))
	base := time.Now()

	for i := 0; i < 12; i++ {
		run := sampleRun(fmt.Sprintf("run-%02d", i), 2, 10, base.Add(time.Duration(i)*time.Second))
		if _, err := repo.InsertRun(ctx, run); err != nil {
			t.Fatalf("InsertRun() error = %v", err)
		}
	}

	tests := []struct {
		name      string
		limit     int
		wantLen   int
		wantFirst string
	}{
		{"default limit", 0, 10, "run-11"},
		{"explicit limit", 3, 3, "run-11"},
		{"limit above count", 50, 12, "run-11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := repo.RecentRuns(ctx, tt.limit)
			if err != nil {
				t.Fatalf("RecentRuns() error = %v", err)
			}
			if len(runs) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(runs), tt.wantLen)
			}
			if runs[0].RunID != tt.wantFirst {
				t.Errorf("first = %q, want %q", runs[0].RunID, tt.wantFirst)
			}
		})
	}

	n, err := repo.CountRuns(ctx)
	if err != nil || n != 12 {
		t.Errorf("CountRuns() = (%d, %v), want 12", n, err)
	}
}

func TestRepository_InsertRejectsDuplicateAndEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))

	if _, err := repo.InsertRun(ctx, RenderRun{}); err == nil {
		t.Error("InsertRun() without run id should fail")
	}
	run := sampleRun("dup", 1, 2, time.Time{})
	if _, err := repo.InsertRun(ctx, run); err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}
	if _, err := repo.InsertRun(ctx, run); err == nil {
		t.Error("InsertRun() with duplicate run id should fail")
	}
}

func TestRepository_ConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := repo.InsertRun(ctx, sampleRun(fmt.Sprintf("c-%d", i), 4, 8, time.Time{})); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent InsertRun() error = %v", err)
	}
	if n, _ := repo.CountRuns(ctx); n != 20 {
		t.Errorf("CountRuns() = %d, want 20", n)
	}
}

func TestRepository_ClosedDatabase(t *testing.T) {
	database := openTestDB(t)
	repo := NewRepository(database)
	database.Close()

	ctx := context.Background()
	if _, err := repo.InsertRun(ctx, sampleRun("x", 1, 2, time.Time{})); !errors.Is(err, ErrClosed) {
		t.Errorf("InsertRun() on closed db = %v, want ErrClosed", err)
	}
	if _, err := repo.RecentRuns(ctx, 5); !errors.Is(err, ErrClosed) {
		t.Errorf("RecentRuns() on closed db = %v, want ErrClosed", err)
	}
}

func TestPruneRuns(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	repo := NewRepository(database)
	now := time.Now()

	for i, age := range []time.Duration{0, 24 * time.Hour, 10 * 24 * time.Hour, 40 * 24 * time.Hour} {
		if _, err := repo.InsertRun(ctx, sampleRun(fmt.Sprintf("p-%d", i), 3, 3, now.Add(-age))); err != nil {
			t.Fatalf("InsertRun() error = %v", err)
		}
	}

	result, err := database.PruneRuns(ctx, 0, now)
	if err != nil || result.RunsDeleted != 0 {
		t.Errorf("PruneRuns(0) = (%+v, %v), want nothing deleted", result, err)
	}

	result, err = database.PruneRuns(ctx, 7, now)
	if err != nil {
		t.Fatalf("PruneRuns(7) error = %v", err)
	}
	if result.RunsDeleted != 2 {
		t.Errorf("RunsDeleted = %d, want 2", result.RunsDeleted)
	}
	if n, _ := repo.CountRuns(ctx); n != 2 {
		t.Errorf("CountRuns() = %d, want 2", n)
	}

	if _, err := database.PruneRuns(ctx, -1, now); err == nil {
		t.Error("PruneRuns(-1) expected error")
	}
}

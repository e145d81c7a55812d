package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "github.com/M1rr0rb4all/pscback/pkg/platform/audit"
)

func TestAppendAndListBySubject(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, audit.Event{Subject: "001", Decision: "resolved"}))
	require.NoError(t, store.Append(ctx, audit.Event{Subject: "002", Decision: "not_found"}))
	require.NoError(t, store.Append(ctx, audit.Event{Subject: "001", Decision: "resolved"}))

	events, err := store.ListBySubject(ctx, "001")
	require.NoError(t, err)
	assert.Len(t, events, 2)

	events, err = store.ListBySubject(ctx, "003")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestConcurrentAppends(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Append(ctx, audit.Event{Subject: "001", Reason: fmt.Sprintf("attempt %d", i)})
		}()
	}
	wg.Wait()

	events, err := store.ListBySubject(ctx, "001")
	require.NoError(t, err)
	assert.Len(t, events, 20)
}

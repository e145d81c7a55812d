package ownership

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorSink_MessagesNeverNil(t *testing.T) {
	sink := NewErrorSink()
	assert.NotNil(t, sink.Messages())
	assert.Empty(t, sink.Messages())
}

func TestErrorSink_MessagesReturnsCopy(t *testing.T) {
	sink := NewErrorSink()
	sink.Append("first")

	got := sink.Messages()
	got[0] = "mutated"

	assert.Equal(t, []string{"first"}, sink.Messages())
}

func TestErrorSink_ConcurrentAppends(t *testing.T) {
	sink := NewErrorSink()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			sink.Append(fmt.Sprintf("error %d", i))
		}()
	}
	wg.Wait()

	assert.Len(t, sink.Messages(), 50)
}

func TestVisited_CloneIsIndependent(t *testing.T) {
	parent := NewVisited()
	parent.Add("001")

	branch := parent.Clone()
	branch.Add("002")

	assert.True(t, branch.Has("001"))
	assert.True(t, branch.Has("002"))
	assert.False(t, parent.Has("002"))
}

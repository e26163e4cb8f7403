package zone

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailbox_FIFO(t *testing.T) {
	m := newMailbox()

	for i := range int32(5) {
		require.True(t, m.push(faceCommand{playerID: i}))
	}
	assert.Equal(t, 5, m.len())

	for i := range int32(5) {
		cmd, ok := m.pop()
		require.True(t, ok)
		assert.Equal(t, i, cmd.(faceCommand).playerID)
	}

	_, ok := m.pop()
	assert.False(t, ok)
}

func TestMailbox_SignalCoalesces(t *testing.T) {
	m := newMailbox()

	m.push(tickCommand{})
	m.push(tickCommand{})

	<-m.ready()
	select {
	case <-m.ready():
		t.Fatal("signal must coalesce")
	default:
	}
	assert.Equal(t, 2, m.len())
}

func TestMailbox_Close(t *testing.T) {
	m := newMailbox()
	m.push(tickCommand{})
	m.push(tickCommand{})

	assert.Equal(t, 2, m.close())
	assert.False(t, m.push(tickCommand{}))
	assert.Zero(t, m.len())
}

func TestMailbox_ConcurrentProducers(t *testing.T) {
	m := newMailbox()

	const producers, perProducer = 8, 500
	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perProducer {
				m.push(faceCommand{playerID: int32(p*perProducer + i)})
			}
		}()
	}
	wg.Wait()

	// Per producer order is preserved.
	last := make(map[int]int32)
	for range producers * perProducer {
		cmd, ok := m.pop()
		require.True(t, ok)
		id := cmd.(faceCommand).playerID
		p := int(id) / perProducer
		if prev, seen := last[p]; seen {
			require.Greater(t, id, prev)
		}
		last[p] = id
	}
}

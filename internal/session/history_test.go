package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndRead(t *testing.T) {
	store := NewStore(10)
	sid := NewSessionID()

	store.AppendTool(sid, "reason_divergent")
	store.AppendTool(sid, "reason_tree")

	assert.Equal(t, []string{"reason_divergent", "reason_tree"}, store.ToolHistory(sid))
}

func TestBoundedWindowDropsOldestFirst(t *testing.T) {
	store := NewStore(3)
	sid := "s1"

	for i := 1; i <= 5; i++ {
		store.AppendTool(sid, fmt.Sprintf("tool_%d", i))
	}

	assert.Equal(t, []string{"tool_3", "tool_4", "tool_5"}, store.ToolHistory(sid))
}

func TestSessionsAreIndependent(t *testing.T) {
	store := NewStore(10)

	store.AppendTool("a", "reason_tree")
	store.AppendTool("b", "reason_mcts")

	assert.Equal(t, []string{"reason_tree"}, store.ToolHistory("a"))
	assert.Equal(t, []string{"reason_mcts"}, store.ToolHistory("b"))
}

func TestUnknownSessionIsEmpty(t *testing.T) {
	store := NewStore(10)
	assert.Empty(t, store.ToolHistory("nope"))
}

func TestToolHistoryReturnsCopy(t *testing.T) {
	store := NewStore(10)
	store.AppendTool("s", "reason_tree")

	history := store.ToolHistory("s")
	history[0] = "mutated"

	assert.Equal(t, []string{"reason_tree"}, store.ToolHistory("s"))
}

func TestConcurrentAppends(t *testing.T) {
	store := NewStore(1000)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				store.AppendTool("shared", "reason_tree")
			}
		}()
	}
	wg.Wait()

	assert.Len(t, store.ToolHistory("shared"), 500)
}

func TestNewSessionIDUnique(t *testing.T) {
	require.NotEqual(t, NewSessionID(), NewSessionID())
}

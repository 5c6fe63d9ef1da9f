package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luiscast/ventasbot/internal/domain"
)

func TestAppendGetReset(t *testing.T) {
	s := NewStore(20)
	userA := int64(1)
	userB := int64(2)

	s.Append(userA, domain.UserTurn("hola"), domain.AssistantTurn("buenas"))
	s.Append(userB, domain.UserTurn("foo"), domain.AssistantTurn("bar"))

	msgsA := s.Get(userA)
	require.Len(t, msgsA, 2)
	assert.Equal(t, domain.RoleUser, msgsA[0].Role)
	assert.Equal(t, "hola", msgsA[0].Content)
	assert.Equal(t, domain.RoleAssistant, msgsA[1].Role)

	s.Reset(userA)
	assert.Empty(t, s.Get(userA))
	assert.Len(t, s.Get(userB), 2, "reset must not affect other users")
}

func TestGetUnknownUser(t *testing.T) {
	s := NewStore(20)
	got := s.Get(42)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCopyOnRead(t *testing.T) {
	s := NewStore(20)
	s.Append(1, domain.UserTurn("hola"))

	got := s.Get(1)
	got[0] = domain.UserTurn("mutated")

	assert.Equal(t, "hola", s.Get(1)[0].Content, "internal state mutated via returned slice")
}

func TestTruncationKeepsLastWindow(t *testing.T) {
	s := NewStore(20)
	userID := int64(7)

	// 15 exchanges = 30 turns; only the last 10 exchanges must remain.
	for i := 0; i < 15; i++ {
		s.Append(userID,
			domain.UserTurn(fmt.Sprintf("q%d", i)),
			domain.AssistantTurn(fmt.Sprintf("a%d", i)),
		)
	}

	turns := s.Get(userID)
	require.Len(t, turns, 20)
	assert.Equal(t, "q5", turns[0].Content)
	assert.Equal(t, "a5", turns[1].Content)
	assert.Equal(t, "q14", turns[18].Content)
	assert.Equal(t, "a14", turns[19].Content)

	// Relative order preserved: user turn always precedes its assistant turn.
	for i := 0; i < len(turns); i += 2 {
		assert.Equal(t, domain.RoleUser, turns[i].Role)
		assert.Equal(t, domain.RoleAssistant, turns[i+1].Role)
	}
}

func TestAppendNeverExceedsCap(t *testing.T) {
	s := NewStore(20)
	for i := 0; i < 100; i++ {
		s.Append(3, domain.UserTurn("x"), domain.AssistantTurn("y"))
		assert.LessOrEqual(t, s.Len(3), 20)
	}
}

func TestConcurrentAppends(t *testing.T) {
	s := NewStore(20)
	userID := int64(9)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Append(userID, domain.UserTurn("q"), domain.AssistantTurn("a"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, s.Len(userID), "cap must hold under concurrent appends")
}

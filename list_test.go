package hazardlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListRejectsNilDomain(t *testing.T) {
	_, err := NewList[int](nil)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestListDestroyInvokesDestructorOnEveryRemainingNode(t *testing.T) {
	l, h := newTestList(t)

	require.NoError(t, l.InsertHead(h, "A"))
	require.NoError(t, l.InsertHead(h, "B"))
	require.NoError(t, l.Remove(h, "A", eqString)) // logically removed, still linked

	var destroyed []string
	l.Destroy(func(elm string) { destroyed = append(destroyed, elm) })

	assert.ElementsMatch(t, []string{"A", "B"}, destroyed, "Destroy must free every node regardless of visibility")
	assert.True(t, l.IsEmpty(h))
}

func TestOperationsFailFastWithoutARegisteredHandle(t *testing.T) {
	d, err := NewDomain()
	require.NoError(t, err)
	l, err := NewList[string](d)
	require.NoError(t, err)

	assert.ErrorIs(t, l.InsertHead(nil, "A"), ErrNoThread)
	assert.ErrorIs(t, l.Remove(nil, "A", eqString), ErrNoThread)
	_, err = l.RemoveFirst(nil)
	assert.ErrorIs(t, err, ErrNoThread)
	_, err = l.Begin(nil)
	assert.ErrorIs(t, err, ErrNoThread)

	other, err := NewDomain()
	require.NoError(t, err)
	foreignHandle, err := other.Register()
	require.NoError(t, err)
	assert.ErrorIs(t, l.InsertHead(foreignHandle, "A"), ErrNoThread,
		"a handle registered with a different domain must also fail fast")
}

func TestRemoveFirstEmptyList(t *testing.T) {
	l, h := newTestList(t)
	_, err := l.RemoveFirst(h)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveFirstReturnsHeadInLIFOOrder(t *testing.T) {
	l, h := newTestList(t)
	require.NoError(t, l.InsertHead(h, "1"))
	require.NoError(t, l.InsertHead(h, "2"))

	elm, err := l.RemoveFirst(h)
	require.NoError(t, err)
	assert.Equal(t, "2", elm)

	elm, err = l.RemoveFirst(h)
	require.NoError(t, err)
	assert.Equal(t, "1", elm)

	_, err = l.RemoveFirst(h)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContainsRespectsLogicalRemoval(t *testing.T) {
	l, h := newTestList(t)
	require.NoError(t, l.InsertHead(h, "A"))
	assert.True(t, l.Contains(h, "A", eqString))

	require.NoError(t, l.Remove(h, "A", eqString))
	assert.False(t, l.Contains(h, "A", eqString))
}

func TestRemoveNotFound(t *testing.T) {
	l, h := newTestList(t)
	require.NoError(t, l.InsertHead(h, "A"))
	assert.ErrorIs(t, l.Remove(h, "Z", eqString), ErrNotFound)
}

package hazardlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainRegisterGrowsPastInitialCapacity(t *testing.T) {
	d, err := NewDomain(WithInitialCapacity(2))
	require.NoError(t, err)

	var handles []*Handle
	for i := 0; i < 10; i++ {
		h, err := d.Register()
		require.NoError(t, err)
		handles = append(handles, h)
	}

	for _, h := range handles {
		assert.True(t, h.boundTo(d))
	}
}

func TestDomainUnregisterFreesSlotForReuse(t *testing.T) {
	d, err := NewDomain(WithInitialCapacity(1))
	require.NoError(t, err)

	h1, err := d.Register()
	require.NoError(t, err)
	state1 := h1.state

	d.Unregister(h1)
	assert.False(t, h1.boundTo(d))

	h2, err := d.Register()
	require.NoError(t, err)
	assert.Same(t, state1, h2.state, "Unregister should free the slot for the next Register to reuse")
}

func TestDomainUnregisterIsIdempotent(t *testing.T) {
	d, err := NewDomain()
	require.NoError(t, err)

	h, err := d.Register()
	require.NoError(t, err)

	d.Unregister(h)
	d.Unregister(h) // must not panic
	d.Unregister(nil)
}

func TestDomainRegisterOnNilDomain(t *testing.T) {
	var d *Domain
	_, err := d.Register()
	assert.ErrorIs(t, err, ErrInvalid)
}

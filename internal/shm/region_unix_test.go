//go:build unix

package shm

import (
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateZeroed(t *testing.T) {
	r, err := Create(t.TempDir(), 64)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, 64, r.Len())
	assert.Len(t, r.Int32s(), 16)
	for _, b := range r.Bytes() {
		require.Zero(t, b)
	}
}

// TestSecondMappingSeesWrites maps the same file twice, as a parent and a
// child would, and checks writes through one mapping are visible in the other.
func TestSecondMappingSeesWrites(t *testing.T) {
	parent, err := Create(t.TempDir(), 40)
	require.NoError(t, err)
	defer parent.Close()

	inherited, err := os.OpenFile("/dev/fd/"+strconv.Itoa(int(parent.File().Fd())), os.O_RDWR, 0)
	if err != nil {
		t.Skipf("cannot reopen descriptor: %v", err)
	}

	child, err := Open(inherited, 40)
	require.NoError(t, err)

	child.Int32s()[7] = 1000
	require.NoError(t, child.Close())

	assert.Equal(t, int32(1000), parent.Int32s()[7])
}

func TestOpenRejectsWrongSize(t *testing.T) {
	parent, err := Create(t.TempDir(), 8)
	require.NoError(t, err)
	defer parent.Close()

	_, err = Open(parent.File(), 16)
	assert.Error(t, err)
}

func TestEmptyRegion(t *testing.T) {
	r, err := Create(t.TempDir(), 0)
	require.NoError(t, err)
	assert.Nil(t, r.Int32s())
	assert.NoError(t, r.Close())
}

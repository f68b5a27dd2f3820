package adminform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlotSetSeedsExistingImages(t *testing.T) {
	set := NewSlotSet([]string{"u1", "u2"})
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"u1", "u2"}, set.URLs())
}

func TestNewSlotSetAlwaysHasOneSlot(t *testing.T) {
	set := NewSlotSet(nil)
	assert.Equal(t, 1, set.Len())
	assert.Empty(t, set.URLs())
}

func TestSlotSetUploadLifecycle(t *testing.T) {
	set := NewSlotSet(nil)

	require.NoError(t, set.BeginUpload(0))
	slot, err := set.Get(0)
	require.NoError(t, err)
	assert.Equal(t, SlotUploading, slot.State)

	require.NoError(t, set.CompleteUpload(0, "u1"))
	slot, _ = set.Get(0)
	assert.Equal(t, SlotPresent, slot.State)
	assert.Equal(t, "u1", slot.URL)
}

func TestSlotSetFailedUploadReturnsToEmpty(t *testing.T) {
	set := NewSlotSet(nil)
	require.NoError(t, set.BeginUpload(0))
	require.NoError(t, set.FailUpload(0))

	slot, _ := set.Get(0)
	assert.Equal(t, SlotEmpty, slot.State)
	assert.Empty(t, slot.URL)
}

func TestSlotSetRejectsInvalidTransitions(t *testing.T) {
	set := NewSlotSet([]string{"u1"})

	assert.Error(t, set.BeginUpload(0))
	assert.Error(t, set.CompleteUpload(0, "u2"))
	assert.Error(t, set.CompleteDelete(0))
	assert.Error(t, set.BeginUpload(5))
}

func TestSlotSetDeleteLifecycle(t *testing.T) {
	set := NewSlotSet([]string{"u1"})

	require.NoError(t, set.BeginDelete(0))
	assert.True(t, set.Busy())
	require.NoError(t, set.CompleteDelete(0))

	slot, _ := set.Get(0)
	assert.Equal(t, SlotEmpty, slot.State)
	assert.Empty(t, set.URLs())
}

func TestSlotSetFailedDeleteKeepsURL(t *testing.T) {
	set := NewSlotSet([]string{"u1"})
	require.NoError(t, set.BeginDelete(0))
	require.NoError(t, set.FailDelete(0))

	slot, _ := set.Get(0)
	assert.Equal(t, SlotPresent, slot.State)
	assert.Equal(t, "u1", slot.URL)
}

func TestSlotSetSlotsAreIndependent(t *testing.T) {
	set := NewSlotSet([]string{"u1"})
	idx := set.Add()
	other := set.Add()

	require.NoError(t, set.BeginUpload(idx))
	require.NoError(t, set.BeginUpload(other))
	require.NoError(t, set.FailUpload(other))
	require.NoError(t, set.CompleteUpload(idx, "u2"))

	slot, _ := set.Get(0)
	assert.Equal(t, SlotPresent, slot.State)
	assert.Equal(t, []string{"u1", "u2"}, set.URLs())
}

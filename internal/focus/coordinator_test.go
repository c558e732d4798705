package focus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbor/internal/errors"
	"arbor/internal/focus"
)

// fakeSurface records focus/blur calls in order.
type fakeSurface struct {
	name string
	log  *[]string
}

func (s *fakeSurface) Focus() { *s.log = append(*s.log, s.name+":focus") }
func (s *fakeSurface) Blur()  { *s.log = append(*s.log, s.name+":blur") }

func newCoordinator(t *testing.T) (*focus.Coordinator, *[]string) {
	t.Helper()
	log := &[]string{}
	c := focus.NewCoordinator()
	require.NoError(t, c.Register(focus.SurfaceTree, &fakeSurface{name: "tree", log: log}))
	require.NoError(t, c.Register(focus.SurfacePreview, &fakeSurface{name: "preview", log: log}))
	require.NoError(t, c.Register(focus.SurfaceOverlay, &fakeSurface{name: "overlay", log: log}))
	return c, log
}

func TestSetFocus(t *testing.T) {
	t.Run("blur all then focus one", func(t *testing.T) {
		c, log := newCoordinator(t)
		*log = nil

		c.SetFocus(focus.SurfacePreview)

		require.Len(t, *log, 4)
		assert.Equal(t, "preview:focus", (*log)[3], "focus must come after every blur")
		for _, call := range (*log)[:3] {
			assert.Contains(t, call, ":blur")
		}
		assert.Equal(t, focus.SurfacePreview, c.Current())
	})

	t.Run("register rejects unknown surfaces", func(t *testing.T) {
		c := focus.NewCoordinator()
		err := c.Register(focus.SurfaceID(99), &fakeSurface{name: "x", log: &[]string{}})
		require.Error(t, err)
		assert.True(t, errors.IsUnknownSurface(err))
	})
}

func TestOverlayExclusivity(t *testing.T) {
	c, _ := newCoordinator(t)

	c.SetOverlayVisible(true)
	assert.Equal(t, focus.SurfaceOverlay, c.Effective())

	// While the overlay is visible, no other surface can take focus.
	c.SetFocus(focus.SurfacePreview)
	assert.Equal(t, focus.SurfaceOverlay, c.Effective())

	assert.True(t, c.CanReceiveInput(focus.SurfaceOverlay))
	assert.False(t, c.CanReceiveInput(focus.SurfaceTree))
	assert.False(t, c.CanReceiveInput(focus.SurfacePreview))
}

func TestOverlayHideRestoresDefault(t *testing.T) {
	c, _ := newCoordinator(t)

	// Focus the preview, open the overlay, close it again: focus lands on
	// the default surface (the tree), not the previously focused preview.
	c.SetFocus(focus.SurfacePreview)
	c.SetOverlayVisible(true)
	c.SetOverlayVisible(false)

	assert.Equal(t, focus.SurfaceTree, c.Current())
	assert.True(t, c.CanReceiveInput(focus.SurfaceTree))
}

func TestTabCycling(t *testing.T) {
	t.Run("cycles tree and preview", func(t *testing.T) {
		c, _ := newCoordinator(t)

		c.TabToNext()
		assert.Equal(t, focus.SurfacePreview, c.Current())
		c.TabToNext()
		assert.Equal(t, focus.SurfaceTree, c.Current())

		c.TabToPrevious()
		assert.Equal(t, focus.SurfacePreview, c.Current())
		c.TabToPrevious()
		assert.Equal(t, focus.SurfaceTree, c.Current())
	})

	t.Run("no-op while overlay visible", func(t *testing.T) {
		c, _ := newCoordinator(t)

		c.SetOverlayVisible(true)
		c.TabToNext()
		assert.Equal(t, focus.SurfaceOverlay, c.Effective())
		c.TabToPrevious()
		assert.Equal(t, focus.SurfaceOverlay, c.Effective())

		c.SetOverlayVisible(false)
		assert.Equal(t, focus.SurfaceTree, c.Current())
	})
}

func TestInputPredicate(t *testing.T) {
	c, _ := newCoordinator(t)

	treeCan := c.InputPredicate(focus.SurfaceTree)
	previewCan := c.InputPredicate(focus.SurfacePreview)

	assert.True(t, treeCan())
	assert.False(t, previewCan())

	c.SetFocus(focus.SurfacePreview)
	assert.False(t, treeCan())
	assert.True(t, previewCan())

	c.SetOverlayVisible(true)
	assert.False(t, treeCan())
	assert.False(t, previewCan())
}

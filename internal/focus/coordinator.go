// Package focus keeps exactly one logical surface active and enforces modal
// exclusivity while the overlay is visible. Input routing consults it only
// through the per-surface predicates, never the other way around.
package focus

import "arbor/internal/errors"

// SurfaceID identifies one of the fixed logical surfaces.
type SurfaceID int

const (
	SurfaceTree SurfaceID = iota
	SurfacePreview
	SurfaceOverlay
	surfaceCount
)

// String returns the surface name.
func (s SurfaceID) String() string {
	switch s {
	case SurfaceTree:
		return "tree"
	case SurfacePreview:
		return "preview"
	case SurfaceOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// Surface is the capability a concrete component exposes to the coordinator.
// Both operations must not panic; they are fired on every focus change.
type Surface interface {
	Focus()
	Blur()
}

// Coordinator tracks the current focus across the fixed surface set. While
// the overlay is visible the effective focus is forced to the overlay
// regardless of the stored current focus.
type Coordinator struct {
	surfaces       map[SurfaceID]Surface
	current        SurfaceID
	overlayVisible bool

	// defaultSurface names the surface that regains focus when the overlay
	// closes. Hiding the overlay deliberately does not return to whichever
	// surface was focused before it opened; this field makes that policy
	// explicit and swappable.
	defaultSurface SurfaceID

	tabOrder []SurfaceID // cyclic Tab order; the overlay is never part of it
}

// NewCoordinator returns a coordinator focused on the tree surface.
func NewCoordinator() *Coordinator {
	return &Coordinator{
		surfaces:       make(map[SurfaceID]Surface),
		current:        SurfaceTree,
		defaultSurface: SurfaceTree,
		tabOrder:       []SurfaceID{SurfaceTree, SurfacePreview},
	}
}

// Register attaches the concrete component for a surface.
func (c *Coordinator) Register(id SurfaceID, s Surface) error {
	if id < 0 || id >= surfaceCount {
		return errors.NewRouterError("register of unknown surface", id.String(), errors.UnknownSurface)
	}
	c.surfaces[id] = s
	return nil
}

// Current returns the stored current focus, which may differ from the
// effective focus while the overlay is visible.
func (c *Coordinator) Current() SurfaceID {
	return c.current
}

// Effective returns the surface that actually receives input right now.
func (c *Coordinator) Effective() SurfaceID {
	if c.overlayVisible {
		return SurfaceOverlay
	}
	return c.current
}

// OverlayVisible reports whether the overlay currently steals focus.
func (c *Coordinator) OverlayVisible() bool {
	return c.overlayVisible
}

// SetFocus moves focus to the target surface. While the overlay is visible
// any non-overlay target is ignored: the overlay is exclusive. Every
// registered surface is blurred before the target is focused so no surface
// ever observes two simultaneous "focused" signals.
func (c *Coordinator) SetFocus(id SurfaceID) {
	if c.overlayVisible && id != SurfaceOverlay {
		return
	}
	c.current = id
	c.blurAllThenFocus(id)
}

// SetOverlayVisible shows or hides the overlay. Showing forces focus to the
// overlay surface; hiding restores the default surface (see defaultSurface).
func (c *Coordinator) SetOverlayVisible(visible bool) {
	if visible == c.overlayVisible {
		return
	}
	if visible {
		c.overlayVisible = true
		c.blurAllThenFocus(SurfaceOverlay)
		return
	}
	c.overlayVisible = false
	c.SetFocus(c.defaultSurface)
}

// TabToNext advances focus cyclically through the tab order. No-op while the
// overlay is visible.
func (c *Coordinator) TabToNext() {
	c.tab(1)
}

// TabToPrevious retreats focus cyclically through the tab order. No-op while
// the overlay is visible.
func (c *Coordinator) TabToPrevious() {
	c.tab(-1)
}

// CanReceiveInput reports whether the surface is the effective focus: the
// overlay while visible, otherwise the stored current focus.
func (c *Coordinator) CanReceiveInput(id SurfaceID) bool {
	return c.Effective() == id
}

// InputPredicate returns a predicate bound to one surface, for wiring into
// input-router handlers as an explicit constructor dependency.
func (c *Coordinator) InputPredicate(id SurfaceID) func() bool {
	return func() bool { return c.CanReceiveInput(id) }
}

func (c *Coordinator) tab(dir int) {
	if c.overlayVisible || len(c.tabOrder) == 0 {
		return
	}
	idx := 0
	for i, id := range c.tabOrder {
		if id == c.current {
			idx = i
			break
		}
	}
	n := len(c.tabOrder)
	c.SetFocus(c.tabOrder[((idx+dir)%n+n)%n])
}

func (c *Coordinator) blurAllThenFocus(id SurfaceID) {
	for _, s := range c.surfaces {
		s.Blur()
	}
	if s, ok := c.surfaces[id]; ok {
		s.Focus()
	}
}

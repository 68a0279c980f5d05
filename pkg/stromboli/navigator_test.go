package stromboli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDomainDuplicateFails(t *testing.T) {
	nav := New()

	require.NoError(t, nav.RegisterDomain("menu", "", ListLayout(OrientationVertical)))
	err := nav.RegisterDomain("menu", "", SpatialLayout())
	require.Error(t, err)
	assert.True(t, IsAlreadyExists(err))
	assert.Equal(t, []string{"menu"}, nav.DomainIDs())
}

func TestDomainCountTracksRegistrations(t *testing.T) {
	nav := New()

	require.NoError(t, nav.RegisterDomain("a", "", SpatialLayout()))
	require.NoError(t, nav.RegisterDomain("b", "", SpatialLayout()))
	require.NoError(t, nav.RegisterDomain("c", "", SpatialLayout()))
	assert.Len(t, nav.DomainIDs(), 3)

	_, err := nav.UnregisterDomain("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, nav.DomainIDs())

	_, err = nav.UnregisterDomain("b")
	assert.True(t, IsNotFound(err))
}

func TestFirstDomainBecomesActive(t *testing.T) {
	nav := New()

	require.NoError(t, nav.RegisterDomain("menu", "", ListLayout(OrientationVertical)))
	active, ok := nav.ActiveDomainID()
	require.True(t, ok)
	assert.Equal(t, "menu", active)

	// A second domain does not steal activity.
	require.NoError(t, nav.RegisterDomain("sidebar", "", ListLayout(OrientationVertical)))
	active, _ = nav.ActiveDomainID()
	assert.Equal(t, "menu", active)
}

func TestFirstButtonReceivesCursor(t *testing.T) {
	nav := New()

	require.NoError(t, nav.RegisterDomain("menu", "", ListLayout(OrientationVertical)))
	require.NoError(t, nav.RegisterButton("menu", "btn-0", nil, 0))

	cursor := nav.CursorPosition()
	require.NotNil(t, cursor)
	assert.Equal(t, "menu", cursor.DomainID)
	assert.Equal(t, "btn-0", cursor.ElementID)
	assert.Equal(t, ElementButton, cursor.Kind)
}

func TestListNavigationThroughNavigator(t *testing.T) {
	nav := New()
	require.NoError(t, nav.RegisterDomain("menu", "", ListLayout(OrientationVertical)))
	for i, id := range []string{"btn-0", "btn-1", "btn-2"} {
		require.NoError(t, nav.RegisterButton("menu", id, nil, i))
	}

	result := nav.HandleInput(DirectionDown)
	require.Equal(t, ResultCursorMoved, result.Kind)
	assert.Equal(t, "btn-1", result.ElementID)

	result = nav.HandleInput(DirectionDown)
	require.Equal(t, ResultCursorMoved, result.Kind)
	assert.Equal(t, "btn-2", result.ElementID)

	// Past the end, with no bounds for crossing: boundary.
	result = nav.HandleInput(DirectionDown)
	assert.Equal(t, ResultBoundaryReached, result.Kind)

	// Orthogonal keys never move a vertical list.
	result = nav.HandleInput(DirectionLeft)
	assert.Equal(t, ResultBoundaryReached, result.Kind)
}

func TestGridNavigationThroughNavigator(t *testing.T) {
	nav := New()
	require.NoError(t, nav.RegisterDomain("apps", "", GridLayout(3)))
	ids := []string{"b0", "b1", "b2", "b3", "b4", "b5", "b6", "b7", "b8"}
	for i, id := range ids {
		require.NoError(t, nav.RegisterButton("apps", id, nil, i))
	}

	moves := []struct {
		dir  Direction
		want string
	}{
		{DirectionUp, "b1"},
		{DirectionDown, "b7"},
		{DirectionLeft, "b3"},
		{DirectionRight, "b5"},
	}
	for _, m := range moves {
		require.NoError(t, nav.SetCursorPosition("apps", "b4"))
		result := nav.HandleInput(m.dir)
		require.Equal(t, ResultCursorMoved, result.Kind, "direction %s", m.dir)
		assert.Equal(t, m.want, result.ElementID, "direction %s", m.dir)
	}

	require.NoError(t, nav.SetCursorPosition("apps", "b0"))
	assert.Equal(t, ResultBoundaryReached, nav.HandleInput(DirectionUp).Kind)
	require.NoError(t, nav.SetCursorPosition("apps", "b0"))
	assert.Equal(t, ResultBoundaryReached, nav.HandleInput(DirectionLeft).Kind)
}

func TestHandleInputWithoutActiveDomain(t *testing.T) {
	nav := New()
	assert.Equal(t, ResultNoActiveDomain, nav.HandleInput(DirectionUp).Kind)
}

func TestHandleInputEmptyDomain(t *testing.T) {
	nav := New()
	require.NoError(t, nav.RegisterDomain("empty", "", SpatialLayout()))
	assert.Equal(t, ResultBoundaryReached, nav.HandleInput(DirectionDown).Kind)
}

func TestButtonUnregisterReregisterPreservesCursor(t *testing.T) {
	nav := New()
	require.NoError(t, nav.RegisterDomain("header", "", ListLayout(OrientationHorizontal)))
	require.NoError(t, nav.RegisterButton("header", "btn-min", nil, 0))
	require.NoError(t, nav.RegisterButton("header", "btn-max", nil, 1))
	require.NoError(t, nav.RegisterButton("header", "btn-close", nil, 2))

	// Move to the middle button.
	result := nav.HandleInput(DirectionRight)
	require.Equal(t, ResultCursorMoved, result.Kind)
	require.Equal(t, "btn-max", result.ElementID)

	// Simulate a resize: everything unmounts.
	require.NoError(t, nav.UnregisterButton("header", "btn-min"))
	require.NoError(t, nav.UnregisterButton("header", "btn-max"))
	require.NoError(t, nav.UnregisterButton("header", "btn-close"))
	assert.Nil(t, nav.CursorPosition())

	// Children remount in a different order. The cursor must stay unset
	// until the exact element that held it returns, and must never land
	// on the first placeholder.
	require.NoError(t, nav.RegisterButton("header", "btn-close", nil, 2))
	assert.Nil(t, nav.CursorPosition())
	require.NoError(t, nav.RegisterButton("header", "btn-min", nil, 0))
	assert.Nil(t, nav.CursorPosition())
	require.NoError(t, nav.RegisterButton("header", "btn-max", nil, 1))

	cursor := nav.CursorPosition()
	require.NotNil(t, cursor)
	assert.Equal(t, "btn-max", cursor.ElementID)
}

func TestDomainUnregisterRestorationAcrossReregister(t *testing.T) {
	nav := New()
	require.NoError(t, nav.RegisterDomain("window", "", ListLayout(OrientationVertical)))
	require.NoError(t, nav.RegisterButton("window", "e1", nil, 0))
	require.NoError(t, nav.RegisterButton("window", "e2", nil, 1))
	require.Equal(t, ResultCursorMoved, nav.HandleInput(DirectionDown).Kind)

	// The whole domain unmounts while focused. No fallback registered.
	recovered, err := nav.UnregisterDomain("window")
	require.NoError(t, err)
	assert.Nil(t, recovered)
	assert.Nil(t, nav.CursorPosition())
	_, ok := nav.ActiveDomainID()
	assert.False(t, ok)

	// The domain comes back: it reclaims activity, but the cursor stays
	// staged until e2 itself re-registers.
	require.NoError(t, nav.RegisterDomain("window", "", ListLayout(OrientationVertical)))
	active, ok := nav.ActiveDomainID()
	require.True(t, ok)
	assert.Equal(t, "window", active)
	assert.Nil(t, nav.CursorPosition())

	require.NoError(t, nav.RegisterButton("window", "e1", nil, 0))
	assert.Nil(t, nav.CursorPosition())
	require.NoError(t, nav.RegisterButton("window", "e2", nil, 1))

	cursor := nav.CursorPosition()
	require.NotNil(t, cursor)
	assert.Equal(t, "e2", cursor.ElementID)
}

func TestUnregisterInactiveDomainHoldingCursor(t *testing.T) {
	nav := New()
	require.NoError(t, nav.RegisterDomain("panel", "", ListLayout(OrientationVertical)))
	require.NoError(t, nav.RegisterButton("panel", "open", nil, 0))
	require.NoError(t, nav.RegisterDomain("tray", "", ListLayout(OrientationHorizontal)))

	// Activating an empty domain leaves the cursor in place, so the
	// cursor's domain and the active domain now differ.
	require.NoError(t, nav.SetActiveDomain("tray"))
	cursor := nav.CursorPosition()
	require.NotNil(t, cursor)
	assert.Equal(t, "panel", cursor.DomainID)

	// Removing the cursor's domain must not leave the cursor pointing
	// at the removed element, even though the domain was not active.
	recovered, err := nav.UnregisterDomain("panel")
	require.NoError(t, err)
	assert.Nil(t, recovered)
	assert.Nil(t, nav.CursorPosition())
	active, _ := nav.ActiveDomainID()
	assert.Equal(t, "tray", active)

	// The position stays staged for the restoration protocol.
	require.NoError(t, nav.RegisterDomain("panel", "", ListLayout(OrientationVertical)))
	require.NoError(t, nav.SetActiveDomain("panel"))
	assert.Nil(t, nav.CursorPosition())
	require.NoError(t, nav.RegisterButton("panel", "open", nil, 0))
	cursor = nav.CursorPosition()
	require.NotNil(t, cursor)
	assert.Equal(t, "open", cursor.ElementID)
}

func TestRegisterDomainEmptyIDFails(t *testing.T) {
	nav := New()

	err := nav.RegisterDomain("", "", SpatialLayout())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, nav.DomainIDs())
}

func TestUnregisterDomainFallbackRecovery(t *testing.T) {
	nav := New()
	require.NoError(t, nav.RegisterDomain(DefaultFallbackDomain, "", ListLayout(OrientationHorizontal)))
	require.NoError(t, nav.RegisterButton(DefaultFallbackDomain, "home", nil, 0))
	require.NoError(t, nav.RegisterButton(DefaultFallbackDomain, "settings", nil, 1))

	require.NoError(t, nav.RegisterDomain("window", "", ListLayout(OrientationVertical)))
	require.NoError(t, nav.RegisterButton("window", "ok", nil, 0))
	require.NoError(t, nav.SetActiveDomain("window"))

	recovered, err := nav.UnregisterDomain("window")
	require.NoError(t, err)
	require.NotNil(t, recovered)
	assert.Equal(t, DefaultFallbackDomain, recovered.DomainID)
	assert.Equal(t, "home", recovered.ElementID)

	active, _ := nav.ActiveDomainID()
	assert.Equal(t, DefaultFallbackDomain, active)
	cursor := nav.CursorPosition()
	require.NotNil(t, cursor)
	assert.Equal(t, "home", cursor.ElementID)
}

func TestUnregisterFallbackDomainItself(t *testing.T) {
	nav := New()
	require.NoError(t, nav.RegisterDomain(DefaultFallbackDomain, "", ListLayout(OrientationHorizontal)))
	require.NoError(t, nav.RegisterButton(DefaultFallbackDomain, "home", nil, 0))

	recovered, err := nav.UnregisterDomain(DefaultFallbackDomain)
	require.NoError(t, err)
	assert.Nil(t, recovered)
	assert.Nil(t, nav.CursorPosition())
	_, ok := nav.ActiveDomainID()
	assert.False(t, ok)
}

func TestCustomFallbackDomain(t *testing.T) {
	nav := NewWithOptions(Options{FallbackDomain: "dock"})
	require.NoError(t, nav.RegisterDomain("dock", "", ListLayout(OrientationHorizontal)))
	require.NoError(t, nav.RegisterButton("dock", "anchor", nil, 0))
	require.NoError(t, nav.RegisterDomain("popup", "", ListLayout(OrientationVertical)))
	require.NoError(t, nav.RegisterButton("popup", "yes", nil, 0))
	require.NoError(t, nav.SetActiveDomain("popup"))

	recovered, err := nav.UnregisterDomain("popup")
	require.NoError(t, err)
	require.NotNil(t, recovered)
	assert.Equal(t, "dock", recovered.DomainID)
	assert.Equal(t, "anchor", recovered.ElementID)
}

func TestDomainBoundaryCrossing(t *testing.T) {
	nav := New()
	require.NoError(t, nav.RegisterDomain("left-nav", "", ListLayout(OrientationVertical)))
	require.NoError(t, nav.RegisterButton("left-nav", "l0", nil, 0))
	require.NoError(t, nav.UpdateDomainBounds("left-nav", &Rect{X: 0, Y: 0, Width: 100, Height: 100}))

	require.NoError(t, nav.RegisterDomain("right-nav", "", ListLayout(OrientationVertical)))
	require.NoError(t, nav.RegisterButton("right-nav", "r0", nil, 0))
	require.NoError(t, nav.UpdateDomainBounds("right-nav", &Rect{X: 200, Y: 0, Width: 100, Height: 100}))

	result := nav.HandleInput(DirectionRight)
	require.Equal(t, ResultDomainBoundaryCrossed, result.Kind)
	assert.Equal(t, "left-nav", result.FromDomain)
	assert.Equal(t, "right-nav", result.ToDomain)
	assert.Equal(t, DirectionRight, result.Direction)

	// The cursor has not moved yet; the switch is the caller's call.
	cursor := nav.CursorPosition()
	require.NotNil(t, cursor)
	assert.Equal(t, "left-nav", cursor.DomainID)

	switched := nav.SwitchToDomain(result.ToDomain)
	require.Equal(t, ResultDomainSwitched, switched.Kind)
	assert.Equal(t, "left-nav", switched.FromDomain)
	assert.Equal(t, "right-nav", switched.ToDomain)
	assert.Equal(t, "r0", switched.NewElementID)

	// Nothing beyond the right edge now.
	assert.Equal(t, ResultBoundaryReached, nav.HandleInput(DirectionRight).Kind)
}

func TestLockedExitBlocksCrossing(t *testing.T) {
	nav := New()
	require.NoError(t, nav.RegisterDomain("left-nav", "", ListLayout(OrientationVertical)))
	require.NoError(t, nav.RegisterButton("left-nav", "l0", nil, 0))
	require.NoError(t, nav.UpdateDomainBounds("left-nav", &Rect{X: 0, Y: 0, Width: 100, Height: 100}))
	require.NoError(t, nav.RegisterDomain("right-nav", "", ListLayout(OrientationVertical)))
	require.NoError(t, nav.RegisterButton("right-nav", "r0", nil, 0))
	require.NoError(t, nav.UpdateDomainBounds("right-nav", &Rect{X: 200, Y: 0, Width: 100, Height: 100}))

	require.NoError(t, nav.SetLockedExits("left-nav", DirectionRight))
	assert.Equal(t, ResultBoundaryReached, nav.HandleInput(DirectionRight).Kind)

	// Unlocking reopens the crossing.
	require.NoError(t, nav.SetLockedExits("left-nav"))
	assert.Equal(t, ResultDomainBoundaryCrossed, nav.HandleInput(DirectionRight).Kind)
}

func TestCrossDomainSearchIgnoresEmptyAndUnboundedDomains(t *testing.T) {
	nav := New()
	require.NoError(t, nav.RegisterDomain("origin", "", ListLayout(OrientationVertical)))
	require.NoError(t, nav.RegisterButton("origin", "o0", nil, 0))
	require.NoError(t, nav.UpdateDomainBounds("origin", &Rect{X: 0, Y: 0, Width: 100, Height: 100}))

	// Empty domain with bounds: skipped.
	require.NoError(t, nav.RegisterDomain("hollow", "", ListLayout(OrientationVertical)))
	require.NoError(t, nav.UpdateDomainBounds("hollow", &Rect{X: 200, Y: 0, Width: 100, Height: 100}))

	// Populated domain without bounds: skipped.
	require.NoError(t, nav.RegisterDomain("floating", "", ListLayout(OrientationVertical)))
	require.NoError(t, nav.RegisterButton("floating", "f0", nil, 0))

	assert.Equal(t, ResultBoundaryReached, nav.HandleInput(DirectionRight).Kind)
}

func TestSpatialNavigationWithinDomain(t *testing.T) {
	nav := New()
	require.NoError(t, nav.RegisterDomain("canvas", "", SpatialLayout()))
	require.NoError(t, nav.RegisterButton("canvas", "origin", &Rect{X: 0, Y: 0, Width: 10, Height: 10}, 0))
	require.NoError(t, nav.RegisterButton("canvas", "far-aligned", &Rect{X: 100, Y: 0, Width: 10, Height: 10}, 1))
	require.NoError(t, nav.RegisterButton("canvas", "near-offaxis", &Rect{X: 20, Y: 40, Width: 10, Height: 10}, 2))

	// Alignment beats raw proximity: the doubled perpendicular penalty
	// steers selection to the element straight ahead.
	result := nav.HandleInput(DirectionRight)
	require.Equal(t, ResultCursorMoved, result.Kind)
	assert.Equal(t, "far-aligned", result.ElementID)
}

func TestSpatialNavigationSkipsElementsWithoutBounds(t *testing.T) {
	nav := New()
	require.NoError(t, nav.RegisterDomain("canvas", "", SpatialLayout()))
	require.NoError(t, nav.RegisterButton("canvas", "origin", &Rect{X: 0, Y: 0, Width: 10, Height: 10}, 0))
	require.NoError(t, nav.RegisterButton("canvas", "ghost", nil, 1))

	assert.Equal(t, ResultBoundaryReached, nav.HandleInput(DirectionRight).Kind)
}

func TestSwitchToDomain(t *testing.T) {
	nav := New()
	require.NoError(t, nav.RegisterDomain("a", "", ListLayout(OrientationVertical)))
	require.NoError(t, nav.RegisterButton("a", "a1", nil, 5))
	require.NoError(t, nav.RegisterButton("a", "a0", nil, 1))
	require.NoError(t, nav.RegisterDomain("b", "", ListLayout(OrientationVertical)))

	// Lowest order wins, not registration order.
	result := nav.SwitchToDomain("a")
	require.Equal(t, ResultDomainSwitched, result.Kind)
	assert.Equal(t, "a0", result.NewElementID)

	assert.Equal(t, ResultError, nav.SwitchToDomain("missing").Kind)
	assert.Equal(t, ResultError, nav.SwitchToDomain("b").Kind)
}

func TestSetCursorPosition(t *testing.T) {
	nav := New()
	require.NoError(t, nav.RegisterDomain("menu", "", ListLayout(OrientationVertical)))
	require.NoError(t, nav.RegisterButton("menu", "btn-0", nil, 0))
	require.NoError(t, nav.RegisterDomain("sidebar", "", ListLayout(OrientationVertical)))
	require.NoError(t, nav.RegisterButton("sidebar", "side-0", nil, 0))

	// Hover into a non-active domain moves both cursor and activity.
	require.NoError(t, nav.SetCursorPosition("sidebar", "side-0"))
	active, _ := nav.ActiveDomainID()
	assert.Equal(t, "sidebar", active)

	assert.True(t, IsNotFound(nav.SetCursorPosition("missing", "x")))
	assert.True(t, IsNotFound(nav.SetCursorPosition("menu", "missing")))
}

func TestUpdateOperationsDoNotTouchCursor(t *testing.T) {
	nav := New()
	require.NoError(t, nav.RegisterDomain("menu", "", ListLayout(OrientationVertical)))
	require.NoError(t, nav.RegisterButton("menu", "btn-0", nil, 0))
	before := nav.CursorPosition()

	require.NoError(t, nav.UpdateButtonBounds("menu", "btn-0", &Rect{X: 1, Y: 2, Width: 3, Height: 4}))
	require.NoError(t, nav.UpdateDomainBounds("menu", &Rect{X: 0, Y: 0, Width: 50, Height: 50}))
	require.NoError(t, nav.UpdateLayout("menu", GridLayout(2)))

	assert.Equal(t, before, nav.CursorPosition())

	assert.True(t, IsNotFound(nav.UpdateButtonBounds("menu", "nope", nil)))
	assert.True(t, IsNotFound(nav.UpdateDomainBounds("nope", nil)))
	assert.True(t, IsNotFound(nav.UpdateLayout("nope", SpatialLayout())))
}

func TestCursorReadIdempotence(t *testing.T) {
	nav := New()
	require.NoError(t, nav.RegisterDomain("menu", "", ListLayout(OrientationVertical)))
	require.NoError(t, nav.RegisterButton("menu", "btn-0", nil, 0))

	first := nav.CursorPosition()
	second := nav.CursorPosition()
	assert.Equal(t, first, second)

	// Reads return copies, not aliases into navigator state.
	first.ElementID = "tampered"
	assert.Equal(t, "btn-0", nav.CursorPosition().ElementID)
}

func TestDomainInfoSnapshot(t *testing.T) {
	nav := New()
	require.NoError(t, nav.RegisterDomain("menu", "root", GridLayout(2)))
	require.NoError(t, nav.RegisterButton("menu", "btn-1", &Rect{X: 5, Y: 5, Width: 10, Height: 10}, 1))
	require.NoError(t, nav.RegisterButton("menu", "btn-0", nil, 0))
	require.NoError(t, nav.SetLockedExits("menu", DirectionUp))

	info, ok := nav.DomainInfo("menu")
	require.True(t, ok)
	assert.Equal(t, "root", info.ParentID)
	require.Len(t, info.Elements, 2)
	assert.Equal(t, "btn-0", info.Elements[0].ID)
	assert.Equal(t, []Direction{DirectionUp}, info.LockedExits)

	// The snapshot is detached from live state.
	info.Elements[1].Bounds.X = 999
	fresh, _ := nav.DomainInfo("menu")
	assert.Equal(t, 5.0, fresh.Elements[1].Bounds.X)

	_, ok = nav.DomainInfo("missing")
	assert.False(t, ok)
}

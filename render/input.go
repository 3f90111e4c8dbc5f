package render

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/reelmark"
)

// readModifiers reads the current keyboard modifier state.
func readModifiers() reelmark.KeyModifiers {
	var mods reelmark.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= reelmark.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= reelmark.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= reelmark.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= reelmark.ModMeta
	}
	return mods
}

// pollPointer feeds the mouse at (x, y) into the timeline. The timeline keeps
// the button captured at press time until release, so the order here only
// matters for simultaneous presses.
func pollPointer(tl *reelmark.Timeline, x, y float64, mods reelmark.KeyModifiers) {
	var pressed bool
	var button reelmark.MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		switch {
		case left:
			button = reelmark.MouseButtonLeft
		case right:
			button = reelmark.MouseButtonRight
		default:
			button = reelmark.MouseButtonMiddle
		}
	}
	tl.ProcessPointer(x, y, pressed, button, mods)

	if _, dy := ebiten.Wheel(); dy != 0 {
		tl.Wheel(x, y, dy, mods)
	}
}

// keyName maps an ebiten key to the name used in chords. Modifier keys map
// to "".
func keyName(k ebiten.Key) string {
	switch k {
	case ebiten.KeyShift, ebiten.KeyShiftLeft, ebiten.KeyShiftRight,
		ebiten.KeyControl, ebiten.KeyControlLeft, ebiten.KeyControlRight,
		ebiten.KeyAlt, ebiten.KeyAltLeft, ebiten.KeyAltRight,
		ebiten.KeyMeta, ebiten.KeyMetaLeft, ebiten.KeyMetaRight:
		return ""
	}
	name := k.String()
	switch {
	case strings.HasPrefix(name, "Digit"):
		return strings.TrimPrefix(name, "Digit")
	case strings.HasPrefix(name, "Arrow"):
		return strings.TrimPrefix(name, "Arrow")
	case strings.HasPrefix(name, "Numpad") && len(name) == len("Numpad")+1:
		return strings.TrimPrefix(name, "Numpad")
	}
	return name
}

// Shortcut runs a built-in editor command for chord and reports whether the
// chord was one. Chords that are not shortcuts fall through to the project
// keybinds.
func Shortcut(tl *reelmark.Timeline, chord string) (bool, error) {
	switch chord {
	case "Ctrl+Z":
		tl.Undo()
	case "Ctrl+Y", "Ctrl+Shift+Z":
		tl.Redo()
	case "Ctrl+S":
		if tl.Path() == "" {
			return false, nil
		}
		return true, tl.Save(tl.Path())
	case "Escape":
		tl.ExitScope()
	case "Shift+Escape":
		tl.ExitToRoot()
	case "Left":
		tl.StepFrame(-1)
	case "Right":
		tl.StepFrame(1)
	case "Shift+Left":
		tl.JumpPrevSection()
	case "Shift+Right":
		tl.JumpNextSection()
	default:
		return toggleByIndex(tl, chord)
	}
	return true, nil
}

// toggleByIndex maps Alt+1..Alt+9 to the section categories in list order.
func toggleByIndex(tl *reelmark.Timeline, chord string) (bool, error) {
	digit, ok := strings.CutPrefix(chord, "Alt+")
	if !ok || len(digit) != 1 || digit[0] < '1' || digit[0] > '9' {
		return false, nil
	}
	cats := tl.Project().CategoriesOf(reelmark.KindSection)
	i := int(digit[0] - '1')
	if i >= len(cats) {
		return false, nil
	}
	return true, tl.ToggleSection(cats[i].Name)
}

// Package ui is the Bubble Tea front end for the favorites screen.
//
// The model never derives state itself. It renders whatever Screen the
// coordinator publishes, expands Success screens with render.Materialize and
// forwards intents (load, toggle, open random) back to the coordinator.
// One-shot signals become transient toasts or the detail view.
//
// Key bindings live in keys.go and double as the help.KeyMap shown in the
// footer and the ? overlay. Theme and the sponsored-row choice persist through
// the prefs package.
package ui

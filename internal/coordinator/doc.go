// Package coordinator owns the favorites screen state.
//
// A Coordinator holds exactly one live subscription: Load cancels the previous
// one, waits for it to stop, then starts a new one tagged with a fresh
// generation. Every write to the Screen carries that generation and is dropped
// when it no longer matches, so a superseded subscription can never overwrite
// newer state.
//
// Toggles go through a MutationController. They never write the Screen
// directly; a successful toggle updates the favorites store, which the live
// subscription observes and recombines with the last catalog it saw.
//
// One-shot events (navigation, load and toggle failures) are delivered on the
// Signals channel, separate from the Screen.
package coordinator

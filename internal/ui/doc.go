// Package ui contains the Bubble Tea program that edits and runs the vault
// organise rules. The Model type focuses on message orchestration, while
// dedicated helpers own navigation, the rule form, rendering, and background
// commands.
//
// Message flow:
//   - Key presses are offered to the keyboard scope stack first. Only open
//     suggestion panels push scopes, so arrows, enter and escape drive the
//     panel while it is showing and fall through to the form otherwise.
//   - Mouse events are offered to the floating suggestion layer first. A press
//     on a suggestion is consumed there, so the bound input keeps its focus
//     until the click completes.
//   - Remaining messages go to the active rule form, then through a typed
//     handler registry so each tea.Msg is handled by a focused function.
//
// State ownership:
//   - The rule table lives in internal/ui/state.Rules, which tracks items,
//     the cursor and the viewport.
//   - Folder and tag stores are provided by internal/state and kept in sync by
//     the dispatcher, so suggestion sources always see the latest scan.
//   - Organising, saving settings and copying reports run asynchronously via
//     the internal/ui/command bus.
//
// Backend interactions:
//   - A backend.Watcher streams vault snapshots; Update waits for those events
//     and hands them to applyBackendEvent, which refreshes the stores and any
//     suggestion panel currently showing.
//   - The view renders the screen first and composites the suggestion layer
//     over it, laying panels out against the field positions recorded during
//     that render.
package ui

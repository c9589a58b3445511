// Package cli provides the interactive EatsBalance command-line client.
//
// It wires configuration, the secure local store, the meals API and the
// device helpers, then runs a REPL on stdin. Typical flow: restore the saved
// session (or log in), list today's meals, add meals with an optional photo
// or voice note, and adjust goals and reminders.
//
// Key features:
//   - Register / Login / Logout
//   - List, show, add and delete meals with a calorie dashboard
//   - Photo capture and voice notes attached to the next meal
//   - Settings: calorie goal, daily reminder, dark mode, diet type
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

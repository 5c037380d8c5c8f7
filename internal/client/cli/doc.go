// Package cli provides the interactive world command-line client.
//
// The root REPL is the map screen: it shows the viewport around the current
// position and navigates to the compose screen ("new") and the profile screen
// ("profile"). The compose screen is a nested REPL over one compose.Flow; it
// returns to the map after a successful save or on "cancel".
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// the input ends.
package cli

// Package cli provides the interactive localauth terminal client.
//
// It wires configuration, the device database and the auth service, restores
// the persisted session, and then runs a REPL that plays the part of the app
// screens:
//
//	Logged out:  signup, login, help, exit
//	Logged in:   profile, logout, help, exit
//
// Form input is validated before it reaches the service. The REPL is started
// via App.Run(ctx), which blocks until the user exits or input ends.
package cli

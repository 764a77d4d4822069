// Package driving defines the interfaces through which external actors
// drive the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// Core services implement them; the CLI adapter calls them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driving

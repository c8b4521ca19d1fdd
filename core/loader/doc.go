// Package loader wires self-contained features into the HTTP server.
//
// A feature bundles a service, its handlers and its routes behind the
// Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Features are registered on a Manager during startup and loaded in
// registration order with LoadAll. A disabled feature is skipped with a
// log line; a feature that fails to load aborts the startup, since a
// partially wired server would silently drop routes.
//
// The sync and status features are both loaded this way, which keeps
// their route registration testable without assembling the full server.
package loader

// Package loader provides the feature registration mechanism.
//
// Every feature of the bridge (machines, printing, status) implements the
// Feature interface:
//
//	type Feature interface {
//		Name() string
//		IsEnabled() bool
//		Load(app fiber.Router) error
//	}
//
// Features are registered with a Manager, which loads all enabled features
// into the Fiber application at startup. Disabled features are skipped but
// logged, so a missing route is visible in the startup log rather than a
// silent 404.
package loader

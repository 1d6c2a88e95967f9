// Package utils provides common utility functions for the brother-bridge
// application. It includes helper functions for type conversion of the
// loosely-typed settings values the host platform submits, and other shared
// logic that doesn't fit into domain-specific packages.
package utils

// Package domain contains the core business entities and rules for lore.
// Types here have no dependencies on infrastructure or external services.
package domain

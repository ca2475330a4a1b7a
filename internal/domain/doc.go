// Package domain contains the core types shared across the service: Twitch
// resource snapshots and the resolved category consumed by the composer.
// It has no dependencies on other internal packages.
package domain

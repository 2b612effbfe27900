// Package vanity checks whether short human-chosen identifiers ("vanity"
// names) are free to register as Steam profile or group URLs.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, sqlite/, prometheus/).
package vanity

// Package occupancy holds the in-memory occupancy table: a time-ordered,
// immutable collection of dump records with a bucket index keyed by
// (group, weekday, time of day) so that historical lookups do not rescan
// the whole table per prediction point.
package occupancy

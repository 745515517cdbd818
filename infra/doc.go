// Package infra contains technical adapters such as the occupancy data
// stores, the dump ingestor and the chart renderer. These packages should
// depend only on the interfaces defined in the core packages.
package infra

// Package stations implements the station statistics workload: parsing
// "name;value" measurement lines into per-station aggregates, merging the
// aggregates produced by independent chunks and rendering the final result.
package stations

package occupancy

import (
	"fmt"
	"sort"
	"time"

	"github.com/opendensity/density/core/model"
)

// SecondOfDay returns t's time of day as seconds since midnight in t's
// location. History matching compares this value exactly, so prediction
// targets must sit on the same sampling grid as the dumps.
func SecondOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

type bucketKey struct {
	group string
	day   time.Weekday
	secs  int
}

// Table is an immutable, time-ordered collection of occupancy records.
// Construction validates every record and builds the bucket index once;
// all methods are read-only and safe for concurrent use.
type Table struct {
	records []model.Record
	buckets map[bucketKey][]int64
	groups  map[string]struct{}
}

// Option adjusts table construction.
type Option func(*tableOptions)

type tableOptions struct {
	groupDomain  map[string]struct{}
	parentDomain map[string]struct{}
}

// WithGroupDomain restricts group names to the given set. Records naming an
// unknown group fail construction.
func WithGroupDomain(names ...string) Option {
	return func(o *tableOptions) {
		o.groupDomain = toSet(names)
	}
}

// WithParentDomain restricts parent (building) names to the given set.
func WithParentDomain(names ...string) Option {
	return func(o *tableOptions) {
		o.parentDomain = toSet(names)
	}
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// New validates records, sorts them by dump time and builds the bucket index.
func New(records []model.Record, opts ...Option) (*Table, error) {
	var o tableOptions
	for _, opt := range opts {
		opt(&o)
	}

	sorted := make([]model.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DumpTime.Before(sorted[j].DumpTime)
	})

	t := &Table{
		records: sorted,
		buckets: make(map[bucketKey][]int64),
		groups:  make(map[string]struct{}),
	}
	for _, rec := range sorted {
		if err := rec.Validate(); err != nil {
			return nil, err
		}
		if o.groupDomain != nil {
			if _, ok := o.groupDomain[rec.GroupName]; !ok {
				return nil, fmt.Errorf("record at %s names unknown group %q",
					rec.DumpTime.Format(time.RFC3339), rec.GroupName)
			}
		}
		if o.parentDomain != nil {
			if _, ok := o.parentDomain[rec.ParentName]; !ok {
				return nil, fmt.Errorf("record at %s names unknown parent %q",
					rec.DumpTime.Format(time.RFC3339), rec.ParentName)
			}
		}
		key := bucketKey{rec.GroupName, rec.DumpTime.Weekday(), SecondOfDay(rec.DumpTime)}
		t.buckets[key] = append(t.buckets[key], rec.ClientCount)
		t.groups[rec.GroupName] = struct{}{}
	}
	return t, nil
}

// Len returns the number of records in the table.
func (t *Table) Len() int { return len(t.records) }

// HasFloor reports whether any record names the given floor.
func (t *Table) HasFloor(floor string) bool {
	_, ok := t.groups[floor]
	return ok
}

// Floors returns the sorted set of group names present in the table.
func (t *Table) Floors() []string {
	floors := make([]string, 0, len(t.groups))
	for g := range t.groups {
		floors = append(floors, g)
	}
	sort.Strings(floors)
	return floors
}

// Bucket returns the client counts recorded for floor at the given weekday
// and second of day, across all observed weeks. The returned slice must not
// be modified.
func (t *Table) Bucket(floor string, day time.Weekday, secs int) ([]int64, bool) {
	counts, ok := t.buckets[bucketKey{floor, day, secs}]
	return counts, ok
}

// Observed returns the floor's full observation history as a time-ordered
// series. Dump times are unique per group, so the resulting index is strictly
// increasing.
func (t *Table) Observed(floor string) (model.Series, error) {
	if !t.HasFloor(floor) {
		return model.Series{}, fmt.Errorf("floor %q: %w", floor, ErrUnknownFloor)
	}
	var (
		index  model.TimeIndex
		values []float64
	)
	for _, rec := range t.records {
		if rec.GroupName != floor {
			continue
		}
		index = append(index, rec.DumpTime)
		values = append(values, float64(rec.ClientCount))
	}
	return model.NewSeries(floor, index, values)
}

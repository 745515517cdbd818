package model

import (
	"fmt"
	"time"
)

// Record is a single occupancy observation: the number of wireless clients
// seen in a group (a floor or room) at the instant the dump was taken.
type Record struct {
	DumpTime    time.Time
	GroupID     int64
	GroupName   string // floor or room name, drawn from a small fixed set
	ParentID    int64
	ParentName  string // building the group belongs to
	ClientCount int64
}

// Validate checks that the record is a usable occupancy fact.
func (r Record) Validate() error {
	if r.DumpTime.IsZero() {
		return fmt.Errorf("record has zero dump time")
	}
	if r.GroupName == "" {
		return fmt.Errorf("record at %s has empty group name", r.DumpTime.Format(time.RFC3339))
	}
	if r.ClientCount < 0 {
		return fmt.Errorf("record for %q at %s has negative client count %d",
			r.GroupName, r.DumpTime.Format(time.RFC3339), r.ClientCount)
	}
	return nil
}

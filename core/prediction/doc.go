// Package prediction estimates future floor occupancy from historical
// dumps. The estimate for a target instant is the arithmetic mean of the
// client counts recorded for the same floor at the same weekday and time
// of day across all observed weeks. There is no model beyond that mean:
// no confidence bounds and no imputation for instants without history.
package prediction

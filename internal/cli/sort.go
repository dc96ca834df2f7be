package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/mytime-ics/internal/shift"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByPage  SortOrder = "page"
	SortByStart SortOrder = "start"
	SortByJob   SortOrder = "job"
)

// sortShifts sorts shifts for display. SortByPage keeps scan order.
func sortShifts(shifts []shift.Shift, order SortOrder) {
	switch order {
	case SortByStart:
		sort.SliceStable(shifts, func(i, j int) bool {
			return shifts[i].Start.Before(shifts[j].Start)
		})
	case SortByJob:
		sort.SliceStable(shifts, func(i, j int) bool {
			ji, jj := strings.ToLower(shifts[i].Job), strings.ToLower(shifts[j].Job)
			if ji != jj {
				return ji < jj
			}
			// If jobs are equal, sort by start
			return shifts[i].Start.Before(shifts[j].Start)
		})
	}
}

// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

// Package calendar buckets upcoming events into a rolling twelve-month
// window for the public calendar view.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/stagepass/stagepass/internal/models"
)

// windowMonths is the number of months the calendar shows, starting with
// the current one.
const windowMonths = 12

// MonthRow is one month in the calendar strip.
type MonthRow struct {
	// Key is the month identifier, "YYYY-MM".
	Key string `json:"key"`

	// Title is the short month name, "Jan" through "Dec".
	Title string `json:"title"`

	// Count is the number of events falling in that month.
	Count int `json:"count"`
}

// MonthKey formats a time as the "YYYY-MM" bucket identifier.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// Months builds the rolling window starting at now's month and counts the
// given events into it. Events outside the window are ignored.
func Months(events []models.Event, now time.Time) []MonthRow {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	buckets := make(map[string]int, windowMonths)
	for i := 0; i < windowMonths; i++ {
		buckets[MonthKey(start.AddDate(0, i, 0))] = 0
	}

	for _, e := range events {
		key := MonthKey(e.Date)
		if _, ok := buckets[key]; ok {
			buckets[key]++
		}
	}

	rows := make([]MonthRow, 0, windowMonths)
	for i := 0; i < windowMonths; i++ {
		m := start.AddDate(0, i, 0)
		key := MonthKey(m)
		rows = append(rows, MonthRow{
			Key:   key,
			Title: m.Format("Jan"),
			Count: buckets[key],
		})
	}
	return rows
}

// FilterByMonth returns the events falling in the given "YYYY-MM" bucket,
// sorted by date ascending. An empty key selects all events.
func FilterByMonth(events []models.Event, key string) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if key == "" || MonthKey(e.Date) == key {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Upcoming filters events to those on or after now, sorted by date. The
// backend already filters by mode; this guards against clock drift between
// gateway and backend.
func Upcoming(events []models.Event, now time.Time) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if !e.Date.Before(now) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

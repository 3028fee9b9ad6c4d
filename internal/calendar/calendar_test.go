// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

package calendar

import (
	"testing"
	"time"

	"github.com/stagepass/stagepass/internal/models"
)

func eventOn(id int64, date time.Time) models.Event {
	return models.Event{ID: models.ID(id), Title: "event", Date: date}
}

func TestMonthKey(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), "2026-01"},
		{time.Date(2026, time.December, 31, 23, 59, 0, 0, time.UTC), "2026-12"},
		{time.Date(999, time.March, 1, 0, 0, 0, 0, time.UTC), "0999-03"},
	}
	for _, tt := range tests {
		if got := MonthKey(tt.date); got != tt.want {
			t.Errorf("MonthKey(%v): expected %q, got %q", tt.date, tt.want, got)
		}
	}
}

func TestMonthsWindow(t *testing.T) {
	now := time.Date(2026, time.November, 20, 12, 0, 0, 0, time.UTC)

	events := []models.Event{
		eventOn(1, time.Date(2026, time.November, 25, 19, 0, 0, 0, time.UTC)),
		eventOn(2, time.Date(2026, time.December, 5, 19, 0, 0, 0, time.UTC)),
		eventOn(3, time.Date(2026, time.December, 12, 19, 0, 0, 0, time.UTC)),
		eventOn(4, time.Date(2027, time.October, 1, 19, 0, 0, 0, time.UTC)),
		// Outside the window on both sides.
		eventOn(5, time.Date(2026, time.October, 1, 19, 0, 0, 0, time.UTC)),
		eventOn(6, time.Date(2027, time.November, 1, 19, 0, 0, 0, time.UTC)),
	}

	rows := Months(events, now)
	if len(rows) != 12 {
		t.Fatalf("expected 12 rows, got %d", len(rows))
	}

	if rows[0].Key != "2026-11" || rows[0].Title != "Nov" || rows[0].Count != 1 {
		t.Errorf("row 0: got %+v", rows[0])
	}
	if rows[1].Key != "2026-12" || rows[1].Count != 2 {
		t.Errorf("row 1: got %+v", rows[1])
	}
	if rows[11].Key != "2027-10" || rows[11].Title != "Oct" || rows[11].Count != 1 {
		t.Errorf("row 11: got %+v", rows[11])
	}

	total := 0
	for _, r := range rows {
		total += r.Count
	}
	if total != 4 {
		t.Errorf("window total: expected 4, got %d", total)
	}
}

func TestMonthsWindowCrossesYearBoundary(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	rows := Months(nil, now)
	if rows[9].Key != "2026-12" || rows[10].Key != "2027-01" {
		t.Errorf("year boundary: rows 9/10 got %q/%q", rows[9].Key, rows[10].Key)
	}
}

func TestFilterByMonth(t *testing.T) {
	events := []models.Event{
		eventOn(2, time.Date(2026, time.December, 12, 0, 0, 0, 0, time.UTC)),
		eventOn(1, time.Date(2026, time.December, 5, 0, 0, 0, 0, time.UTC)),
		eventOn(3, time.Date(2027, time.January, 2, 0, 0, 0, 0, time.UTC)),
	}

	got := FilterByMonth(events, "2026-12")
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("expected date order [1 2], got [%d %d]", got[0].ID, got[1].ID)
	}

	all := FilterByMonth(events, "")
	if len(all) != 3 {
		t.Errorf("empty key: expected all 3 events, got %d", len(all))
	}
	if all[0].ID != 1 || all[2].ID != 3 {
		t.Errorf("empty key order: got %v %v %v", all[0].ID, all[1].ID, all[2].ID)
	}
}

func TestUpcoming(t *testing.T) {
	now := time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC)
	events := []models.Event{
		eventOn(1, now.AddDate(0, 0, -1)),
		eventOn(2, now),
		eventOn(3, now.AddDate(0, 1, 0)),
	}

	got := Upcoming(events, now)
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].ID != 2 || got[1].ID != 3 {
		t.Errorf("order: got [%d %d]", got[0].ID, got[1].ID)
	}
}

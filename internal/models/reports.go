// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

package models

import "time"

// ReportSummary is the pre-aggregated sales report the backend computes from
// ticket and event data. Read-only; this layer only types the response.
type ReportSummary struct {
	Counters ReportCounters `json:"counters"`
	PerEvent []EventReport  `json:"perEvent"`
	Daily    []DailyReport  `json:"daily"`
}

// ReportCounters holds the headline totals.
type ReportCounters struct {
	TotalEvents  int `json:"totalEvents"`
	TicketsSold  int `json:"ticketsSold"`
	UniqueBuyers int `json:"uniqueBuyers"`
}

// EventReport is the per-event breakdown row.
type EventReport struct {
	EventID        ID         `json:"event_id"`
	Title          string     `json:"title"`
	Date           time.Time  `json:"date"`
	TicketsSold    int        `json:"tickets_sold"`
	UniqueBuyers   int        `json:"unique_buyers"`
	LastPurchaseAt *time.Time `json:"last_purchase_at,omitempty"`
}

// DailyReport is one point of the daily sales series. Day is a calendar date
// in "YYYY-MM-DD" form.
type DailyReport struct {
	Day         string `json:"day"`
	TicketsSold int    `json:"tickets_sold"`
}

// ReportsQuery filters the summary by date range and/or event. From and To
// are calendar dates in "YYYY-MM-DD" form; empty values are omitted from the
// request.
type ReportsQuery struct {
	From    string `validate:"omitempty,datetime=2006-01-02"`
	To      string `validate:"omitempty,datetime=2006-01-02"`
	EventID ID
}

// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

package models

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func strPtr(s string) *string { return &s }

func TestEventJSONShape(t *testing.T) {
	date := time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC)
	e := Event{
		ID:              7,
		Title:           "Summer Closing",
		Venue:           strPtr("Arena"),
		Date:            date,
		TicketAvailable: true,
	}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)

	// Nullable fields serialize as explicit null when unset, matching the
	// backend's column semantics.
	for _, want := range []string{
		`"id":7`,
		`"title":"Summer Closing"`,
		`"venue":"Arena"`,
		`"location":null`,
		`"description":null`,
		`"featured_image":null`,
		`"date":"2026-09-12T20:00:00Z"`,
		`"ticket_available":true`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("marshaled event missing %s: %s", want, out)
		}
	}
}

func TestUpdateEventPartialSerialization(t *testing.T) {
	u := UpdateEvent{Title: strPtr("X")}

	data, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// Absent fields must not be serialized at all; sending them would
	// force unrelated columns to null on the backend.
	if string(data) != `{"title":"X"}` {
		t.Errorf("partial update serialized as %s, want only the title field", data)
	}
}

func TestUpdateEventEmptySerialization(t *testing.T) {
	data, err := json.Marshal(UpdateEvent{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{}` {
		t.Errorf("empty update serialized as %s, want {}", data)
	}
}

func TestTicketEnvelopeDecode(t *testing.T) {
	body := `{"success":true,"ticket":{"id":12,"event_id":7,"username":"A","email":"a@b.com","quantity":2,"ticket_type":"VIP","purchased_date":"2026-03-01T10:00:00Z"}}`

	var env TicketEnvelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !env.Success {
		t.Error("expected success flag")
	}
	if env.Ticket.ID != 12 || env.Ticket.EventID != 7 || env.Ticket.Quantity != 2 {
		t.Errorf("unexpected ticket: %+v", env.Ticket)
	}
	if env.Ticket.TicketType != "VIP" {
		t.Errorf("ticket_type = %q, want VIP", env.Ticket.TicketType)
	}
}

func TestGalleryOptionalTimestamps(t *testing.T) {
	var g Gallery
	if err := json.Unmarshal([]byte(`{"id":3,"event_id":1,"title":"Main"}`), &g); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if g.CreatedAt != nil || g.UpdatedAt != nil {
		t.Error("timestamps should stay nil when absent")
	}

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "created_at") {
		t.Errorf("absent created_at must not round-trip: %s", data)
	}
}

func TestReportSummaryDecode(t *testing.T) {
	body := `{
		"counters": {"totalEvents": 3, "ticketsSold": 41, "uniqueBuyers": 28},
		"perEvent": [{"event_id": 7, "title": "Summer", "date": "2026-06-01T19:00:00Z", "tickets_sold": 30, "unique_buyers": 21, "last_purchase_at": "2026-05-30T08:00:00Z"}],
		"daily": [{"day": "2026-05-30", "tickets_sold": 5}]
	}`

	var s ReportSummary
	if err := json.Unmarshal([]byte(body), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if s.Counters.TicketsSold != 41 {
		t.Errorf("ticketsSold = %d", s.Counters.TicketsSold)
	}
	if len(s.PerEvent) != 1 || s.PerEvent[0].EventID != 7 {
		t.Errorf("perEvent = %+v", s.PerEvent)
	}
	if s.PerEvent[0].LastPurchaseAt == nil {
		t.Error("last_purchase_at should decode when present")
	}
	if len(s.Daily) != 1 || s.Daily[0].Day != "2026-05-30" {
		t.Errorf("daily = %+v", s.Daily)
	}
}

func TestIdentityProxyRequestDecode(t *testing.T) {
	body := `{"action":"changeUserPassword","userId":"auth0|abc","newPassword":"n3w-secret"}`

	var req IdentityProxyRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Action != ActionChangeUserPassword || req.UserID != "auth0|abc" {
		t.Errorf("unexpected request: %+v", req)
	}
	if req.UserData != nil {
		t.Error("userData should stay nil when absent")
	}
}

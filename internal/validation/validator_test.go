// StagePass - Event Platform Admin Gateway
// Copyright 2026 StagePass Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stagepass/stagepass

package validation

import (
	"strings"
	"testing"

	"github.com/stagepass/stagepass/internal/models"
)

func TestValidateStructPasses(t *testing.T) {
	payload := models.NewTicket{
		EventID:    7,
		Username:   "A",
		Email:      "a@b.com",
		Quantity:   2,
		TicketType: "VIP",
	}
	if verr := ValidateStruct(&payload); verr != nil {
		t.Errorf("expected valid payload, got %v", verr)
	}
}

func TestValidateStructQuantity(t *testing.T) {
	payload := models.NewTicket{
		EventID:    7,
		Username:   "A",
		Email:      "a@b.com",
		Quantity:   0,
		TicketType: "GA",
	}
	verr := ValidateStruct(&payload)
	if verr == nil {
		t.Fatal("expected validation failure for zero quantity")
	}
	if !strings.Contains(verr.Error(), "Quantity") {
		t.Errorf("error should name the failing field: %v", verr)
	}
}

func TestValidateStructEmail(t *testing.T) {
	payload := models.NewConnectEntry{
		FullName: "B",
		Email:    "not-an-email",
		Contact:  "123",
	}
	verr := ValidateStruct(&payload)
	if verr == nil {
		t.Fatal("expected validation failure for malformed email")
	}
	if !strings.Contains(verr.Error(), "valid email") {
		t.Errorf("unexpected message: %v", verr)
	}
}

func TestValidateStructCollectsAllFailures(t *testing.T) {
	verr := ValidateStruct(&models.NewTicket{})
	if verr == nil {
		t.Fatal("expected validation failure for empty payload")
	}
	if len(verr.Errors()) < 4 {
		t.Errorf("expected failures for every required field, got %d: %v", len(verr.Errors()), verr)
	}
}

func TestValidateStructModeOneOf(t *testing.T) {
	if verr := ValidateStruct(&models.EventsQuery{Mode: "soon"}); verr == nil {
		t.Error("expected failure for unknown mode")
	}
	if verr := ValidateStruct(&models.EventsQuery{Mode: models.ModeUpcoming}); verr != nil {
		t.Errorf("upcoming mode should validate: %v", verr)
	}
	if verr := ValidateStruct(&models.EventsQuery{}); verr != nil {
		t.Errorf("empty mode should validate: %v", verr)
	}
}

func TestValidateStructReportDates(t *testing.T) {
	if verr := ValidateStruct(&models.ReportsQuery{From: "2026-05-30"}); verr != nil {
		t.Errorf("valid date should pass: %v", verr)
	}
	if verr := ValidateStruct(&models.ReportsQuery{From: "30/05/2026"}); verr == nil {
		t.Error("expected failure for non-ISO date")
	}
}

package services

import (
	"strings"
	"testing"

	"github.com/steadyops/facilities-backend/internal/types"
)

func TestEnumToTitle(t *testing.T) {
	cases := map[string]string{
		"PREVENTIVE_MAINTENANCE": "Preventive Maintenance",
		"MASTER_PM":              "Master PM",
		"DAMAGE":                 "Damage",
	}
	for in, want := range cases {
		if got := enumToTitle(in); got != want {
			t.Fatalf("enumToTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTaskLabel(t *testing.T) {
	if got := taskLabel(types.TaskCategoryPreventiveMaintenance); got != "PM" {
		t.Fatalf("expected PM, got %q", got)
	}
	if got := taskLabel(types.TaskCategoryCorrectiveMaintenance); got != "CM" {
		t.Fatalf("expected CM, got %q", got)
	}
	if got := taskLabel(types.TaskCategoryDamage); got != "task" {
		t.Fatalf("expected task, got %q", got)
	}
}

func TestTeamMemberMessagesMentionWorkID(t *testing.T) {
	actor := &types.User{FirstName: "Dana", LastName: "Reyes"}
	pm := &types.PreventiveMaintenance{
		TaskCategory: types.TaskCategoryPreventiveMaintenance,
		WorkID:       "OPS-PM-4",
	}
	added := teamMemberAddedMessage(actor, pm)
	if !strings.Contains(added, "Dana Reyes") || !strings.Contains(added, "OPS-PM-4") {
		t.Fatalf("unexpected message: %q", added)
	}
	removed := teamMemberRemovedMessage(actor, pm)
	if !strings.Contains(removed, "removed") {
		t.Fatalf("unexpected message: %q", removed)
	}
}

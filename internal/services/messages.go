package services

import (
	"fmt"
	"strings"

	"github.com/steadyops/facilities-backend/internal/types"
)

// enumToTitle renders an UPPER_SNAKE enum value as a display title,
// keeping the PM abbreviation capitalized.
func enumToTitle(value string) string {
	words := strings.Split(strings.ToLower(value), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		if w == "pm" {
			words[i] = "PM"
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// taskLabel is the short record label used in notification copy.
func taskLabel(category string) string {
	switch category {
	case types.TaskCategoryPreventiveMaintenance:
		return "PM"
	case types.TaskCategoryCorrectiveMaintenance:
		return "CM"
	default:
		return "task"
	}
}

func teamMemberAddedMessage(actor *types.User, pm *types.PreventiveMaintenance) string {
	return fmt.Sprintf("%s added you as a team member to %s %s", actor.FullName(), enumToTitle(pm.TaskCategory), pm.WorkID)
}

func teamMemberRemovedMessage(actor *types.User, pm *types.PreventiveMaintenance) string {
	return fmt.Sprintf("%s removed you from %s %s", actor.FullName(), enumToTitle(pm.TaskCategory), pm.WorkID)
}

func assigneeAddedMessage(actor *types.User, pm *types.PreventiveMaintenance) string {
	return fmt.Sprintf("%s assigned you to %s %s", actor.FullName(), enumToTitle(pm.TaskCategory), pm.WorkID)
}

func assigneeRemovedMessage(actor *types.User, pm *types.PreventiveMaintenance) string {
	return fmt.Sprintf("%s unassigned you from %s %s", actor.FullName(), enumToTitle(pm.TaskCategory), pm.WorkID)
}

func incidentTeamAddedMessage(actor *types.User, report *types.IncidentReport) string {
	return fmt.Sprintf("%s added you to incident %s", actor.FullName(), report.IncidentID)
}

func incidentTeamRemovedMessage(actor *types.User, report *types.IncidentReport) string {
	return fmt.Sprintf("%s removed you from incident %s", actor.FullName(), report.IncidentID)
}

package mcp

import (
	"github.com/mergington/activities/internal/domain/journal"
	"github.com/mergington/activities/internal/domain/registry"
)

type ListActivitiesParams struct{}

type RosterParams struct {
	ActivityName string `json:"activity_name" jsonschema:"exact activity name as returned by list_activities"`
	Email        string `json:"email" jsonschema:"student email address"`
}

type ActivityHistoryParams struct {
	ActivityName string `json:"activity_name" jsonschema:"exact activity name as returned by list_activities"`
	Email        string `json:"email,omitempty" jsonschema:"only entries for this student email"`
	Type         string `json:"type,omitempty" jsonschema:"only entries of this type: signup or removal"`
	Limit        int    `json:"limit,omitempty" jsonschema:"maximum number of entries to return"`
	Offset       int    `json:"offset,omitempty" jsonschema:"number of newest entries to skip"`
}

// ActivitySummary is one activity as reported by list_activities.
type ActivitySummary struct {
	Name string `json:"name"`
	registry.Activity
	SpotsLeft int `json:"spots_left"`
}

type ListActivitiesResponse struct {
	Activities []ActivitySummary `json:"activities"`
}

type RosterResponse struct {
	Message string `json:"message"`
}

type ActivityHistoryResponse struct {
	Activity string          `json:"activity"`
	Entries  []journal.Entry `json:"entries"`
}

package mcp

import (
	"context"
	"encoding/json"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mergington/activities/internal/domain/journal"
)

func registerTools(server *sdkmcp.Server, cfg Config) {
	t := &tools{registry: cfg.Registry, journal: cfg.Journal}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_activities",
		Description: "List every activity with its description, schedule, capacity and current participants",
	}, t.listActivities)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "signup",
		Description: "Sign a student up for an activity. Fails if the student already holds a spot in any activity",
	}, t.signup)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_participant",
		Description: "Remove a student from an activity's roster",
	}, t.removeParticipant)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "activity_history",
		Description: "Recent signups and removals for an activity, newest first, optionally filtered by student email and entry type",
	}, t.activityHistory)
}

type tools struct {
	registry RegistryService
	journal  JournalService
}

func (t *tools) listActivities(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListActivitiesParams) (*sdkmcp.CallToolResult, any, error) {
	all := t.registry.List(ctx)
	resp := ListActivitiesResponse{Activities: make([]ActivitySummary, 0, len(all))}
	for _, name := range t.registry.Names() {
		a, ok := all[name]
		if !ok {
			continue
		}
		resp.Activities = append(resp.Activities, ActivitySummary{Name: name, Activity: a, SpotsLeft: a.SpotsLeft()})
	}
	return jsonResult(resp), nil, nil
}

func (t *tools) signup(ctx context.Context, _ *sdkmcp.CallToolRequest, params RosterParams) (*sdkmcp.CallToolResult, any, error) {
	receipt, err := t.registry.Signup(ctx, params.ActivityName, params.Email)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(RosterResponse{Message: receipt.Message}), nil, nil
}

func (t *tools) removeParticipant(ctx context.Context, _ *sdkmcp.CallToolRequest, params RosterParams) (*sdkmcp.CallToolResult, any, error) {
	receipt, err := t.registry.Remove(ctx, params.ActivityName, params.Email)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(RosterResponse{Message: receipt.Message}), nil, nil
}

func (t *tools) activityHistory(ctx context.Context, _ *sdkmcp.CallToolRequest, params ActivityHistoryParams) (*sdkmcp.CallToolResult, any, error) {
	if _, err := t.registry.Get(ctx, params.ActivityName); err != nil {
		return errorResult(err), nil, nil
	}
	typ, err := journal.ParseEntryType(params.Type)
	if err != nil {
		return errorResult(err), nil, nil
	}
	resp := ActivityHistoryResponse{Activity: params.ActivityName, Entries: []journal.Entry{}}
	if t.journal != nil {
		entries, err := t.journal.Recent(ctx, journal.ListOptions{
			Activity: params.ActivityName,
			Email:    strings.TrimSpace(params.Email),
			Type:     typ,
			Limit:    params.Limit,
			Offset:   params.Offset,
		})
		if err != nil {
			return errorResult(err), nil, nil
		}
		resp.Entries = entries
	}
	return jsonResult(resp), nil, nil
}

func jsonResult(payload any) *sdkmcp.CallToolResult {
	data, err := json.Marshal(payload)
	if err != nil {
		return errorResult(err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}

func errorResult(err error) *sdkmcp.CallToolResult {
	apiErr := MapError(err)
	data, _ := json.Marshal(apiErr)
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}

package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mergington/activities/internal/domain/journal"
	"github.com/mergington/activities/internal/domain/registry"
)

// RegistryService defines registry operations needed by MCP.
type RegistryService interface {
	List(ctx context.Context) map[string]registry.Activity
	Names() []string
	Get(ctx context.Context, name string) (registry.Activity, error)
	Signup(ctx context.Context, activityName, email string) (registry.Receipt, error)
	Remove(ctx context.Context, activityName, email string) (registry.Receipt, error)
}

// JournalService defines journal operations needed by MCP.
type JournalService interface {
	Recent(ctx context.Context, opts journal.ListOptions) ([]journal.Entry, error)
}

// Config contains server configuration.
type Config struct {
	Registry RegistryService
	Journal  JournalService
	Logger   *slog.Logger
}

const serverInstructions = `Mergington High School extracurricular activities.

- list_activities: every activity with description, schedule, capacity and roster.
- signup: add a student email to an activity. A student may hold a spot in only one activity.
- remove_participant: take a student email off an activity's roster.
- activity_history: recent signups and removals for one activity, newest first.`

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "mergington-activities",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg)

	return server
}

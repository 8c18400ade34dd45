package mcp

import (
	"context"
	"log/slog"

	"waveplan/internal/domain/inventory"
	"waveplan/internal/domain/planner"
	"waveplan/internal/domain/project"
	"waveplan/internal/domain/workspace"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `waveplan is an inventory and dependency-planning tool for IT
migration projects. Compute instances discovered in the source environment are grouped
into applications, applications into move groups (migration waves), and instances can be
tagged with custom properties. Create or pick a project, import an inventory payload,
apply structural edits (move, copy, exclude, property assignment, drag/drop), then
save_project to persist the snapshot. Edits are in-memory until saved.`

// WorkspaceService defines the workspace operations needed by MCP.
type WorkspaceService interface {
	Create(ctx context.Context, req workspace.CreateRequest) (*project.Project, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context) ([]project.Project, error)
	Import(ctx context.Context, projectID string, payload *inventory.Snapshot) (*project.Project, error)
	With(ctx context.Context, projectID string, fn func(*planner.Engine) error) error
	Save(ctx context.Context, projectID string) (*project.Project, error)
	Delete(ctx context.Context, projectID string) error
	Close(projectID string)
}

// Config contains server configuration.
type Config struct {
	Workspace WorkspaceService
	Logger    *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "waveplan",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Workspace)

	return server
}

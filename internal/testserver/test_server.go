package testserver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"waveplan/internal/domain/workspace"
	"waveplan/internal/mcp"
	"waveplan/internal/sqlite"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// TestServer wires the full stack in-process: sqlite storage, the workspace
// service and the MCP server, connected to an SDK client over an in-memory
// transport pair.
type TestServer struct {
	DB        *sqlite.DB
	Workspace *workspace.Service
	Session   *sdkmcp.ClientSession
}

func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	projectRepo := sqlite.NewProjectRepository(db)
	snapshotRepo := sqlite.NewSnapshotRepository(db)
	workspaceSvc := workspace.NewService(projectRepo, snapshotRepo, slog.Default())

	server := mcp.NewServer(mcp.Config{Workspace: workspaceSvc, Logger: slog.Default()})

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()

	ctx := context.Background()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()
		_ = serverSession.Wait()
		_ = db.Close()
	})

	return &TestServer{
		DB:        db,
		Workspace: workspaceSvc,
		Session:   session,
	}
}

package testutil

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/thenoetrevino/dealboard/internal/daemon"
	"github.com/thenoetrevino/dealboard/internal/database"
	"github.com/thenoetrevino/dealboard/internal/remote"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// TestToken is the bearer credential the test store requires
const TestToken = "test-token"

// Seeded ids. Seed creates pipelines, stages and deals in a fixed order on an
// empty database, so these are stable.
const (
	SalesPipeline    types.PipelineID = 1
	RenewalsPipeline types.PipelineID = 2

	LeadStage      types.StageID = 1
	QualifiedStage types.StageID = 2
	ProposalStage  types.StageID = 3
	WonStage       types.StageID = 4
	UpcomingStage  types.StageID = 5

	AcmeDeal     types.DealID = 1
	GlobexDeal   types.DealID = 2
	InitechDeal  types.DealID = 3
	UmbrellaDeal types.DealID = 4
	HooliDeal    types.DealID = 5
	StarkDeal    types.DealID = 6
	WayneDeal    types.DealID = 7
)

// Store is a seeded in-memory database served over HTTP by the daemon
type Store struct {
	Repo   *database.Repository
	Server *daemon.Server
	HTTP   *httptest.Server
	Client *remote.Client
}

// URL is the base url of the served store
func (s *Store) URL() string {
	return s.HTTP.URL
}

// NewStore creates a seeded store. Cleanup is automatic via t.Cleanup().
func NewStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	db, err := database.InitDB(ctx, database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := database.NewRepository(db)
	if err := database.Seed(ctx, repo); err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	srv, err := daemon.NewServer("127.0.0.1:0", repo, daemon.WithToken(TestToken))
	if err != nil {
		t.Fatalf("Failed to create test daemon: %v", err)
	}
	t.Cleanup(func() { _ = srv.Shutdown() })

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client, err := remote.NewClient(ts.URL, remote.WithTokenSource(remote.StaticToken(TestToken)))
	if err != nil {
		t.Fatalf("Failed to create remote client: %v", err)
	}

	return &Store{Repo: repo, Server: srv, HTTP: ts, Client: client}
}

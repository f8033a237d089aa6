package votingregistry

import (
	"log/slog"

	httpadapter "quorum/contexts/governance/voting-registry/adapters/http"
	"quorum/contexts/governance/voting-registry/adapters/memory"
	"quorum/contexts/governance/voting-registry/application/commands"
	"quorum/contexts/governance/voting-registry/application/queries"
	"quorum/contexts/governance/voting-registry/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Sessions ports.SessionRepository
	Members  ports.MemberRepository
	Ballots  ports.BallotRepository
	Outbox   ports.OutboxWriter
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	AdminID  string
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	registry := &commands.RegistryUseCase{
		Sessions: deps.Sessions,
		Members:  deps.Members,
		Ballots:  deps.Ballots,
		Outbox:   deps.Outbox,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		AdminID:  deps.AdminID,
		Logger:   deps.Logger,
	}
	results := queries.ResultsUseCase{
		Sessions: deps.Sessions,
		Members:  deps.Members,
		Ballots:  deps.Ballots,
	}
	return Module{
		Handler: httpadapter.Handler{
			Registry: registry,
			Results:  results,
			Logger:   deps.Logger,
		},
	}
}

func NewInMemoryModule(adminID string, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Sessions: store,
		Members:  store,
		Ballots:  store,
		Outbox:   store,
		Clock:    store,
		IDGen:    store,
		AdminID:  adminID,
		Logger:   logger,
	})
	module.Store = store
	return module
}

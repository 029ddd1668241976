package repository

import (
	"github.com/deppfellow/dispenser-api/internal/config"
	"github.com/deppfellow/dispenser-api/internal/server"
)

// Repositories is the container handed to the service layer.
type Repositories struct {
	Dispenser DispenserRepository
}

// NewRepositories selects the repository implementation matching the
// configured store driver.
func NewRepositories(s *server.Server) *Repositories {
	slow := s.Config.Observability.Logging.SlowQueryThreshold

	var dispensers DispenserRepository
	switch s.Config.Store.Driver {
	case config.StoreDriverPostgres:
		dispensers = NewPostgresRepository(s.DB.Pool, s.Logger, slow)
	default:
		dispensers = NewFirestoreRepository(s.Firestore, s.Logger, slow)
	}

	return &Repositories{Dispenser: dispensers}
}

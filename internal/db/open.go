package db

import (
	"fmt"
	"path/filepath"

	"github.com/existflow/examprep/internal/kv"
)

// Storage backends
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
)

// PathFor returns the database file for a backend inside dataDir
func PathFor(backend, dataDir string) string {
	if backend == BackendBolt {
		return filepath.Join(dataDir, "examprep.bolt")
	}
	return filepath.Join(dataDir, "examprep.db")
}

// OpenStore opens the configured backend in dataDir.
// An empty dataDir means the default ~/.examprep.
func OpenStore(backend, dataDir string) (kv.Store, error) {
	if dataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dataDir = dir
	}

	switch backend {
	case "", BackendSQLite:
		return Open(PathFor(BackendSQLite, dataDir))
	case BackendBolt:
		return OpenBolt(PathFor(BackendBolt, dataDir))
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}

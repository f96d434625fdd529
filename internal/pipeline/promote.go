package pipeline

import (
	"fmt"
	"log"

	"github.com/mkrogh/energy-mlops-go/internal/tracking"
)

// Promote transitions a registered model to the Production stage. Version 0
// selects the latest registered version. Any version of the same model
// already in Production is archived.
func Promote(registry *tracking.Registry, name string, version int) error {
	if version == 0 {
		latest, err := registry.Latest(name)
		if err != nil {
			return err
		}
		if latest == nil {
			return fmt.Errorf("no versions found for %s: %w", name, tracking.ErrNotFound)
		}
		version = latest.Version
	}

	mv, err := registry.Promote(name, version)
	if err != nil {
		return err
	}

	log.Printf("[Promote] %s version %d is now in stage %s (run %s)", mv.Name, mv.Version, mv.Stage, mv.RunID)
	return nil
}

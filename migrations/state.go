package migrations

import "fmt"

// ProjectState resolves models to database tables and decides which database aliases a model may be
// migrated on.
type ProjectState interface {
	// DBTable returns the table backing model.
	DBTable(model string) (string, error)
	// AllowMigrate reports whether model may be migrated on the database identified by alias.
	AllowMigrate(alias, model string) bool
}

// StaticState is a ProjectState backed by a fixed model to table mapping.
type StaticState struct {
	// Tables maps model names to table names.
	Tables map[string]string
	// Aliases restricts migrations to the listed database aliases. Empty allows every alias.
	Aliases []string
}

// DBTable implements ProjectState.
func (s StaticState) DBTable(model string) (string, error) {
	t, ok := s.Tables[model]
	if !ok || t == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}
	return t, nil
}

// AllowMigrate implements ProjectState.
func (s StaticState) AllowMigrate(alias, _ string) bool {
	if len(s.Aliases) == 0 {
		return true
	}
	for _, a := range s.Aliases {
		if a == alias {
			return true
		}
	}
	return false
}

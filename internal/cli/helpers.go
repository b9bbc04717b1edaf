package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/config"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/d42"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/mapper"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/migration"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/resolver"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/source"
)

func newSource(cfg *config.Config) *source.Reader {
	return source.New(source.MySQLConnector(source.MySQLConfig{
		Host:     cfg.Source.Host,
		Port:     cfg.Source.Port,
		Name:     cfg.Source.Name,
		User:     cfg.Source.User,
		Password: cfg.Source.Password,
	}))
}

func newClient(cfg *config.Config) *d42.Client {
	return d42.NewClient(
		cfg.Device42.URL,
		cfg.Device42.User,
		cfg.Device42.Password,
		d42.WithTimeout(cfg.Device42.Timeout),
		d42.WithInsecureTLS(cfg.Device42.InsecureTLS),
	)
}

// newSink returns the Device42 client, or a recorder on dry runs.
func newSink(cfg *config.Config) d42.Sink {
	if cfg.Migration.DryRun {
		return d42.NewRecorder()
	}
	return newClient(cfg)
}

func migrationOptions(cfg *config.Config) migration.Options {
	return migration.Options{
		Hierarchy: resolver.Options{
			RowAsRoom:       cfg.Migration.RowAsRoom,
			ChildAsBuilding: cfg.Migration.ChildAsBuilding,
		},
		CreateAvailableIPs: cfg.Migration.CreateAvailableIPs,
		ZeroU:              mapper.NewZeroUMount(cfg.Migration.PDUMount, cfg.Migration.PDUOrientation),
	}
}

const (
	RunKind = "run"
)

var (
	pluralKinds = map[string]string{
		RunKind: "runs",
	}
)

func parseAndValidateKindId(arg string) (string, *uuid.UUID, error) {
	kind, idStr, _ := strings.Cut(arg, "/")
	kind = singular(kind)
	if _, ok := pluralKinds[kind]; !ok {
		return "", nil, fmt.Errorf("invalid resource kind: %s", kind)
	}
	if len(idStr) == 0 {
		return kind, nil, nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return "", nil, fmt.Errorf("invalid ID: %w", err)
	}
	return kind, &id, nil
}

func singular(kind string) string {
	for singular, plural := range pluralKinds {
		if kind == plural {
			return singular
		}
	}
	return kind
}

func plural(kind string) string {
	return pluralKinds[kind]
}

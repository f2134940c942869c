// Package deploy translates a diagram into Railway resources: data-store
// nodes become database plugins, compute nodes become services, and
// everything purely presentational is skipped.
package deploy

import (
	"strings"

	"buildflow/internal/diagram"
)

// Config is the deployment plan derived from one diagram.
type Config struct {
	ProjectName string           `json:"projectName"`
	Services    []ServiceConfig  `json:"services"`
	Databases   []DatabaseConfig `json:"databases"`
}

type ServiceConfig struct {
	NodeID               string            `json:"nodeId"`
	Name                 string            `json:"name"`
	EnvironmentVariables map[string]string `json:"environmentVariables,omitempty"`

	// NeedsCode marks services created as placeholders: Railway has no
	// source repository to build until the user attaches one.
	NeedsCode bool `json:"needsCode"`
}

type DatabaseConfig struct {
	NodeID string `json:"nodeId"`
	Name   string `json:"name"`
	Plugin string `json:"plugin"`
}

// MapDiagram builds the Railway plan for a diagram. Node types unknown to
// the catalog deploy as plain services rather than failing the whole
// diagram. A service wired by an edge to a database receives a reference
// variable pointing at that database's connection URL.
func MapDiagram(d diagram.Diagram, projectName string) Config {
	cfg := Config{
		ProjectName: projectName,
		Services:    []ServiceConfig{},
		Databases:   []DatabaseConfig{},
	}

	dbNames := make(map[string]string) // node id -> database name
	for _, n := range d.Nodes {
		info, known := diagram.NodeTypeByID(n.Type)
		if known && !info.Deployable {
			continue
		}
		name := slugify(n.Data.Name)
		if name == "" {
			name = slugify(n.ID)
		}
		if known && info.Plugin != "" {
			cfg.Databases = append(cfg.Databases, DatabaseConfig{
				NodeID: n.ID,
				Name:   name,
				Plugin: info.Plugin,
			})
			dbNames[n.ID] = name
			continue
		}
		cfg.Services = append(cfg.Services, ServiceConfig{
			NodeID:    n.ID,
			Name:      name,
			NeedsCode: true,
		})
	}

	for _, e := range d.Edges {
		linkDatabase(&cfg, dbNames, e.Source, e.Target)
		linkDatabase(&cfg, dbNames, e.Target, e.Source)
	}
	return cfg
}

// linkDatabase injects a <DB>_URL reference variable into the service at
// serviceNode when dbNode is a mapped database.
func linkDatabase(cfg *Config, dbNames map[string]string, serviceNode, dbNode string) {
	dbName, ok := dbNames[dbNode]
	if !ok {
		return
	}
	for i := range cfg.Services {
		if cfg.Services[i].NodeID != serviceNode {
			continue
		}
		if cfg.Services[i].EnvironmentVariables == nil {
			cfg.Services[i].EnvironmentVariables = map[string]string{}
		}
		key := envKey(dbName) + "_URL"
		cfg.Services[i].EnvironmentVariables[key] = "${{" + dbName + ".DATABASE_URL}}"
		return
	}
}

// slugify lowers s and collapses every non-alphanumeric run into a single
// hyphen, matching Railway's naming rules.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func envKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_")
}

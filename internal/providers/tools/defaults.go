package tools

import "github.com/sandevgo/truthlens/internal/core"

// NewDefaultRegistry builds the frozen investigator tool set in prompt order:
// records, forensics, propaganda, reputation. Tools from extra providers
// (external MCP servers) follow in the order given.
func NewDefaultRegistry(searchProvider core.SearchProvider, scorer Scorer, extra ...Provider) (*Registry, error) {
	search := NewSearch(searchProvider)
	forensics := NewForensics(scorer)
	propaganda := NewPropaganda()

	byName := map[string]core.Tool{}
	for _, p := range []Provider{search, forensics, propaganda} {
		for _, t := range p.Definitions() {
			byName[t.Name] = t
		}
	}

	r := NewRegistry()
	for _, name := range DefaultOrder {
		if err := r.Register(byName[name]); err != nil {
			return nil, err
		}
	}
	for _, p := range extra {
		if err := r.RegisterAll(p); err != nil {
			return nil, err
		}
	}
	return r.Freeze(), nil
}

var DefaultOrder = []string{
	"search_political_records",
	"check_media_forensics",
	"analyze_propaganda_patterns",
	"analyze_source_reputation",
}

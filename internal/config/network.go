package config

import "sort"

// Network describes one watched bike-share network: where its map page
// lives and which station references were accepted on previous runs.
type Network struct {
	// Name is the network's key in the configuration file.
	// It is filled in by the loader, not the yaml document.
	Name string `yaml:"-"`

	// URL is the public map page carrying the embedded marker payload.
	URL string `yaml:"url"`

	// KnownActive lists station references previously seen operating.
	// This is the baseline the advertised set is diffed against.
	KnownActive []string `yaml:"known_active"`

	// KnownDisused lists station references previously seen advertised
	// but not operative.
	KnownDisused []string `yaml:"known_disused,omitempty"`

	// UserAgent overrides the default User-Agent for this network.
	UserAgent string `yaml:"user_agent,omitempty"`
}

// File represents the structure of the .stationwatch configuration file.
type File struct {
	// Networks maps network names to their definitions.
	Networks map[string]Network `yaml:"networks,omitempty"`

	// Defaults contains settings applied to every network unless
	// overridden per network.
	Defaults Network `yaml:"defaults,omitempty"`
}

// Get returns the named network merged over the defaults.
// The second return value reports whether the network exists.
func (cf *File) Get(name string) (Network, bool) {
	n, ok := cf.Networks[name]
	if !ok {
		return Network{}, false
	}

	result := cf.Defaults
	result.Name = name
	if n.URL != "" {
		result.URL = n.URL
	}
	if len(n.KnownActive) > 0 {
		result.KnownActive = n.KnownActive
	}
	if len(n.KnownDisused) > 0 {
		result.KnownDisused = n.KnownDisused
	}
	if n.UserAgent != "" {
		result.UserAgent = n.UserAgent
	}
	return result, true
}

// All returns every configured network merged over the defaults,
// sorted by name for deterministic iteration.
func (cf *File) All() []Network {
	names := make([]string, 0, len(cf.Networks))
	for name := range cf.Networks {
		names = append(names, name)
	}
	sort.Strings(names)

	networks := make([]Network, 0, len(names))
	for _, name := range names {
		if n, ok := cf.Get(name); ok {
			networks = append(networks, n)
		}
	}
	return networks
}

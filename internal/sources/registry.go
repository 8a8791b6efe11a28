package sources

import (
	"sort"
	"strings"
	"sync"

	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/config"
)

type Factory func(cfg *config.Config) Source

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

func Register(name string, f Factory) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		panic("sources: empty name in Register")
	}
	if f == nil {
		panic("sources: nil factory in Register for " + n)
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[n]; exists {
		panic("sources: duplicate registration for " + n)
	}
	registry[n] = f
}

func Available() map[string]Factory {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make(map[string]Factory, len(registry))
	for k, v := range registry {
		out[k] = v
	}
	return out
}

func AvailableNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Select builds the sources enabled in config, or every registered source
// when the list is empty. Unknown names are ignored with the caller
// expected to have validated them.
func Select(cfg *config.Config) []Source {
	enabled := make(map[string]bool)
	for _, name := range cfg.Sources.EnabledSources {
		n := strings.ToLower(strings.TrimSpace(name))
		if n != "" {
			enabled[n] = true
		}
	}

	var out []Source
	for _, name := range AvailableNames() {
		if len(enabled) == 0 || enabled[name] {
			out = append(out, Available()[name](cfg))
		}
	}
	return out
}

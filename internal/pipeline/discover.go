package pipeline

import (
	"github.com/backmassage/mediamatch/internal/config"
	"github.com/backmassage/mediamatch/internal/naming"
	"github.com/backmassage/mediamatch/internal/scan"
)

// SelectBuckets returns the buckets a run processes: the configured list in
// the given order (duplicates dropped), or every discovered bucket sorted
// when none is configured.
func SelectBuckets(cfg *config.Config) ([]string, error) {
	if len(cfg.Buckets) == 0 {
		return scan.DiscoverBuckets(cfg.CollectionDir, cfg.Media)
	}
	seen := make(map[string]bool, len(cfg.Buckets))
	var out []string
	for _, b := range cfg.Buckets {
		if b == "" || b == naming.UnmatchedDir || seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	return out, nil
}

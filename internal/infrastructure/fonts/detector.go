// Package fonts looks up the font families installed on the system.
package fonts

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"slices"
	"strings"
	"sync"

	"github.com/bnema/legible/internal/logging"
)

// Detector lists installed families using fontconfig's fc-list command.
type Detector struct {
	query func(ctx context.Context) ([]byte, error)

	mu             sync.RWMutex
	cachedFamilies []string
	cachePopulated bool
}

// NewDetector creates a new font detector.
func NewDetector() *Detector {
	return &Detector{query: fcList}
}

// IsAvailable returns true if fc-list command is available on the system.
func (*Detector) IsAvailable(_ context.Context) bool {
	_, err := exec.LookPath("fc-list")
	return err == nil
}

// Families returns the sorted family names installed on the system.
func (d *Detector) Families(ctx context.Context) ([]string, error) {
	log := logging.FromContext(ctx)

	d.mu.RLock()
	if d.cachePopulated {
		families := d.cachedFamilies
		d.mu.RUnlock()
		return families, nil
	}
	d.mu.RUnlock()

	d.mu.Lock()
	defer d.mu.Unlock()

	// Double-check after acquiring write lock.
	if d.cachePopulated {
		return d.cachedFamilies, nil
	}

	output, err := d.query(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("failed to query system fonts")
		return nil, err
	}
	families, err := parseFamilies(output)
	if err != nil {
		return nil, err
	}

	d.cachedFamilies = families
	d.cachePopulated = true
	log.Debug().Int("count", len(families)).Msg("cached system fonts")

	return families, nil
}

// HasFamily reports whether family is installed. Names compare
// case-insensitively, as fontconfig matches them.
func (d *Detector) HasFamily(ctx context.Context, family string) (bool, error) {
	families, err := d.Families(ctx)
	if err != nil {
		return false, err
	}
	return slices.ContainsFunc(families, func(f string) bool {
		return strings.EqualFold(f, family)
	}), nil
}

func fcList(ctx context.Context) ([]byte, error) {
	return exec.CommandContext(ctx, "fc-list", ":", "family").Output()
}

// parseFamilies reads fc-list output, one font per line.
func parseFamilies(output []byte) ([]string, error) {
	familySet := make(map[string]struct{})
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		// Fonts with aliases list every family, e.g. "DejaVu Sans,DejaVu Sans Light".
		for family := range strings.SplitSeq(scanner.Text(), ",") {
			if family = strings.TrimSpace(family); family != "" {
				familySet[family] = struct{}{}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	families := make([]string, 0, len(familySet))
	for family := range familySet {
		families = append(families, family)
	}
	slices.Sort(families)
	return families, nil
}

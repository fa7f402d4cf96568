package settings

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aioutlet/sku-service/internal/models"
	"github.com/aioutlet/sku-service/internal/repository"
	"go.uber.org/zap"
)

const (
	// CurrentVersion is the options layout written by this release
	CurrentVersion = "2.0.0"
	// unversionedInstall is assumed when no version option is stored
	unversionedInstall = "1.2.2"
)

// Migration upgrades stored options to Version
type Migration struct {
	Version     string
	Description string
	Apply       func(ctx context.Context, repo repository.OptionsRepository, values map[string]string) error
}

// DefaultMigrations returns every known options migration
func DefaultMigrations() []Migration {
	return []Migration{
		{
			Version:     "2.0.0",
			Description: "split the legacy select option into simple and variant modes",
			Apply:       splitLegacySelect,
		},
	}
}

// Migrator applies pending migrations and installs missing options
type Migrator struct {
	repo       repository.OptionsRepository
	migrations []Migration
	defaults   models.GenerationConfig
	logger     *zap.Logger
}

// NewMigrator creates a migrator. Migrations run in ascending version order.
func NewMigrator(repo repository.OptionsRepository, migrations []Migration, defaults models.GenerationConfig, logger *zap.Logger) *Migrator {
	sorted := make([]Migration, len(migrations))
	copy(sorted, migrations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return CompareVersions(sorted[i].Version, sorted[j].Version) < 0
	})

	return &Migrator{
		repo:       repo,
		migrations: sorted,
		defaults:   defaults,
		logger:     logger,
	}
}

// Run applies every migration newer than the stored version and returns the
// versions it applied.
func (m *Migrator) Run(ctx context.Context) ([]string, error) {
	values, err := m.repo.GetOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}

	installed := values[OptionVersion]
	if installed == "" {
		installed = unversionedInstall
	}
	target := installed
	if CompareVersions(CurrentVersion, target) > 0 {
		target = CurrentVersion
	}

	var applied []string
	for _, migration := range m.migrations {
		if CompareVersions(migration.Version, installed) <= 0 {
			continue
		}

		m.logger.Info("Applying sku options migration",
			zap.String("from", installed),
			zap.String("version", migration.Version),
			zap.String("description", migration.Description))

		if err := migration.Apply(ctx, m.repo, values); err != nil {
			return applied, fmt.Errorf("migration %s failed: %w", migration.Version, err)
		}
		applied = append(applied, migration.Version)

		if CompareVersions(migration.Version, target) > 0 {
			target = migration.Version
		}

		// next migration sees what this one wrote
		values, err = m.repo.GetOptions(ctx)
		if err != nil {
			return applied, fmt.Errorf("failed to read options: %w", err)
		}
	}

	missing := make(map[string]string)
	for option, value := range Encode(m.defaults) {
		if _, ok := values[option]; !ok {
			missing[option] = value
		}
	}
	if values[OptionVersion] != target {
		missing[OptionVersion] = target
	}

	if len(missing) > 0 {
		if err := m.repo.SetOptions(ctx, missing); err != nil {
			return applied, fmt.Errorf("failed to install default options: %w", err)
		}
	}

	if len(applied) > 0 || len(missing) > 0 {
		m.logger.Info("SKU options up to date",
			zap.String("version", target),
			zap.Strings("applied", applied),
			zap.Int("installed", len(missing)))
	}

	return applied, nil
}

// splitLegacySelect maps the single pre-2.0.0 mode option onto the separate
// simple and variant modes, then removes it.
func splitLegacySelect(ctx context.Context, repo repository.OptionsRepository, values map[string]string) error {
	legacy, ok := values[OptionLegacySelect]
	if !ok {
		return nil
	}

	updates := make(map[string]string)
	switch normalize(legacy) {
	case "all":
		updates[OptionSimpleMode] = string(models.SimpleModeSlug)
		updates[OptionVariantMode] = string(models.VariantModeAttributes)
	case "simple":
		updates[OptionSimpleMode] = string(models.SimpleModeSlug)
		updates[OptionVariantMode] = string(models.VariantModeNone)
	case "variations":
		updates[OptionSimpleMode] = string(models.SimpleModeNone)
		updates[OptionVariantMode] = string(models.VariantModeAttributes)
	}

	if len(updates) > 0 {
		if err := repo.SetOptions(ctx, updates); err != nil {
			return err
		}
	}
	return repo.DeleteOptions(ctx, OptionLegacySelect)
}

// CompareVersions compares dotted version strings part by part. Numeric
// parts compare as numbers, missing parts count as zero.
func CompareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	for i := 0; i < len(as) || i < len(bs); i++ {
		var ap, bp string
		if i < len(as) {
			ap = as[i]
		}
		if i < len(bs) {
			bp = bs[i]
		}
		if c := comparePart(ap, bp); c != 0 {
			return c
		}
	}
	return 0
}

func comparePart(a, b string) int {
	if a == "" {
		a = "0"
	}
	if b == "" {
		b = "0"
	}

	an, aErr := strconv.Atoi(a)
	bn, bErr := strconv.Atoi(b)
	if aErr == nil && bErr == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}

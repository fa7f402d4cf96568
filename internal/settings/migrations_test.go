package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/aioutlet/sku-service/internal/mocks"
	"github.com/aioutlet/sku-service/internal/models"
	"github.com/aioutlet/sku-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// withVersion returns the default options plus the current version
func withVersion(values map[string]string) map[string]string {
	out := Encode(models.DefaultGenerationConfig())
	for k, v := range values {
		out[k] = v
	}
	out[OptionVersion] = CurrentVersion
	return out
}

func TestMigrator_LegacySelect(t *testing.T) {
	tests := []struct {
		name            string
		legacy          string
		expectedUpdates map[string]string
	}{
		{
			name:   "All products",
			legacy: "all",
			expectedUpdates: map[string]string{
				OptionSimpleMode:  "slug",
				OptionVariantMode: "attributes",
			},
		},
		{
			name:   "Simple products only",
			legacy: "simple",
			expectedUpdates: map[string]string{
				OptionSimpleMode:  "slug",
				OptionVariantMode: "none",
			},
		},
		{
			name:   "Variations only",
			legacy: "variations",
			expectedUpdates: map[string]string{
				OptionSimpleMode:  "none",
				OptionVariantMode: "attributes",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockOptionsRepository{}
			repo.On("GetOptions", mock.Anything).Return(map[string]string{OptionLegacySelect: tt.legacy}, nil).Once()
			repo.On("SetOptions", mock.Anything, tt.expectedUpdates).Return(nil).Once()
			repo.On("DeleteOptions", mock.Anything, []string{OptionLegacySelect}).Return(nil).Once()
			repo.On("GetOptions", mock.Anything).Return(tt.expectedUpdates, nil).Once()
			repo.On("SetOptions", mock.Anything, mock.MatchedBy(func(values map[string]string) bool {
				_, touchesModes := values[OptionSimpleMode]
				return values[OptionVersion] == CurrentVersion && !touchesModes
			})).Return(nil).Once()

			migrator := NewMigrator(repo, DefaultMigrations(), models.DefaultGenerationConfig(), zap.NewNop())
			applied, err := migrator.Run(context.Background())

			require.NoError(t, err)
			assert.Equal(t, []string{"2.0.0"}, applied)
			repo.AssertExpectations(t)
		})
	}
}

func TestMigrator_FreshInstall(t *testing.T) {
	repo := &mocks.MockOptionsRepository{}
	repo.On("GetOptions", mock.Anything).Return(map[string]string{}, nil)
	repo.On("DeleteOptions", mock.Anything, []string{OptionLegacySelect}).Return(nil).Maybe()

	expected := withVersion(nil)
	repo.On("SetOptions", mock.Anything, expected).Return(nil).Once()

	migrator := NewMigrator(repo, DefaultMigrations(), models.DefaultGenerationConfig(), zap.NewNop())
	applied, err := migrator.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"2.0.0"}, applied)
	repo.AssertExpectations(t)
}

func TestMigrator_UpToDate(t *testing.T) {
	repo := &mocks.MockOptionsRepository{}
	repo.On("GetOptions", mock.Anything).Return(withVersion(nil), nil)

	migrator := NewMigrator(repo, DefaultMigrations(), models.DefaultGenerationConfig(), zap.NewNop())
	applied, err := migrator.Run(context.Background())

	require.NoError(t, err)
	assert.Empty(t, applied)
	repo.AssertNotCalled(t, "SetOptions", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "DeleteOptions", mock.Anything, mock.Anything)
}

func TestMigrator_KeepsStoredValues(t *testing.T) {
	stored := withVersion(map[string]string{OptionSimpleMode: "id"})
	delete(stored, OptionSeparator)

	repo := &mocks.MockOptionsRepository{}
	repo.On("GetOptions", mock.Anything).Return(stored, nil)
	repo.On("SetOptions", mock.Anything, map[string]string{OptionSeparator: "-"}).Return(nil).Once()

	migrator := NewMigrator(repo, DefaultMigrations(), models.DefaultGenerationConfig(), zap.NewNop())
	_, err := migrator.Run(context.Background())

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestMigrator_OrderAndFailure(t *testing.T) {
	var order []string
	record := func(version string, err error) Migration {
		return Migration{
			Version: version,
			Apply: func(ctx context.Context, repo repository.OptionsRepository, values map[string]string) error {
				order = append(order, version)
				return err
			},
		}
	}

	repo := &mocks.MockOptionsRepository{}
	repo.On("GetOptions", mock.Anything).Return(map[string]string{OptionVersion: "2.0.0"}, nil)

	migrations := []Migration{
		record("2.10.0", errors.New("boom")),
		record("2.2.0", nil),
		record("1.9.0", nil),
	}

	migrator := NewMigrator(repo, migrations, models.DefaultGenerationConfig(), zap.NewNop())
	applied, err := migrator.Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, []string{"2.2.0", "2.10.0"}, order)
	assert.Equal(t, []string{"2.2.0"}, applied)
	repo.AssertNotCalled(t, "SetOptions", mock.Anything, mock.Anything)
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"1.2.2", "2.0.0", -1},
		{"2.0.0", "2.0.0", 0},
		{"2.0", "2.0.0", 0},
		{"2.10.0", "2.9.1", 1},
		{"10.0.0", "9.9.9", 1},
		{"2.0.0-beta", "2.0.0-alpha", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompareVersions(tt.a, tt.b))
		})
	}
}

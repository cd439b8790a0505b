package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	require.NoError(t, c.Validate())
	assert.Equal(t, Version, c.Version)
	assert.Equal(t, 13, c.Len())
	assert.Equal(t, "welcome", c.Steps[0].ID)
	assert.False(t, c.Steps[0].HasTarget(), "welcome step is centered")
	assert.Equal(t, "notes", c.Steps[12].ID)

	for _, s := range c.Steps {
		assert.NotEmpty(t, s.Title, s.ID)
		assert.NotEmpty(t, s.Description, s.ID)
		assert.NotEmpty(t, s.Icon, s.ID)
	}
}

func TestDefault_UniqueIDs(t *testing.T) {
	ids := Default().IDs()
	seen := make(map[string]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestDefault_IsACopy(t *testing.T) {
	c := Default()
	c.Steps[0].Title = "changed"

	assert.Equal(t, "Welcome to ST.AIRS", Default().Steps[0].Title)
}

func TestCatalog_Validate(t *testing.T) {
	tests := []struct {
		name    string
		catalog *Catalog
		wantErr error
	}{
		{
			name:    "valid",
			catalog: New(1, []Step{{ID: "a"}, {ID: "b"}}),
		},
		{
			name:    "empty catalog is valid",
			catalog: New(1, nil),
		},
		{
			name:    "zero version",
			catalog: New(0, []Step{{ID: "a"}}),
			wantErr: ErrInvalidCatalog,
		},
		{
			name:    "empty id",
			catalog: New(1, []Step{{ID: "a"}, {ID: ""}}),
			wantErr: ErrInvalidCatalog,
		},
		{
			name:    "duplicate id",
			catalog: New(1, []Step{{ID: "a"}, {ID: "b"}, {ID: "a"}}),
			wantErr: ErrDuplicateStepID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.catalog.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCatalog_FeatureKeys(t *testing.T) {
	c := Default()

	keys := c.FeatureKeys()
	assert.Len(t, keys, 12, "every step but welcome tracks a feature")
	assert.Equal(t, "strategy_landing", keys[0])
	assert.True(t, c.HasFeature("notes"))
	assert.False(t, c.HasFeature("unknown"))
	assert.False(t, c.HasFeature(""))

	assert.Empty(t, New(1, []Step{{ID: "a"}}).FeatureKeys())
}

func TestCatalog_LookupAndFilter(t *testing.T) {
	c := Default()

	s := c.Lookup("export")
	require.NotNil(t, s)
	assert.Equal(t, "[data-tutorial='export-btn']", s.Selector)
	assert.Nil(t, c.Lookup("missing"))

	centered := c.Filter(func(s Step) bool { return !s.HasTarget() })
	require.Len(t, centered, 1)
	assert.Equal(t, "welcome", centered[0].ID)
}

func TestReadFromFile_YAML(t *testing.T) {
	c, err := ReadFromFile(filepath.Join("testdata", "valid.yaml"))

	require.NoError(t, err)
	assert.Equal(t, 2, c.Version)
	require.Len(t, c.Steps, 3)
	assert.Equal(t, "welcome", c.Steps[0].ID)
	assert.Empty(t, c.Steps[0].Selector)
	assert.Equal(t, "[data-tutorial='nav-notes']", c.Steps[1].Selector)
	assert.Equal(t, "notes", c.Steps[1].FeatureKey)
	assert.Equal(t, []string{"notes", "export"}, c.FeatureKeys())
}

func TestReadFromFile_DuplicateIDs(t *testing.T) {
	c, err := ReadFromFile(filepath.Join("testdata", "duplicate.yaml"))

	assert.ErrorIs(t, err, ErrDuplicateStepID)
	assert.Nil(t, c)
}

func TestReadFromFile_CSV(t *testing.T) {
	c, err := ReadFromFile(filepath.Join("testdata", "valid.csv"))

	require.NoError(t, err)
	assert.Equal(t, 3, c.Version)
	require.Len(t, c.Steps, 2)
	assert.Equal(t, "Pin key insights.", c.Steps[1].Description)
	assert.Equal(t, "[data-tutorial='nav-notes']", c.Steps[1].Selector)
	assert.Equal(t, "notes", c.Steps[1].FeatureKey)
}

func TestReadFromFile_Errors(t *testing.T) {
	tests := []struct {
		name         string
		file         string
		wantContains string
	}{
		{"not found", "nonexistent.yaml", "failed to read catalog"},
		{"missing column", "missing_column.csv", "missing required column: title"},
		{"header only", "header_only.csv", "no steps"},
		{"unsupported extension", "catalog.json", "unsupported catalog format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ReadFromFile(filepath.Join("testdata", tt.file))

			require.Error(t, err)
			assert.Nil(t, c)
			assert.Contains(t, err.Error(), tt.wantContains)
		})
	}
}

func TestReadFromString(t *testing.T) {
	data := `id,title
a,First
b,Second`

	c, err := ReadFromString(data)

	require.NoError(t, err)
	assert.Equal(t, 1, c.Version, "version defaults to 1 without a directive")
	assert.Equal(t, []string{"a", "b"}, c.IDs())
}

func TestReadFromString_BadVersion(t *testing.T) {
	_, err := ReadFromString("# version: two\nid,title\na,A\n")

	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestStepIDs(t *testing.T) {
	assert.Equal(t, []string{}, StepIDs(nil))
	assert.Equal(t, []string{"x", "y"}, StepIDs([]Step{{ID: "x"}, {ID: "y"}}))
}

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	f, err := LoadFile(filepath.Join("testdata", "catalog.toml"))
	require.NoError(t, err)

	require.Len(t, f.Products, 2)
	assert.Equal(t, "ACM Acme Rockets", f.Products[0].Name)
	assert.Equal(t, "AC01", f.Products[0].Extension.Code2)
	assert.Equal(t, []string{"MOON", "MARS"}, f.Rules["ACM Acme Rockets"].Coverages)

	s := f.Store()

	_, _, err = s.UpdateByID(10, Patch{Coverage: ptr("MARS")})
	require.NoError(t, err)

	_, _, err = s.UpdateByID(10, Patch{Coverage: ptr("SUN")})
	assert.EqualError(t, err, "Invalid coverage 'SUN' for product 'ACM Acme Rockets'. Valid coverages: MOON, MARS")

	// no rule for the second product
	_, _, err = s.UpdateByName("ZEN Zen Garden", Patch{Coverage: ptr("ROCKS")})
	assert.NoError(t, err)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseFile_Invalid(t *testing.T) {
	const product = `
[[product]]
id = 1
name = "A"
section = "S"
subsection = "SS"
coverage = "C"
[product.extension]
code1 = "1"
code2 = "2"
code3 = "3"
`

	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{
			name:    "not toml",
			raw:     "[[product]\nid = ",
			wantErr: "parse catalog file",
		},
		{
			name:    "unknown field",
			raw:     product + "price = 10\n",
			wantErr: "parse catalog file",
		},
		{
			name:    "no products",
			raw:     "# nothing\n",
			wantErr: "Products: failed required",
		},
		{
			name:    "missing coverage",
			raw:     "[[product]]\nid = 2\nname = \"B\"\nsection = \"S\"\nsubsection = \"SS\"\n[product.extension]\ncode1 = \"1\"\ncode2 = \"2\"\ncode3 = \"3\"\n",
			wantErr: "Products[0].Coverage: failed required",
		},
		{
			name:    "non positive id",
			raw:     product + "[[product]]\nid = 0\nname = \"B\"\nsection = \"S\"\nsubsection = \"SS\"\ncoverage = \"C\"\n[product.extension]\ncode1 = \"1\"\ncode2 = \"2\"\ncode3 = \"3\"\n",
			wantErr: "Products[1].ID: failed gt=0",
		},
		{
			name:    "duplicate id",
			raw:     product + product,
			wantErr: "failed unique=ID",
		},
		{
			name:    "rule without coverages",
			raw:     product + "[rules.A]\nsections = [\"S\"]\nsubsections = [\"SS\"]\n[rules.A.extensions]\ncode1 = [\"1\"]\ncode2 = [\"2\"]\ncode3 = [\"3\"]\n",
			wantErr: "Coverages: failed required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFile([]byte(tt.raw))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

package store

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	inverrors "github.com/abgdnv/inventory/internal/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "id,name,desc,price,quantity\n"

func writeTestFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func Test_Inventory_SaveLoadRoundTrip(t *testing.T) {
	// given
	products := []Product{
		NewProduct(3, "Pen", "Blue ink pen", 1.5, 100),
		NewProduct(1, "Notebook, A5", `Ruled "college" pages`, 3.2, 50),
		NewProduct(10, "Eraser", "", 0, 0),
		NewProduct(4, "Kalkylator", "Räknar åt dig\nmed två rader", 1234.5678, 2),
		NewProduct(2, "Dust", "", 0.1, 1),
	}
	saved := newTestInventory(products...)
	path := filepath.Join(t.TempDir(), "products.csv")

	// when
	require.NoError(t, saved.Save(path))
	loaded := NewInventory()
	require.NoError(t, loaded.Load(path))

	// then
	if diff := cmp.Diff(products, loaded.FindAll()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func Test_Inventory_SaveFormat(t *testing.T) {
	s := newTestInventory(
		NewProduct(1, "Pen", "Blue ink pen", 1.5, 100),
		NewProduct(2, "Notebook", "A5 ruled", 3.2, 50),
	)
	path := filepath.Join(t.TempDir(), "products.csv")

	require.NoError(t, s.Save(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, header+
		"1,Pen,Blue ink pen,1.5,100\n"+
		"2,Notebook,A5 ruled,3.2,50\n", string(content))
}

func Test_Inventory_SaveOverwrites(t *testing.T) {
	path := writeTestFile(t, header+"1,Old,,1,1\n2,Older,,2,2\n3,Oldest,,3,3\n")
	s := newTestInventory(NewProduct(9, "New", "", 9, 9))

	require.NoError(t, s.Save(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, header+"9,New,,9,9\n", string(content))
}

func Test_Inventory_SaveEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")

	require.NoError(t, NewInventory().Save(path))

	loaded := newTestInventory(Product{ID: 1})
	require.NoError(t, loaded.Load(path))
	assert.Equal(t, 0, loaded.Len())
}

func Test_Inventory_Load(t *testing.T) {
	path := writeTestFile(t, header+
		"1,Pen,Blue ink pen,1.50,100\n"+
		"7, Stapler ,Heavy duty, 19.99 , 4\n")
	s := newTestInventory(NewProduct(99, "Stale", "", 1, 1))

	require.NoError(t, s.Load(path))

	assert.Equal(t, []Product{
		NewProduct(1, "Pen", "Blue ink pen", 1.5, 100),
		NewProduct(7, " Stapler ", "Heavy duty", 19.99, 4),
	}, s.FindAll(), "load replaces previous contents")
}

func Test_Inventory_Load_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		content     string
		expectError error
		row         int
		column      string
	}{
		{
			name:        "Non-numeric price",
			content:     header + "1,Pen,Blue ink pen,1.50,100\n2,Ink,Black,cheap,5\n",
			expectError: strconv.ErrSyntax,
			row:         2,
			column:      "price",
		},
		{
			name:        "Non-integer quantity",
			content:     header + "1,Pen,Blue ink pen,1.50,1.5\n",
			expectError: strconv.ErrSyntax,
			row:         1,
			column:      "quantity",
		},
		{
			name:        "Non-integer id",
			content:     header + "one,Pen,Blue ink pen,1.50,100\n",
			expectError: strconv.ErrSyntax,
			row:         1,
			column:      "id",
		},
		{
			name:        "NaN price",
			content:     header + "1,Pen,Blue ink pen,NaN,100\n",
			expectError: strconv.ErrSyntax,
			row:         1,
			column:      "price",
		},
		{
			name:        "Missing price column",
			content:     "id,name,desc,quantity\n1,Pen,Blue ink pen,100\n",
			expectError: errMissingValue,
			row:         1,
			column:      "price",
		},
		{
			name:        "Empty quantity cell",
			content:     header + "1,Pen,Blue ink pen,1.50,\n",
			expectError: errMissingValue,
			row:         1,
			column:      "quantity",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			before := []Product{NewProduct(5, "Kept", "", 2, 2)}
			s := newTestInventory(before...)
			path := writeTestFile(t, tc.content)
			// when
			err := s.Load(path)
			// then
			require.ErrorIs(t, err, inverrors.ErrParse)
			assert.ErrorIs(t, err, tc.expectError)
			var parseErr *inverrors.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tc.row, parseErr.Row)
			assert.Equal(t, tc.column, parseErr.Column)
			assert.Equal(t, before, s.FindAll(), "store must keep its prior contents")
		})
	}
}

func Test_Inventory_Load_HeaderOnly(t *testing.T) {
	path := writeTestFile(t, header)
	s := newTestInventory(Product{ID: 1})

	require.NoError(t, s.Load(path))

	assert.Equal(t, 0, s.Len())
}

func Test_Inventory_Load_EmptyFile(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "Zero bytes", content: ""},
		{name: "Blank lines", content: "\n\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			path := writeTestFile(t, tc.content)
			s := newTestInventory(Product{ID: 1})
			// when
			err := s.Load(path)
			// then
			require.NoError(t, err)
			assert.Equal(t, 0, s.Len())
			assert.Equal(t, 1, s.NextID())
		})
	}
}

func Test_Inventory_Load_MissingFile(t *testing.T) {
	before := []Product{NewProduct(5, "Kept", "", 2, 2)}
	s := newTestInventory(before...)

	err := s.Load(filepath.Join(t.TempDir(), "absent.csv"))

	require.ErrorIs(t, err, inverrors.ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, before, s.FindAll())
}

func Test_Inventory_Save_MissingDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "absent", "products.csv")
	s := newTestInventory(NewProduct(1, "Pen", "", 1, 1))

	err := s.Save(path)

	require.ErrorIs(t, err, inverrors.ErrIO)
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "no temporary files are left behind")
}

func Test_Inventory_Save_FailureKeepsPreviousFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	original := header + "1,Pen,Blue ink pen,1.5,100\n"
	path := writeTestFile(t, original)
	dir := filepath.Dir(path)
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })
	s := newTestInventory(NewProduct(2, "Ink", "", 4, 3))

	err := s.Save(path)

	require.ErrorIs(t, err, inverrors.ErrIO)
	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, original, string(content))
}

func Test_Inventory_Save_ReplaceFailureKeepsTarget(t *testing.T) {
	// given
	dir := t.TempDir()
	path := filepath.Join(dir, "products.csv")
	require.NoError(t, os.Mkdir(path, 0o755))
	kept := filepath.Join(path, "kept.txt")
	require.NoError(t, os.WriteFile(kept, []byte("kept"), 0o644))
	s := newTestInventory(NewProduct(1, "Pen", "", 1, 1))

	// when
	err := s.Save(path)

	// then
	require.ErrorIs(t, err, inverrors.ErrIO)
	content, readErr := os.ReadFile(kept)
	require.NoError(t, readErr)
	assert.Equal(t, "kept", string(content))
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	require.Len(t, entries, 1, "no temporary files are left behind")
	assert.Equal(t, "products.csv", entries[0].Name())
}

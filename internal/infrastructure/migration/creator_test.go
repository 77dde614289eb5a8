package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"add payment reference", "add_payment_reference"},
		{"Add-Payment-Reference", "add_payment_reference"},
		{"ADD_PAYMENT_REFERENCE", "add_payment_reference"},
		{"add__payment__reference", "add_payment_reference"},
		{"Seed Creditors 01", "seed_creditors_01"},
		{"   padded   ", "padded"},
		{"drop!@#$table", "droptable"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, sanitizeName(tc.in))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "add payment reference", "Add reference column to payments")
	require.NoError(t, err)
	require.NotNil(t, mf)

	assert.Len(t, mf.Version, 14, "version is a YYYYMMDDHHMMSS timestamp")
	assert.Equal(t, "add_payment_reference", mf.Name)

	upBase := strings.TrimSuffix(filepath.Base(mf.UpPath), ".up.sql")
	downBase := strings.TrimSuffix(filepath.Base(mf.DownPath), ".down.sql")
	assert.Equal(t, upBase, downBase)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "add_payment_reference")
	assert.Contains(t, string(up), "Add reference column to payments")
	assert.Contains(t, string(up), "Forward migration goes here")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "Reverts: Add reference column to payments")
	assert.Contains(t, string(down), "Rollback goes here")
}

func TestCreateMigrationWithoutDescription(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "init", "")
	require.NoError(t, err)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.NotContains(t, string(up), "Reverts:")
}

func TestCreateMigrationCreatesDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "db", "migrations")

	_, err := CreateMigration(nested, "init schema", "")
	require.NoError(t, err)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	files := []string{
		"000002_add_creditors.up.sql",
		"000002_add_creditors.down.sql",
		"000001_create_payments.up.sql",
		"000001_create_payments.down.sql",
		"000003_add_debtors.up.sql",
		"000003_add_debtors.down.sql",
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("-- sql"), 0o644))
	}

	got, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"000001_create_payments",
		"000002_add_creditors",
		"000003_add_debtors",
	}, got, "one entry per pair, ordered by version")
}

func TestListMigrationsEmptyDirectory(t *testing.T) {
	got, err := ListMigrations(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListMigrationsMissingDirectory(t *testing.T) {
	got, err := ListMigrations(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListMigrationsSkipsOtherFiles(t *testing.T) {
	dir := t.TempDir()

	for _, f := range []string{
		"000001_create_payments.up.sql",
		"000001_create_payments.down.sql",
		"README.md",
		".gitkeep",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.up.sql"), 0o755))

	got, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_create_payments"}, got)
}

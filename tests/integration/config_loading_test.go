package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoading_InitWritesDefaults(t *testing.T) {
	env := NewTestEnv(t)

	res := env.MustRunShelf("init")
	assert.Contains(t, res.Stdout, "Wrote ")

	data, err := os.ReadFile(filepath.Join(env.Config, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "late_days: 14")
}

func TestConfigLoading_Precedence(t *testing.T) {
	seedLine := `{"op":"book","isbn":"1","title":"Dune","author":"Herbert","year":1965,"copies":1}` + "\n" +
		`{"op":"customer","name":"Alice"}` + "\n" +
		`{"op":"borrow","isbn":"1","customer_id":1,"borrowed_at":"2020-01-01T00:00:00Z"}` + "\n"

	t.Run("seed_file from config.yaml", func(t *testing.T) {
		env := NewTestEnv(t)
		seed := env.WriteFile("seed.jsonl", seedLine)
		require.NoError(t, os.MkdirAll(env.Config, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(env.Config, "config.yaml"),
			[]byte("seed_file: "+seed+"\n"), 0o644))

		res := env.MustRunShelf("late")
		assert.Contains(t, res.Stdout, "Customer Alice has a late return: Dune")
	})

	t.Run("SHELF_LATE_DAYS env overrides config", func(t *testing.T) {
		env := NewTestEnv(t)
		seed := env.WriteFile("seed.jsonl", seedLine)
		env.Env = append(env.Env, "SHELF_LATE_DAYS=1000000")

		res := env.MustRunShelf("--seed", seed, "late")
		assert.Equal(t, "No late returns\n", res.Stdout)
	})

	t.Run(".env in working directory", func(t *testing.T) {
		env := NewTestEnv(t)
		seed := env.WriteFile("seed.jsonl", seedLine)
		env.WriteFile(".env", "SHELF_SEED_FILE="+seed+"\nSHELF_LATE_DAYS=1000000\n")

		res := env.MustRunShelf("late")
		assert.Equal(t, "No late returns\n", res.Stdout)

		res = env.MustRunShelf("search", "Dune")
		assert.Equal(t, "Dune by Herbert (1965)\n", res.Stdout)
	})

	t.Run("--days flag wins", func(t *testing.T) {
		env := NewTestEnv(t)
		seed := env.WriteFile("seed.jsonl", seedLine)
		env.Env = append(env.Env, "SHELF_LATE_DAYS=1000000")

		res := env.MustRunShelf("--seed", seed, "late", "--days", "1")
		assert.Contains(t, res.Stdout, "Customer Alice has a late return: Dune")
	})

	t.Run("invalid late_days is a usage error", func(t *testing.T) {
		env := NewTestEnv(t)
		env.Env = append(env.Env, "SHELF_LATE_DAYS=-3")

		res := env.RunShelf("", "available")
		assert.Equal(t, 1, res.ExitCode)
		assert.Contains(t, res.Stderr, "late_days must not be negative")
	})

	t.Run("non-numeric late_days is a usage error", func(t *testing.T) {
		env := NewTestEnv(t)
		env.Env = append(env.Env, "SHELF_LATE_DAYS=fourteen")

		res := env.RunShelf("", "late")
		assert.Equal(t, 1, res.ExitCode)
		assert.Contains(t, res.Stderr, "is not a number")
	})

	t.Run("export_path in config.yaml wins over SHELF_EXPORT_PATH", func(t *testing.T) {
		env := NewTestEnv(t)
		fromConfig := filepath.Join(env.WorkDir, "from-config.db")
		fromEnv := filepath.Join(env.WorkDir, "from-env.db")
		require.NoError(t, os.MkdirAll(env.Config, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(env.Config, "config.yaml"),
			[]byte("export_path: "+fromConfig+"\n"), 0o644))
		env.Env = append(env.Env, "SHELF_EXPORT_PATH="+fromEnv)

		env.MustRunShelf("export")
		assert.FileExists(t, fromConfig)
		assert.NoFileExists(t, fromEnv)
	})
}

package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitscribe/gitscribe/internal/build"
	"github.com/gitscribe/gitscribe/internal/commit"
	"github.com/gitscribe/gitscribe/internal/config"
	clierrors "github.com/gitscribe/gitscribe/internal/errors"
	"github.com/gitscribe/gitscribe/internal/testutil"
	"github.com/gitscribe/gitscribe/internal/version"
)

const testConfig = `version: 1.2.3
project_repo: https://github.com/acme/widget
changelog_outputs:
  - template: markdown
    path: CHANGELOG.md
history_source: go-git
`

func TestRootCmd_Structure(t *testing.T) {
	assert.Equal(t, "gitscribe", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotEmpty(t, rootCmd.Example)

	for _, flag := range []string{"config", "debug"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), "flag %s should exist", flag)
	}

	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}
	for _, name := range []string{"init", "patch", "minor", "major", "preview", "version"} {
		assert.True(t, registered[name], "command %s should be registered", name)
	}
}

func TestBumpCmd_Flags(t *testing.T) {
	for _, d := range version.Designations() {
		cmd := newBumpCmd(d)
		assert.Equal(t, d.String(), cmd.Use)
		assert.Equal(t, GroupRelease, cmd.GroupID)
		assert.NotNil(t, cmd.Flags().Lookup("dry-run"))
		assert.NotNil(t, cmd.Flags().Lookup("no-commit"))
	}
}

func TestExitCode(t *testing.T) {
	tests := map[string]struct {
		err  error
		want int
	}{
		"nil":            {err: nil, want: ExitSuccess},
		"plain error":    {err: errors.New("boom"), want: ExitValidationFailed},
		"argument error": {err: clierrors.InvalidVersion("x"), want: ExitInvalidArguments},
		"prerequisite":   {err: clierrors.GitNotFound(), want: ExitMissingDependencies},
		"configuration":  {err: clierrors.ConfigFileNotFound(""), want: ExitValidationFailed},
		"wrapped cli error": {
			err:  errors.Join(errors.New("context"), clierrors.NotGitRepository("/tmp")),
			want: ExitMissingDependencies,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestPrintError(t *testing.T) {
	noColor(t)

	var buf bytes.Buffer
	printError(&buf, clierrors.ConfigFileNotFound(""))
	assert.Contains(t, buf.String(), "no gitscribe config found")
	assert.Contains(t, buf.String(), "gitscribe init")

	buf.Reset()
	printError(&buf, clierrors.ReleaseFailed(errors.New("disk on fire")))
	assert.Contains(t, buf.String(), "error (runtime): release failed\n  caused by: disk on fire\n")
}

func TestInitProject(t *testing.T) {
	noColor(t)

	tests := map[string]struct {
		existing string
		opts     initOptions
		wantCode int
		check    func(t *testing.T, dir string)
	}{
		"creates config": {
			opts:     initOptions{Version: "0.4.0", Repo: "https://github.com/acme/widget"},
			wantCode: ExitSuccess,
			check: func(t *testing.T, dir string) {
				cfg, err := config.Load(dir)
				require.NoError(t, err)
				assert.Equal(t, "0.4.0", cfg.Version)
				assert.Equal(t, "https://github.com/acme/widget", cfg.ProjectRepo)
			},
		},
		"invalid version": {
			opts:     initOptions{Version: "1.2"},
			wantCode: ExitInvalidArguments,
			check: func(t *testing.T, dir string) {
				assert.NoFileExists(t, config.ProjectConfigPath(dir))
			},
		},
		"config exists": {
			existing: "version: 9.9.9\n",
			opts:     initOptions{Version: "0.0.1"},
			wantCode: ExitValidationFailed,
			check: func(t *testing.T, dir string) {
				data, err := os.ReadFile(config.ProjectConfigPath(dir))
				require.NoError(t, err)
				assert.Equal(t, "version: 9.9.9\n", string(data))
			},
		},
		"force overwrites": {
			existing: "version: 9.9.9\n",
			opts:     initOptions{Version: "0.0.1", Force: true},
			wantCode: ExitSuccess,
			check: func(t *testing.T, dir string) {
				cfg, err := config.Load(dir)
				require.NoError(t, err)
				assert.Equal(t, "0.0.1", cfg.Version)
			},
		},
		"dry run without migrate": {
			opts:     initOptions{Version: "0.0.1", DryRun: true},
			wantCode: ExitInvalidArguments,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.existing != "" {
				require.NoError(t, os.WriteFile(config.ProjectConfigPath(dir), []byte(tt.existing), 0o644))
			}
			tt.opts.Dir = dir

			var out bytes.Buffer
			err := initProject(&out, tt.opts)

			assert.Equal(t, tt.wantCode, ExitCode(err))
			if tt.check != nil {
				tt.check(t, dir)
			}
		})
	}
}

func TestInitProject_Migrate(t *testing.T) {
	noColor(t)
	dir := t.TempDir()
	legacy := filepath.Join(dir, config.LegacyConfigName)
	require.NoError(t, os.WriteFile(legacy, []byte(`{
  "version": "2.1.0",
  "changelog_output_selections": [{"template_option": "Markdown", "output_filepath": "CHANGELOG.md"}]
}`), 0o644))

	var out bytes.Buffer
	require.NoError(t, initProject(&out, initOptions{Dir: dir, Migrate: true, DryRun: true}))
	assert.FileExists(t, legacy)
	assert.NoFileExists(t, config.ProjectConfigPath(dir))

	out.Reset()
	require.NoError(t, initProject(&out, initOptions{Dir: dir, Migrate: true}))
	assert.Contains(t, out.String(), "gitscribe.json.bak")
	assert.NoFileExists(t, legacy)
	assert.FileExists(t, legacy+".bak")

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "2.1.0", cfg.Version)
	assert.Equal(t, config.ProjectConfigPath(dir), cfg.Path)
}

func TestBump(t *testing.T) {
	noColor(t)
	r := newProjectRepo(t)

	var out, errOut bytes.Buffer
	err := bump(context.Background(), &out, &errOut, bumpOptions{Dir: r.Dir, Designation: version.Minor})
	require.NoError(t, err, errOut.String())

	cfg, err := config.Load(r.Dir)
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", cfg.Version)
	assert.Equal(t, commit.DefaultReleasePrefix+"1.3.0", r.Head().Message)
	assert.Contains(t, out.String(), "1.2.3 → 1.3.0")
}

func TestBump_Prerequisites(t *testing.T) {
	noColor(t)

	tests := map[string]struct {
		setup    func(t *testing.T) string
		wantCode int
		wantMsg  string
	}{
		"not a repository": {
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				require.NoError(t, os.WriteFile(config.ProjectConfigPath(dir), []byte(testConfig), 0o644))
				return dir
			},
			wantCode: ExitMissingDependencies,
			wantMsg:  "not a git repository",
		},
		"dirty tree": {
			setup: func(t *testing.T) string {
				r := newProjectRepo(t)
				r.Write("wip.go", "package wip\n")
				return r.Dir
			},
			wantCode: ExitMissingDependencies,
			wantMsg:  "wip.go",
		},
		"no config": {
			setup: func(t *testing.T) string {
				return testutil.NewGitRepo(t).Dir
			},
			wantCode: ExitValidationFailed,
			wantMsg:  "no gitscribe config found",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := tt.setup(t)

			var out, errOut bytes.Buffer
			err := bump(context.Background(), &out, &errOut, bumpOptions{Dir: dir, Designation: version.Patch})

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, ExitCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestPreview(t *testing.T) {
	noColor(t)
	dir := newProjectRepo(t).Dir

	var out, errOut bytes.Buffer
	err := preview(context.Background(), &out, &errOut, previewOptions{
		Dir:         dir,
		Designation: version.Major,
		Plain:       true,
		Now:         func() time.Time { return time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC) },
	})
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "## v2.0.0 (2026-10-18) - pending")
	assert.Contains(t, got, "feat: add export (Ada")
	assert.Contains(t, got, "## v1.2.3")
	assert.Contains(t, got, "2 releases, 1 change")
	assert.NoFileExists(t, filepath.Join(dir, "CHANGELOG.md"))
}

func TestPrintVersion(t *testing.T) {
	noColor(t)

	var buf bytes.Buffer
	printVersion(&buf, true)
	assert.Equal(t, build.Version+"\n", buf.String())

	buf.Reset()
	printVersion(&buf, false)
	assert.Contains(t, buf.String(), "gitscribe "+build.Version)
	assert.Contains(t, buf.String(), SourceURL)
}

func noColor(t *testing.T) {
	t.Helper()
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })
}

// newProjectRepo creates a repository holding a committed config, a release
// marker for 1.2.3 and one feature after it.
func newProjectRepo(t *testing.T) *testutil.GitRepo {
	t.Helper()
	r := testutil.NewGitRepo(t)
	start := time.Now().Add(-48 * time.Hour)
	r.CommitFile(".gitscribe.yml", testConfig, commit.DefaultReleasePrefix+"1.2.3", "Ada", start)
	r.CommitFile("export.go", "package export\n", "feat: add export", "Ada", start.Add(time.Hour))
	return r
}

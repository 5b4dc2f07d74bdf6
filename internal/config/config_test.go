package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smartreno/smartreno/internal/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points XDG and the working directory at a temp dir and clears
// SMARTRENO_ variables for the duration of the test.
func isolate(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	origWd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change to temp dir: %v", err)
	}

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	for _, key := range envKeys {
		t.Setenv("SMARTRENO_"+strings.ToUpper(key), "")
		_ = os.Unsetenv("SMARTRENO_" + strings.ToUpper(key))
	}
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	tests := []struct {
		name        string
		xdgConfig   string
		wantContain string
	}{
		{
			name:        "with XDG_CONFIG_HOME set",
			xdgConfig:   "/custom/config",
			wantContain: "/custom/config/smartreno/smartreno.yml",
		},
		{
			name:        "without XDG_CONFIG_HOME",
			xdgConfig:   "",
			wantContain: ".config/smartreno/smartreno.yml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", tt.xdgConfig)

			got := GlobalPath()
			if tt.xdgConfig != "" {
				if got != tt.wantContain {
					t.Errorf("GlobalPath() = %v, want %v", got, tt.wantContain)
				}
				return
			}
			if !filepath.IsAbs(got) {
				t.Errorf("GlobalPath() should return absolute path, got %v", got)
			}
			if !strings.HasSuffix(got, tt.wantContain) {
				t.Errorf("GlobalPath() = %v, want suffix %v", got, tt.wantContain)
			}
		})
	}
}

func TestProjectPath(t *testing.T) {
	if got := ProjectPath(); got != "smartreno.yml" {
		t.Errorf("ProjectPath() = %v, want smartreno.yml", got)
	}
}

func TestExists(t *testing.T) {
	isolate(t)

	if Exists() {
		t.Fatal("Exists() = true, want false when no config files exist")
	}

	if err := os.WriteFile(ProjectPath(), []byte("log_level: debug\n"), 0644); err != nil {
		t.Fatalf("Failed to write project config: %v", err)
	}
	if !Exists() {
		t.Error("Exists() = false, want true when project config exists")
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	isolate(t)

	global := Defaults()
	global.LogLevel = "warn"
	global.DaysAhead = 14
	require.NoError(t, WriteGlobal(global))

	require.NoError(t, os.WriteFile(ProjectPath(), []byte("days_ahead: 3\nservice_areas:\n  - \"60601\"\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel, "global value survives the merge")
	assert.Equal(t, 3, cfg.DaysAhead, "project value wins")
	assert.Equal(t, []string{"60601"}, cfg.ServiceAreas)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)

	require.NoError(t, WriteProject(Defaults()))
	t.Setenv("SMARTRENO_DAYS_AHEAD", "10")
	t.Setenv("SMARTRENO_SUBMIT_DELAY", "2s")
	t.Setenv("SMARTRENO_SEED", "42")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.DaysAhead)
	assert.Equal(t, 2*time.Second, cfg.SubmitDelay)
	assert.Equal(t, uint64(42), cfg.Seed)
}

func TestDefaults_MatchBookingPools(t *testing.T) {
	d := Defaults()
	assert.Equal(t, booking.DefaultServiceAreas, d.ServiceAreas)
	assert.Equal(t, booking.DefaultEstimators, d.Estimators)

	d.ServiceAreas[0] = "00000"
	assert.NotEqual(t, "00000", booking.DefaultServiceAreas[0], "defaults hand out copies")
}

func TestLoad_RejectsMalformedServiceArea(t *testing.T) {
	isolate(t)

	require.NoError(t, os.WriteFile(ProjectPath(), []byte("service_areas:\n  - abc\n"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service_areas")
}

func TestLoad_RejectsInvalid(t *testing.T) {
	isolate(t)

	require.NoError(t, os.WriteFile(ProjectPath(), []byte("availability: 1.5\n"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "availability")
}

func TestWriteProject_RoundTrip(t *testing.T) {
	isolate(t)

	cfg := Defaults()
	cfg.LogFile = "/tmp/smartreno.log"
	cfg.Estimators = []string{"Ana Ruiz"}
	cfg.SubmitDelay = 1500 * time.Millisecond
	require.NoError(t, WriteProject(cfg))

	data, err := os.ReadFile(ProjectPath())
	require.NoError(t, err)
	content := string(data)
	for _, field := range []string{
		"log_level: info",
		"log_file: /tmp/smartreno.log",
		"- Ana Ruiz",
		"submit_delay: 1.5s",
	} {
		assert.Contains(t, content, field)
	}

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "no areas", mutate: func(c *Config) { c.ServiceAreas = nil }, wantErr: "service_areas"},
		{name: "malformed area", mutate: func(c *Config) { c.ServiceAreas = []string{"abc"} }, wantErr: `"abc"`},
		{name: "six digit area", mutate: func(c *Config) { c.ServiceAreas = []string{"94102", "941020"} }, wantErr: `"941020"`},
		{name: "spaced area", mutate: func(c *Config) { c.ServiceAreas = []string{"94 10"} }, wantErr: "5-digit"},
		{name: "no estimators", mutate: func(c *Config) { c.Estimators = nil }, wantErr: "estimators"},
		{name: "zero days", mutate: func(c *Config) { c.DaysAhead = 0 }, wantErr: "days_ahead"},
		{name: "zero availability", mutate: func(c *Config) { c.Availability = 0 }, wantErr: "availability"},
		{name: "negative delay", mutate: func(c *Config) { c.SubmitDelay = -time.Second }, wantErr: "submit_delay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

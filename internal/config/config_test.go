package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "MYSQL_HOST", "REDIS_DB", "IDEMPOTENCY_TTL_SECONDS", "REALLOCATION_RECHECK_ON_APPROVAL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.AppPort != "8080" || c.MySQLHost != "mysql" || c.RedisDB != 0 {
		t.Fatalf("defaults = %+v", c)
	}
	if c.IdempotencyTTL() != 5*time.Minute || c.SummaryTTL() != 5*time.Minute {
		t.Fatalf("ttls = %v / %v", c.IdempotencyTTL(), c.SummaryTTL())
	}
	if c.RecheckOnApproval || c.LogFormat != "json" {
		t.Fatalf("recheck=%v format=%s", c.RecheckOnApproval, c.LogFormat)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("validate defaults: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "60")
	t.Setenv("REALLOCATION_RECHECK_ON_APPROVAL", "true")
	t.Setenv("NOTIFY_CHANNEL", "finance")
	t.Setenv("SUMMARY_CACHE_TTL_SECONDS", "not-a-number")

	c := Load()
	if c.RedisDB != 3 || c.IdempTTLSecs != 60 || !c.RecheckOnApproval || c.NotifyChannel != "finance" {
		t.Fatalf("overrides = %+v", c)
	}
	if c.SummaryTTLSecs != 300 {
		t.Fatalf("bad int should keep default, got %d", c.SummaryTTLSecs)
	}
}

func TestLoad_DotEnvDoesNotOverrideProcess(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, ".env")
	if err := os.WriteFile(f, []byte("MYSQL_DB=from_file\nAPP_PORT=9999\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("APP_PORT", "7000")
	t.Setenv("MYSQL_DB", "")
	os.Unsetenv("MYSQL_DB")

	c := Load(f, filepath.Join(dir, "missing.env"))
	if c.MySQLDB != "from_file" {
		t.Fatalf("MYSQL_DB = %q, want from_file", c.MySQLDB)
	}
	if c.AppPort != "7000" {
		t.Fatalf("APP_PORT = %q, process env must win", c.AppPort)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config { return &Config{AppPort: "8080", MySQLHost: "h", MySQLPort: "3306", MySQLDB: "d", MySQLUser: "u", IdempTTLSecs: 1, SummaryTTLSecs: 1} }

	cases := map[string]func(*Config){
		"missing host": func(c *Config) { c.MySQLHost = "" },
		"bad port":     func(c *Config) { c.MySQLPort = "not-a-port-xyz" },
		"missing app":  func(c *Config) { c.AppPort = "" },
		"zero ttl":     func(c *Config) { c.IdempTTLSecs = 0 },
	}
	for name, mut := range cases {
		c := base()
		mut(c)
		if err := c.Validate(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if err := base().Validate(); err != nil {
		t.Fatalf("valid config: %v", err)
	}
}

func TestMySQLDSN(t *testing.T) {
	c := &Config{MySQLUser: "u", MySQLPass: "p", MySQLHost: "db", MySQLPort: "3306", MySQLDB: "x"}
	want := "u:p@tcp(db:3306)/x?parseTime=true&loc=UTC&charset=utf8mb4"
	if got := c.MySQLDSN(); got != want {
		t.Fatalf("dsn = %q, want %q", got, want)
	}
}

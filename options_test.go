package packwire

import "testing"

func TestPresetConfigs(t *testing.T) {
	cases := []struct {
		name string
		opt  ConfigOption
		want Config
	}{
		{"network", WithNetworkDefaults(), Config{WireEndianness: Big, CheckDataErrors: true, CheckAdapterErrors: true}},
		{"compact", WithCompactDefaults(), Config{WireEndianness: Little, CheckDataErrors: false, CheckAdapterErrors: false}},
		{"archive", WithArchiveDefaults(), Config{WireEndianness: Little, CheckDataErrors: true, CheckAdapterErrors: true}},
	}
	for _, c := range cases {
		cfg := Config{}
		c.opt(&cfg)
		if cfg.WireEndianness != c.want.WireEndianness || cfg.CheckDataErrors != c.want.CheckDataErrors || cfg.CheckAdapterErrors != c.want.CheckAdapterErrors {
			t.Fatalf("%s preset = %+v, want %+v", c.name, cfg, c.want)
		}
	}
}

func TestWithTrustedChecksDisablesBothChecks(t *testing.T) {
	cfg := defaultConfig
	WithTrustedChecks()(&cfg)
	if cfg.CheckDataErrors || cfg.CheckAdapterErrors {
		t.Fatalf("trusted checks left a check enabled: %+v", cfg)
	}
}

func TestWithSessionsEnabledToggle(t *testing.T) {
	cfg := defaultConfig
	WithSessionsEnabled(false)(&cfg)
	if cfg.SessionsEnabled {
		t.Fatal("expected sessions disabled")
	}
}

package builder

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MaxBuildAttempts != 10 || cfg.MaxRebuildAttempts != 1000 || cfg.MaxChildCorridors != 3 {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero", Config{}, false},
		{"negative build", Config{MaxBuildAttempts: -1}, true},
		{"negative rebuild", Config{MaxRebuildAttempts: -1}, true},
		{"negative corridors", Config{MaxChildCorridors: -2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOverridesApply(t *testing.T) {
	zero, five := 0, 5
	tests := []struct {
		name string
		o    Overrides
		want Config
	}{
		{"unset keeps base", Overrides{}, DefaultConfig()},
		{"explicit zero", Overrides{MaxRebuildAttempts: &zero}, Config{MaxBuildAttempts: 10, MaxRebuildAttempts: 0, MaxChildCorridors: 3}},
		{"all set", Overrides{MaxBuildAttempts: &zero, MaxRebuildAttempts: &five, MaxChildCorridors: &zero}, Config{MaxRebuildAttempts: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.o.Apply(DefaultConfig()); got != tt.want {
				t.Errorf("Apply() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOverridesValidate(t *testing.T) {
	neg, zero := -1, 0
	if err := (Overrides{}).Validate(); err != nil {
		t.Errorf("empty overrides: %v", err)
	}
	if err := (Overrides{MaxBuildAttempts: &zero}).Validate(); err != nil {
		t.Errorf("zero override: %v", err)
	}
	if err := (Overrides{MaxChildCorridors: &neg}).Validate(); err == nil {
		t.Error("negative override should fail")
	}
}

func TestConfigMaxPlacements(t *testing.T) {
	if got := DefaultConfig().MaxPlacements(4); got != 10*1001*4 {
		t.Errorf("MaxPlacements(4) = %d", got)
	}
}

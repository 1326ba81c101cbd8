package persistence

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSettingsStore(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		store := NewSettingsStore(filepath.Join(t.TempDir(), "cecData_2.json"))

		want := Settings{
			Enabled:    false,
			OTPEnabled: false,
			OSDName:    "TestDevice",
			VendorID:   0x123456,
		}
		if err := store.Save(want); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got != want {
			t.Errorf("Load() = %+v, want %+v", got, want)
		}
	})

	t.Run("LoadNonExistent", func(t *testing.T) {
		store := NewSettingsStore(filepath.Join(t.TempDir(), "missing.json"))

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got != DefaultSettings() {
			t.Errorf("Load() = %+v, want defaults", got)
		}
	})

	t.Run("LoadEmptyFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.json")
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatal(err)
		}

		got, err := NewSettingsStore(path).Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got != DefaultSettings() {
			t.Errorf("Load() = %+v, want defaults", got)
		}
	})

	t.Run("SaveCreatesDirectory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "cec.json")
		store := NewSettingsStore(path)

		if err := store.Save(DefaultSettings()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("settings file not created: %v", err)
		}
		if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
			t.Error("temporary file left behind")
		}
	})

	t.Run("SaveRejectsWideVendorID", func(t *testing.T) {
		store := NewSettingsStore(filepath.Join(t.TempDir(), "cec.json"))
		if err := store.Save(Settings{VendorID: 0x1000000}); err == nil {
			t.Error("Save() should reject a vendor id wider than 24 bits")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		store := NewSettingsStore(filepath.Join(t.TempDir(), "cec.json"))
		if err := store.Save(Settings{OSDName: "x"}); err != nil {
			t.Fatal(err)
		}
		if err := store.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		if err := store.Clear(); err != nil {
			t.Fatalf("second Clear() error = %v", err)
		}
		got, _ := store.Load()
		if got != DefaultSettings() {
			t.Errorf("Load() after Clear = %+v, want defaults", got)
		}
	})
}

func TestSettingsFieldDefaults(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Settings
		corrupt bool
	}{
		{
			name:    "OnlyName",
			content: `{"cecOSDName":"Box"}`,
			want:    Settings{Enabled: true, OTPEnabled: true, OSDName: "Box"},
		},
		{
			name:    "OnlyDisabled",
			content: `{"cecEnabled":false}`,
			want:    Settings{Enabled: false, OTPEnabled: true},
		},
		{
			name:    "UnknownKeysIgnored",
			content: `{"cecVendorId":1700,"somethingElse":[1,2]}`,
			want:    Settings{Enabled: true, OTPEnabled: true, VendorID: 1700},
		},
		{
			name:    "NullIsMissing",
			content: `{"cecEnabled":null,"cecOTPEnabled":null}`,
			want:    DefaultSettings(),
		},
		{
			name:    "WrongTypeFallsBack",
			content: `{"cecEnabled":"yes","cecOSDName":"Box"}`,
			want:    Settings{Enabled: true, OTPEnabled: true, OSDName: "Box"},
			corrupt: true,
		},
		{
			name:    "VendorTooWide",
			content: `{"cecVendorId":16777216,"cecOTPEnabled":false}`,
			want:    Settings{Enabled: true, OTPEnabled: false},
			corrupt: true,
		},
		{
			name:    "NotJSON",
			content: `cecEnabled=false`,
			want:    DefaultSettings(),
			corrupt: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cec.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			got, err := NewSettingsStore(path).Load()
			if tt.corrupt {
				if !errors.Is(err, ErrCorrupt) {
					t.Errorf("Load() error = %v, want ErrCorrupt", err)
				}
			} else if err != nil {
				t.Errorf("Load() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Load() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

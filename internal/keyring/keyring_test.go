package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSecretRoundTrip(t *testing.T) {
	gokeyring.MockInit()

	tests := []struct {
		secret Secret
		value  string
	}{
		{ConnectionString, "postgres://eve@localhost:5432/lift?sslmode=disable"},
		{APIToken, "tok_123"},
	}
	for _, tt := range tests {
		t.Run(string(tt.secret), func(t *testing.T) {
			if err := tt.secret.Set(tt.value); err != nil {
				t.Fatalf("Set() failed: %v", err)
			}
			got, err := tt.secret.Get()
			if err != nil {
				t.Fatalf("Get() failed: %v", err)
			}
			if got != tt.value {
				t.Errorf("Get() = %q, want %q", got, tt.value)
			}
		})
	}
}

func TestSecretsAreIndependent(t *testing.T) {
	gokeyring.MockInit()

	if err := APIToken.Set("tok"); err != nil {
		t.Fatal(err)
	}
	if _, err := ConnectionString.Get(); !errors.Is(err, ErrNotFound) {
		t.Errorf("ConnectionString.Get() error = %v, want ErrNotFound", err)
	}
}

func TestSetEmpty(t *testing.T) {
	gokeyring.MockInit()
	if err := APIToken.Set(""); err == nil {
		t.Error("Set(\"\") should fail")
	}
}

func TestDelete(t *testing.T) {
	gokeyring.MockInit()

	if err := ConnectionString.Set("postgres://eve@localhost/lift"); err != nil {
		t.Fatal(err)
	}
	if err := ConnectionString.Delete(); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := ConnectionString.Get(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete() error = %v, want ErrNotFound", err)
	}
	if err := ConnectionString.Delete(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestLookup(t *testing.T) {
	gokeyring.MockInit()

	if got := APIToken.Lookup(); got != "" {
		t.Errorf("Lookup() = %q, want empty", got)
	}
	_ = APIToken.Set("tok")
	if got := APIToken.Lookup(); got != "tok" {
		t.Errorf("Lookup() = %q, want tok", got)
	}
}

func TestIsAvailableWithMock(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("IsAvailable() = false with mock keyring")
	}
}

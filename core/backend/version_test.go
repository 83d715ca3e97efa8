package backend_test

import (
	"testing"

	"github.com/relabs-tech/pagemap/core/backend"
)

// TestVersion verifies that the /version endpoint works
func TestVersion(t *testing.T) {
	ts := newTestService(t)

	var version struct {
		Version string `json:"version"`
	}
	_, err := ts.client.RawGet("/version", &version)
	if err != nil {
		t.Fatal(err)
	}
	if version.Version != "unset" {
		t.Fatalf("Expecting 'unset' version by default, got %s", version.Version)
	}

	backend.Version = "another version"
	defer func() { backend.Version = "unset" }()

	_, err = ts.client.RawGet("/version", &version)
	if err != nil {
		t.Fatal(err)
	}
	if version.Version != "another version" {
		t.Fatalf("Execting 'another version', got %s", version.Version)
	}
}

package config

import "testing"

func TestDefaultEntries(t *testing.T) {
	entries := DefaultEntries()
	if len(entries) == 0 {
		t.Fatal("DefaultEntries() returned empty slice")
	}

	requiredKeys := []string{
		"esv.api_key",
		"esv.base_url",
		"esv.rate_limit",
		"net.base_url",
		"analysis.model",
		"analysis.enabled",
		"commentary.sources",
		"resolve.max_concurrent_fetches",
		"resolve.main_file",
	}

	keys := make(map[string]bool)
	for _, e := range entries {
		keys[e.Key] = true
	}
	for _, key := range requiredKeys {
		if !keys[key] {
			t.Errorf("DefaultEntries() missing required key: %s", key)
		}
	}
}

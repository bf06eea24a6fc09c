package help

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestQuickstartIsValidYAML(t *testing.T) {
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(QuickstartYAML), &doc); err != nil {
		t.Fatalf("QuickstartYAML does not parse: %v", err)
	}
	for _, key := range []string{"providers", "commands", "tui_keys", "config", "storage", "error_behavior"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("QuickstartYAML missing section %q", key)
		}
	}
}

package scenario

import "testing"

func TestScenarios(t *testing.T) {
	for _, r := range RunAll() {
		r := r
		t.Run(r.Name, func(t *testing.T) {
			if !r.Passed {
				t.Fatalf("expected %s, got %s (err=%v)", r.Expected, r.Actual, r.Err)
			}
		})
	}
}

package httpapi

import "testing"

func TestShouldTraceRequest(t *testing.T) {
	cases := map[string]bool{
		"/healthz":                  false,
		"/health":                   false,
		"/livez":                    false,
		"/readyz":                   false,
		" /healthz ":                false,
		"/v1/seasons":               true,
		"/v1/comparisons/2025/2024": true,
		"/":                         true,
		"/docs":                     true,
	}

	for path, want := range cases {
		if got := shouldTraceRequest(path); got != want {
			t.Errorf("shouldTraceRequest(%q)=%v want=%v", path, got, want)
		}
	}
}

package tracing

import "testing"

func TestNormalizeJaegerCollector(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "jaeger:14268", want: "http://jaeger:14268/api/traces"},
		{in: " http://jaeger:14268/ ", want: "http://jaeger:14268/api/traces"},
		{in: "https://collector.example.com/api/traces", want: "https://collector.example.com/api/traces"},
	}

	for _, tt := range tests {
		if got := normalizeJaegerCollector(tt.in); got != tt.want {
			t.Fatalf("normalizeJaegerCollector(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestInitTracer_EmptyCollectorIsNoop(t *testing.T) {
	shutdown, err := InitTracer("soccer-score", "  ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if shutdown != nil {
		t.Fatal("expected nil shutdown for disabled tracing")
	}
}

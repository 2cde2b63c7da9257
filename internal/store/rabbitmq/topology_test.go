package rabbitmq

import "testing"

func TestTopology_MainQueueDeadLettersToDLQ(t *testing.T) {
	specs := Topology("generation_jobs")

	if len(specs) != 2 {
		t.Fatalf("declarations = %d, want 2 (dlq + main)", len(specs))
	}

	dlq := specs[0]
	if dlq.Name != "generation_jobs.dlq" {
		t.Fatalf("dlq name = %q", dlq.Name)
	}
	if dlq.Args != nil {
		t.Fatalf("dlq should have no arguments, got %v", dlq.Args)
	}

	main := specs[1]
	if main.Name != "generation_jobs" {
		t.Fatalf("main name = %q", main.Name)
	}
	if main.Args["x-dead-letter-exchange"] != "" {
		t.Fatalf("main queue must dead-letter via the default exchange, got %v", main.Args["x-dead-letter-exchange"])
	}
	if main.Args["x-dead-letter-routing-key"] != "generation_jobs.dlq" {
		t.Fatalf("main queue must dead-letter to the dlq, got %v", main.Args["x-dead-letter-routing-key"])
	}
}

// Both binaries must produce identical declarations for the same queue name,
// otherwise the broker rejects the second declaration as inequivalent.
func TestTopology_Deterministic(t *testing.T) {
	a := Topology("q")
	b := Topology("q")

	if len(a) != len(b) {
		t.Fatalf("declaration counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			t.Fatalf("queue %d name differs: %q vs %q", i, a[i].Name, b[i].Name)
		}
		if len(a[i].Args) != len(b[i].Args) {
			t.Fatalf("queue %q argument counts differ", a[i].Name)
		}
		for k, v := range a[i].Args {
			if b[i].Args[k] != v {
				t.Fatalf("queue %q argument %q differs: %v vs %v", a[i].Name, k, v, b[i].Args[k])
			}
		}
	}
}

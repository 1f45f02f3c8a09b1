package signaling

import "testing"

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry()

	a := &Client{}
	b := &Client{}
	idA := reg.Register(a)
	idB := reg.Register(b)

	if idA == "" || idB == "" {
		t.Fatal("Register returned empty identifier")
	}
	if idA == idB {
		t.Fatal("identifiers must be unique")
	}
	if a.ID != idA {
		t.Errorf("client ID = %q, want %q", a.ID, idA)
	}
	if !a.alive {
		t.Error("fresh registration should start alive")
	}
	if reg.Get(idA) != a {
		t.Error("Get did not return the registered client")
	}
	if reg.Len() != 2 {
		t.Errorf("Len = %d, want 2", reg.Len())
	}
}

func TestRegistryMarkAlive(t *testing.T) {
	reg := NewRegistry()
	c := &Client{}
	id := reg.Register(c)

	c.alive = false
	reg.MarkAlive(id)
	if !c.alive {
		t.Error("MarkAlive did not set the flag")
	}

	// Unknown ids are ignored.
	reg.MarkAlive("ghost")
}

func TestRegistryRemove(t *testing.T) {
	reg := NewRegistry()
	c := &Client{}
	id := reg.Register(c)

	reg.Remove(id)
	if reg.Has(id) {
		t.Error("client still registered after Remove")
	}

	reg.Remove(id) // no-op
	if reg.Len() != 0 {
		t.Errorf("Len = %d, want 0", reg.Len())
	}
}

func TestRegistryProbeAndReap(t *testing.T) {
	reg := NewRegistry()

	responsive := &Client{}
	silent := &Client{}
	reg.Register(responsive)
	reg.Register(silent)

	var reaped []*Client
	reap := func(c *Client) {
		reaped = append(reaped, c)
		reg.Remove(c.ID)
	}

	// First sweep: everyone was alive, so nobody is reaped; all
	// flags flip to pending.
	reg.ProbeAndReap(reap)
	if len(reaped) != 0 {
		t.Fatalf("reaped %d on first sweep, want 0", len(reaped))
	}
	if responsive.alive || silent.alive {
		t.Error("flags should be pending after a sweep")
	}

	// Only one connection answers the probe.
	reg.MarkAlive(responsive.ID)

	// Second sweep: the silent connection missed a full cycle.
	reg.ProbeAndReap(reap)
	if len(reaped) != 1 || reaped[0] != silent {
		t.Fatalf("reaped = %v, want exactly the silent client", reaped)
	}
	if reg.Has(silent.ID) {
		t.Error("reaped client still registered")
	}
	if !reg.Has(responsive.ID) {
		t.Error("responsive client was deregistered")
	}
}

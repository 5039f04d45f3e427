package txbuilder

import "testing"

func TestRequiredAddressPlainOutput(t *testing.T) {
	c := NewClassifier(testParams())
	out := basicOutput(1000, addrA())

	addr, err := c.RequiredAddress(out, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr.Key() != addrA().Key() {
		t.Errorf("got %v, want owner address", addr)
	}
}

func TestRequiredAddressTimelockedStillLocked(t *testing.T) {
	c := NewClassifier(testParams())
	out := iotagoBasicOutputWithTimelock(200, addrA())

	addr, err := c.RequiredAddress(out, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr != nil {
		t.Errorf("got %v, want nil while still timelocked", addr)
	}
}

func TestRequiredAddressTimelockPassed(t *testing.T) {
	c := NewClassifier(testParams())
	out := iotagoBasicOutputWithTimelock(200, addrA())

	addr, err := c.RequiredAddress(out, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr == nil || addr.Key() != addrA().Key() {
		t.Errorf("got %v, want owner address once the timelock has passed", addr)
	}
}

func TestRequiredAddressExpirationOwnerStillInControl(t *testing.T) {
	p := testParams()
	c := NewClassifier(p)
	out := iotagoBasicOutputWithExpiration(1000, addrA(), addrB(), 5000)

	addr, err := c.RequiredAddress(out, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr.Key() != addrA().Key() {
		t.Errorf("got %v, want owner before the committable age window", addr)
	}
}

func TestRequiredAddressExpirationReturnAddressInControl(t *testing.T) {
	p := testParams()
	c := NewClassifier(p)
	out := iotagoBasicOutputWithExpiration(1000, addrA(), addrB(), 100)

	addr, err := c.RequiredAddress(out, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr.Key() != addrB().Key() {
		t.Errorf("got %v, want return address well past expiration", addr)
	}
}

func TestRequiredAddressExpirationAmbiguousWindow(t *testing.T) {
	p := testParams()
	c := NewClassifier(p)
	// atSlot + max < exp is false, atSlot + min >= exp is false: ambiguous.
	out := iotagoBasicOutputWithExpiration(1000, addrA(), addrB(), 107)

	_, err := c.RequiredAddress(out, 100)
	if err == nil {
		t.Fatal("expected an error inside the ambiguous committable-age window")
	}
}

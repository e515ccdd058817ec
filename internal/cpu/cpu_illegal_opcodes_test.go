package cpu

import "testing"

func TestALR(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.Memory.SetBytes(0x8000, 0x4B, 0x03) // ALR #$03
	h.CPU.A = 0x07

	h.CPU.Step()

	if h.CPU.A != 0x01 { // (0x07 & 0x03) >> 1 = 1
		t.Fatalf("A = %#02x, want 0x01", h.CPU.A)
	}
	if !h.CPU.C {
		t.Fatalf("expected carry set from bit 0 of AND result")
	}
}

func TestANC(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.Memory.SetBytes(0x8000, 0x0B, 0x80) // ANC #$80
	h.CPU.A = 0xFF

	h.CPU.Step()

	if h.CPU.A != 0x80 {
		t.Fatalf("A = %#02x, want 0x80", h.CPU.A)
	}
	if !h.CPU.N || !h.CPU.C {
		t.Fatalf("expected N and C both set from negative AND result")
	}
}

func TestSBX(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.Memory.SetBytes(0x8000, 0xCB, 0x02) // SBX #$02
	h.CPU.A = 0x0F
	h.CPU.X = 0x0F // A&X = 0x0F

	h.CPU.Step()

	if h.CPU.X != 0x0D {
		t.Fatalf("X = %#02x, want 0x0D", h.CPU.X)
	}
	if !h.CPU.C {
		t.Fatalf("expected carry set (no borrow)")
	}
}

func TestLAS(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.Memory.SetBytes(0x8000, 0xBB, 0x00, 0x30) // LAS $3000,Y
	h.Memory.SetByte(0x3000, 0xFF)
	h.CPU.Y = 0
	h.CPU.SP = 0x0F

	h.CPU.Step()

	if h.CPU.A != 0x0F || h.CPU.X != 0x0F || h.CPU.SP != 0x0F {
		t.Fatalf("A/X/SP = %#02x/%#02x/%#02x, want all 0x0F", h.CPU.A, h.CPU.X, h.CPU.SP)
	}
}

func TestSHXStoresXAndedWithHighBytePlusOne(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.Memory.SetBytes(0x8000, 0x9E, 0x00, 0x20) // SHX $2000,Y
	h.CPU.X = 0xFF
	h.CPU.Y = 0

	h.CPU.Step()

	want := uint8(0x20 + 1) // X(0xFF) & (high byte 0x20 + 1)
	if got := h.Memory.Read(0x2000); got != want {
		t.Fatalf("stored value = %#02x, want %#02x", got, want)
	}
}

func TestJAMHaltsCPU(t *testing.T) {
	h := NewCPUTestHelper()
	h.SetupResetVector(0x8000)
	h.Memory.SetByte(0x8000, 0x02) // JAM

	if h.CPU.Halted() {
		t.Fatalf("CPU should not be halted before executing JAM")
	}

	h.CPU.Step()

	if !h.CPU.Halted() {
		t.Fatalf("expected CPU halted after JAM opcode")
	}
	if h.CPU.Err() == nil {
		t.Fatalf("expected a non-nil halt error")
	}

	pcBefore := h.CPU.PC
	h.CPU.Step() // further steps must not advance or panic
	if h.CPU.PC != pcBefore {
		t.Fatalf("halted CPU should not advance PC, got %#04x -> %#04x", pcBefore, h.CPU.PC)
	}
}

func TestAllJamOpcodesRecognized(t *testing.T) {
	opcodes := []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2}
	for _, op := range opcodes {
		if !isJamOpcode(op) {
			t.Errorf("isJamOpcode(%#02x) = false, want true", op)
		}
	}
	if isJamOpcode(0xEA) {
		t.Errorf("isJamOpcode(0xEA) = true, want false (NOP is not JAM)")
	}
}

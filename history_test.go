package main

import (
	"testing"

	"github.com/seqsense/pcdvolume/volume"
	"github.com/seqsense/pcgol/mat"
)

func TestHistory(t *testing.T) {
	h := newHistory(2)
	for i := 0; i < 3; i++ {
		h.push(volume.New(mat.Vec3{float32(i), 0, 0}, mat.Vec3{1, 1, 1}))
	}
	for _, expected := range []float32{2, 1} {
		v, ok := h.undo()
		if !ok {
			t.Fatal("Expected history")
		}
		if v.Origin[0] != expected {
			t.Errorf("Expected origin x %f, got %f", expected, v.Origin[0])
		}
	}
	if _, ok := h.undo(); ok {
		t.Error("Oldest entry must be dropped")
	}
}

func TestHistory_SetMaxHistory(t *testing.T) {
	h := newHistory(4)
	for i := 0; i < 4; i++ {
		h.push(volume.Volume{})
	}
	h.SetMaxHistory(1)
	if n := len(h.stack); n != 1 {
		t.Errorf("Expected 1 entry, got %d", n)
	}
	h.SetMaxHistory(-1)
	if h.MaxHistory() != 0 || len(h.stack) != 0 {
		t.Error("Negative size must disable history")
	}
	h.push(volume.Volume{})
	if _, ok := h.undo(); ok {
		t.Error("History must be disabled")
	}
}

package main

import (
	"github.com/seqsense/pcdvolume/volume"
)

const maxHistoryDefault = 16

// history is a bounded undo stack of volumes.
type history struct {
	maxHistory int
	stack      []volume.Volume
}

func newHistory(m int) *history {
	return &history{maxHistory: m}
}

func (h *history) MaxHistory() int {
	return h.maxHistory
}

func (h *history) SetMaxHistory(m int) {
	h.maxHistory = m
	h.trim()
}

func (h *history) push(v volume.Volume) {
	h.stack = append(h.stack, v)
	h.trim()
}

func (h *history) undo() (volume.Volume, bool) {
	if len(h.stack) == 0 {
		return volume.Volume{}, false
	}
	v := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	return v, true
}

func (h *history) clear() {
	h.stack = nil
}

func (h *history) trim() {
	if h.maxHistory < 0 {
		h.maxHistory = 0
	}
	if n := len(h.stack) - h.maxHistory; n > 0 {
		h.stack = append([]volume.Volume{}, h.stack[n:]...)
	}
}

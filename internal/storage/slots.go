package storage

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/norton/internal/logger"
)

// Load decodes the JSON value stored in slot. It returns def when the slot
// is absent, unreadable, null or not valid JSON for T. Failures are logged
// and never returned.
func Load[T any](p Provider, slot string, def T) T {
	raw, ok, err := p.Get(slot)
	if err != nil {
		logger.ForSlot(slot).Warn("Failed to read slot, using default", "error", err)
		return def
	}
	if !ok {
		return def
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		logger.ForSlot(slot).Debug("Slot is empty, using default")
		return def
	}

	var v T
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		logger.ForSlot(slot).Warn("Slot is corrupt, using default", "error", err)
		return def
	}
	return v
}

// Save encodes v as JSON and writes it to slot.
func Save[T any](p Provider, slot string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode slot %q: %w", slot, err)
	}
	if err := p.Put(slot, string(data)); err != nil {
		return fmt.Errorf("failed to save slot %q: %w", slot, err)
	}
	return nil
}

// LoadRaw returns the raw string in slot, or def when the slot is absent,
// empty or unreadable.
func LoadRaw(p Provider, slot, def string) string {
	raw, ok, err := p.Get(slot)
	if err != nil {
		logger.ForSlot(slot).Warn("Failed to read slot, using default", "error", err)
		return def
	}
	if !ok || raw == "" {
		return def
	}
	return raw
}

func SaveRaw(p Provider, slot, value string) error {
	if err := p.Put(slot, value); err != nil {
		return fmt.Errorf("failed to save slot %q: %w", slot, err)
	}
	return nil
}

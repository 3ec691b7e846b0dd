package storage

import (
	"errors"

	"github.com/julianstephens/norton/internal/constants"
)

// ErrNotInitialized is returned by Load when the backing store has never
// been created.
var ErrNotInitialized = errors.New("storage not initialized, run '" + constants.AppName + " init' first")

// ErrNotLoaded is returned when a slot operation runs before Init or Load.
var ErrNotLoaded = errors.New("storage not loaded")

// Provider is a key-value store of named slots. Values are opaque strings;
// each slot is written independently of the others.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Slots
	Get(slot string) (value string, ok bool, err error)
	Put(slot, value string) error
	Delete(slot string) error
	Slots() ([]string, error)

	// Utils
	GetConfigPath() string
}

// Versioned is implemented by stores with a migrated schema.
type Versioned interface {
	SchemaVersion() (current, latest int, err error)
}

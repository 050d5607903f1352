package config

import (
	"fmt"
	"os"
	"strings"
)

type StoreKind string

const (
	MemoryStore   StoreKind = "memory"
	PostgresStore StoreKind = "postgres"
	BadgerStore   StoreKind = "badger"
)

func Store() (StoreKind, error) {
	kind, ok := os.LookupEnv("STORE")
	if !ok || kind == "" {
		return MemoryStore, nil
	}
	switch k := StoreKind(strings.ToLower(kind)); k {
	case MemoryStore, PostgresStore, BadgerStore:
		return k, nil
	default:
		return "", fmt.Errorf("unknown STORE %q (want memory, postgres or badger)", kind)
	}
}

func BadgerPath() (string, error) {
	path, ok := os.LookupEnv("BADGER_PATH")
	if !ok {
		return "", fmt.Errorf("BADGER_PATH env variable is not set")
	}
	return path, nil
}

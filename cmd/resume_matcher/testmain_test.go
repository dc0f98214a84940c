package main

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
)

// TestMain loads .env if available so local runs match CI behavior.
func TestMain(m *testing.M) {
	_ = godotenv.Load()
	os.Exit(m.Run())
}

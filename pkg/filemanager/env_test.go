package filemanager

import "testing"

func TestNewFromEnvRequiresURL(t *testing.T) {
	t.Setenv(envFilesURL, "")
	t.Setenv(envFilesToken, "")
	if _, err := NewFromEnv(); err == nil {
		t.Fatalf("expected error when %s is unset", envFilesURL)
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv(envFilesURL, "http://localhost:5000")
	t.Setenv(envFilesToken, "abc")
	client, err := NewFromEnv()
	if err != nil {
		t.Fatalf("NewFromEnv: %v", err)
	}
	if client == nil {
		t.Fatalf("NewFromEnv returned nil client")
	}
}

func TestNewFromEnvIgnoresBlankToken(t *testing.T) {
	t.Setenv(envFilesURL, "http://localhost:5000")
	t.Setenv(envFilesToken, "   ")
	if _, err := NewFromEnv(); err != nil {
		t.Fatalf("NewFromEnv with blank token: %v", err)
	}
}

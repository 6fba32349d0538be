// Package credentials resolves the secrets the pipeline's external
// services need. Environment variables win; the system keyring (macOS
// Keychain, Windows Credential Manager, Linux Secret Service) is the
// fallback so tokens survive between shells without living in dotfiles.
// Credential values are never logged.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/zalando/go-keyring"
)

// keyringService is the service name used in the system keyring.
const keyringService = "voicenotes-cli"

// Environment variables consulted before the keyring.
const (
	EnvHuggingFaceToken = "HUGGINGFACE_TOKEN"
	EnvOpenAIAPIKey     = "OPENAI_API_KEY"
)

// Provider names accepted by Set/Get/Delete.
const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
)

// ErrKeyringUnavailable indicates the system keyring is not available.
var ErrKeyringUnavailable = errors.New("system keyring unavailable")

// ErrUnknownProvider indicates a provider name outside the known set.
var ErrUnknownProvider = errors.New("unknown credential provider")

// envFor maps a provider to its environment variable.
var envFor = map[string]string{
	ProviderHuggingFace: EnvHuggingFaceToken,
	ProviderOpenAI:      EnvOpenAIAPIKey,
}

// Store resolves and manages credentials.
type Store struct{}

// NewStore returns a credential store.
func NewStore() *Store {
	return &Store{}
}

// HuggingFaceToken resolves the diarization bearer token. Empty means
// unset; the caller decides whether that is fatal.
func (s *Store) HuggingFaceToken() string {
	return s.resolve(ProviderHuggingFace)
}

// OpenAIAPIKey resolves the API key for summarization and the hosted
// transcription engine.
func (s *Store) OpenAIAPIKey() string {
	return s.resolve(ProviderOpenAI)
}

// resolve returns the trimmed environment value when present, else the
// keyring value, else empty.
func (s *Store) resolve(provider string) string {
	if v := strings.TrimSpace(os.Getenv(envFor[provider])); v != "" {
		return v
	}
	v, err := keyring.Get(keyringService, provider)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

// Set stores a credential in the system keyring.
func (s *Store) Set(provider, value string) error {
	if _, ok := envFor[provider]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("credential value cannot be empty")
	}
	if err := keyring.Set(keyringService, provider, value); err != nil {
		return fmt.Errorf("%w: storing %s credential: %v", ErrKeyringUnavailable, provider, err)
	}
	return nil
}

// Delete removes a credential from the system keyring. Deleting a
// credential that was never stored is not an error.
func (s *Store) Delete(provider string) error {
	if _, ok := envFor[provider]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	err := keyring.Delete(keyringService, provider)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("%w: deleting %s credential: %v", ErrKeyringUnavailable, provider, err)
	}
	return nil
}

// Source describes where a provider's credential currently resolves from:
// "environment", "keyring", or "not set".
func (s *Store) Source(provider string) string {
	if _, ok := envFor[provider]; !ok {
		return "unknown provider"
	}
	if strings.TrimSpace(os.Getenv(envFor[provider])) != "" {
		return "environment (" + envFor[provider] + ")"
	}
	if _, err := keyring.Get(keyringService, provider); err == nil {
		return "keyring (" + keyringDescription() + ")"
	}
	return "not set"
}

// keyringDescription names the platform keyring backend.
func keyringDescription() string {
	switch runtime.GOOS {
	case "darwin":
		return "macOS Keychain"
	case "windows":
		return "Windows Credential Manager"
	default:
		return "Secret Service"
	}
}

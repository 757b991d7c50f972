package commands

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/petal-labs/albert-go/albert"
	"github.com/petal-labs/albert-go/cli/config"
	"github.com/petal-labs/albert-go/cli/keystore"
	"github.com/petal-labs/albert-go/core"
)

// ClientSettings are the resolved connection settings for one invocation.
type ClientSettings struct {
	BaseURL string
	APIKey  core.Secret
	Timeout time.Duration
	Logger  *slog.Logger
}

func defaultClientFactory(s ClientSettings) (*albert.Client, error) {
	opts := []albert.Option{
		albert.WithUserAgent(userAgent()),
		albert.WithLogger(s.Logger),
	}
	if s.Timeout > 0 {
		opts = append(opts, albert.WithTimeout(s.Timeout))
	}
	return albert.New(s.BaseURL, s.APIKey.Expose(), opts...)
}

// activeProfile returns the selected profile and its resolved name.
func (a *App) activeProfile() (config.Profile, string) {
	if a.cfg == nil {
		return config.Profile{}, a.profile
	}
	p, name, _ := a.cfg.Profile(a.profile)
	return p, name
}

// resolveSettings applies flag > profile > environment precedence for the
// base URL and environment > keystore for the API key.
func (a *App) resolveSettings() (ClientSettings, error) {
	if a.profile != "" && a.cfg != nil {
		if _, _, ok := a.cfg.Profile(a.profile); !ok {
			return ClientSettings{}, &core.ConfigError{Field: "profile", Message: fmt.Sprintf("profile %q is not configured", a.profile)}
		}
	}
	profile, name := a.activeProfile()

	s := ClientSettings{
		BaseURL: a.baseURL,
		Timeout: a.timeout,
		Logger:  a.logger,
	}
	if s.BaseURL == "" {
		s.BaseURL = profile.BaseURL
	}
	if s.BaseURL == "" {
		s.BaseURL = os.Getenv(albert.EnvBaseURL)
	}
	if s.Timeout == 0 {
		s.Timeout = time.Duration(profile.Timeout)
	}

	if key := os.Getenv(albert.EnvAPIKey); key != "" {
		s.APIKey = core.NewSecret(key)
		return s, nil
	}

	ref := profile.KeyRef(name)
	ks, err := a.newKeystore()
	if err != nil {
		return s, fmt.Errorf("open keystore: %w", err)
	}
	key, err := ks.Get(ref)
	if err != nil {
		if keystore.IsNotFound(err) {
			return s, &core.ConfigError{
				Field:   "api_key",
				Message: fmt.Sprintf("no API key: set %s or run 'albert keys set %s'", albert.EnvAPIKey, ref),
			}
		}
		return s, fmt.Errorf("read keystore: %w", err)
	}
	s.APIKey = core.NewSecret(key)
	return s, nil
}

// withClient resolves settings, creates a client, runs fn and closes the client.
func (a *App) withClient(fn func(*albert.Client) error) (err error) {
	s, err := a.resolveSettings()
	if err != nil {
		return err
	}
	c, err := a.newClient(s)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(c)
}

// chatModel returns the flag value, else the profile's chat model.
func (a *App) chatModel(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if p, _ := a.activeProfile(); p.ChatModel != "" {
		return p.ChatModel, nil
	}
	return "", exitWithCode(ExitValidation, fmt.Errorf("model required: use --model or set chat_model in the profile"))
}

// embeddingModel returns the flag value, else the profile's embedding model.
func (a *App) embeddingModel(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if p, _ := a.activeProfile(); p.EmbeddingModel != "" {
		return p.EmbeddingModel, nil
	}
	return "", exitWithCode(ExitValidation, fmt.Errorf("model required: use --model or set embedding_model in the profile"))
}

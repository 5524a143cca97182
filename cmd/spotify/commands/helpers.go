package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/WavyLabs/rspotify/pkg/spotify"
	"github.com/WavyLabs/rspotify/pkg/spotifyclient"
)

// CreateClient builds a client from the persisted configuration and flags.
func CreateClient() (spotify.Client, error) {
	config := loadConfig()

	clientConfig := &spotify.Config{
		ClientID:       config.ClientID,
		ClientSecret:   config.ClientSecret,
		RedirectURI:    config.RedirectURI,
		AccessToken:    config.Token,
		RefreshToken:   config.RefreshToken,
		TokenCachePath: tokenCachePath(),
	}

	if viper.GetBool("verbose") {
		clientConfig.Debug = true
		clientConfig.Logger = &stderrLogger{}
	}

	if clientConfig.ClientID == "" && clientConfig.AccessToken == "" {
		return nil, fmt.Errorf("%w: run 'spotify login' first", spotify.ErrNotAuthenticated)
	}

	return spotifyclient.New(clientConfig)
}

// outputJSON renders v as indented JSON when the output format asks for it.
func outputJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}

// wantJSON reports whether --output json is in effect.
func wantJSON() bool {
	return viper.GetString("output") == "json"
}

// stderrLogger is the CLI's verbose-mode logger.
type stderrLogger struct{}

func (l *stderrLogger) log(level, msg string, fields map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "[%s] %s %v\n", level, msg, fields)
}

func (l *stderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("debug", msg, fields) }
func (l *stderrLogger) Info(msg string, fields map[string]interface{})  { l.log("info", msg, fields) }
func (l *stderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("warn", msg, fields) }
func (l *stderrLogger) Error(msg string, fields map[string]interface{}) { l.log("error", msg, fields) }

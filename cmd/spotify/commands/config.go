package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/WavyLabs/rspotify/internal/constants"
	"github.com/WavyLabs/rspotify/pkg/spotify"
)

// Config is the CLI's persisted configuration.
type Config struct {
	ClientID     string     `json:"client_id,omitempty"     yaml:"client_id,omitempty"`
	ClientSecret string     `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`
	RedirectURI  string     `json:"redirect_uri,omitempty"  yaml:"redirect_uri,omitempty"`
	Token        string     `json:"token,omitempty"         yaml:"token,omitempty"`
	TokenExpires *time.Time `json:"token_expires,omitempty" yaml:"token_expires,omitempty"`
	RefreshToken string     `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`

	// Global settings
	Output string `json:"output" yaml:"output"`
}

// loadConfig builds the config from whatever viper has read (file, env,
// flags), flags winning.
func loadConfig() *Config {
	config := &Config{
		ClientID:     viper.GetString("client_id"),
		ClientSecret: viper.GetString("client_secret"),
		RedirectURI:  viper.GetString("redirect_uri"),
		Token:        viper.GetString("token"),
		RefreshToken: viper.GetString("refresh_token"),
		Output:       viper.GetString("output"),
	}

	if expires := viper.GetTime("token_expires"); !expires.IsZero() {
		config.TokenExpires = &expires
	}

	if config.Output == "" {
		config.Output = "table"
	}

	return config
}

// configFilePath returns the file to persist to, creating its directory.
func configFilePath() (string, error) {
	if file := viper.ConfigFileUsed(); file != "" {
		return file, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".spotify")
	if err := os.MkdirAll(configDir, constants.ConfigDirPerm); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.yml"), nil
}

// saveConfigStruct writes the config as YAML with owner-only permissions.
func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configFile, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// tokenCachePath is where the library persists tokens between runs.
func tokenCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".spotify", "token.json")
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Get, set, and unset configuration values stored in the config file",
	}

	cmd.AddCommand(newConfigGetCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			value, err := configValue(config, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(os.Stdout, value)

			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if err := setConfigValue(config, args[0], args[1]); err != nil {
				return err
			}

			return saveConfigStruct(config)
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if err := setConfigValue(config, args[0], ""); err != nil {
				return err
			}

			return saveConfigStruct(config)
		},
	}
}

func configValue(config *Config, key string) (string, error) {
	switch key {
	case "client_id":
		return config.ClientID, nil
	case "client_secret":
		return config.ClientSecret, nil
	case "redirect_uri":
		return config.RedirectURI, nil
	case "output":
		return config.Output, nil
	case "token", "refresh_token":
		return "", fmt.Errorf("%w: %s", spotify.ErrTokenFieldsNotPrintable, key)
	default:
		return "", fmt.Errorf("%w: %s", spotify.ErrUnknownConfigKey, key)
	}
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case "client_id":
		config.ClientID = value
	case "client_secret":
		config.ClientSecret = value
	case "redirect_uri":
		config.RedirectURI = value
	case "output":
		config.Output = value
	case "token", "refresh_token":
		return fmt.Errorf("%w: %s", spotify.ErrTokenFieldsCannotUnset, key)
	default:
		return fmt.Errorf("%w: %s", spotify.ErrUnknownConfigKey, key)
	}

	return nil
}

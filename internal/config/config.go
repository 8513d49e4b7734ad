package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the persistent defaults read from meow.yaml and MEOW_* env.
// Command line flags are applied on top of it.
type Config struct {
	Color            string        `mapstructure:"color"`
	Pager            string        `mapstructure:"pager"`
	AnimateCharDelay time.Duration `mapstructure:"animate_char_delay"`
	AnimateLineDelay time.Duration `mapstructure:"animate_line_delay"`
	ColorNumber      string        `mapstructure:"color_number"`
	ColorHighlight   string        `mapstructure:"color_highlight"`
	ColorError       string        `mapstructure:"color_error"`
	ColorSuccess     string        `mapstructure:"color_success"`
	ColorFilename    string        `mapstructure:"color_filename"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper
func Init() error {
	viper.SetDefault("color", "auto")
	viper.SetDefault("pager", "less")
	viper.SetDefault("animate_char_delay", 10*time.Millisecond)
	viper.SetDefault("animate_line_delay", 50*time.Millisecond)
	viper.SetDefault("color_number", "33")    // Yellow
	viper.SetDefault("color_highlight", "36") // Cyan
	viper.SetDefault("color_error", "31")     // Red
	viper.SetDefault("color_success", "32")   // Green
	viper.SetDefault("color_filename", "35")  // Magenta

	viper.SetConfigName("meow")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "meow"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("MEOW")
	viper.AutomaticEnv()

	// Try to read config, but don't fail if not found or malformed
	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetColor returns the color mode: auto, always or never
func GetColor() string {
	return viper.GetString("color")
}

// GetPager returns the pager command line, or "builtin"
func GetPager() string {
	return viper.GetString("pager")
}

// GetAnimateCharDelay returns the pause after each animated character
func GetAnimateCharDelay() time.Duration {
	return viper.GetDuration("animate_char_delay")
}

// GetAnimateLineDelay returns the pause after each animated line
func GetAnimateLineDelay() time.Duration {
	return viper.GetDuration("animate_line_delay")
}

// GetColorNumber returns ANSI color code for line numbers
func GetColorNumber() string {
	return viper.GetString("color_number")
}

// GetColorHighlight returns ANSI color code for highlighted text
func GetColorHighlight() string {
	return viper.GetString("color_highlight")
}

// GetColorError returns ANSI color code for errors
func GetColorError() string {
	return viper.GetString("color_error")
}

// GetColorSuccess returns ANSI color code for the shell prompt
func GetColorSuccess() string {
	return viper.GetString("color_success")
}

// GetColorFilename returns ANSI color code for file banners
func GetColorFilename() string {
	return viper.GetString("color_filename")
}

// SetColor sets color mode at runtime
func SetColor(mode string) {
	viper.Set("color", mode)
	C.Color = mode
}

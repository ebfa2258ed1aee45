package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/andarms/andarms.com/internal/config"
)

var cfgFile string
var appConfig config.Config
var siteParams map[string]interface{}

var rootCmd = &cobra.Command{
	Use:   "andarms",
	Short: "Builds andarms.com from Markdown content collections",
	Long: `andarms is the generator behind andarms.com. It validates the blog and
project content collections against their schemas, renders Markdown through
the layouts, and writes the static site to the output directory.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

// Execute runs the CLI. params is the free-form site parameter map loaded
// from config.yaml, exposed to templates as .Site.Params.
func Execute(params map[string]interface{}) {
	siteParams = params
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

func initializeConfig(_ *cobra.Command) error {
	v := viper.New()

	v.SetDefault("siteTitle", "andarms.com")
	v.SetDefault("baseURL", "")
	v.SetDefault("outputDir", "public")
	v.SetDefault("contentDir", "content")
	v.SetDefault("layoutsDir", "layouts")
	v.SetDefault("staticDir", "static")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("ANDARMS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFile != "" {
				return fmt.Errorf("config file %s not found: %w", cfgFile, err)
			}
			fmt.Println("No config file found, using defaults and environment variables.")
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		fmt.Println("Using config file:", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return nil
}

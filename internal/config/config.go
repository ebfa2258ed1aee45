package config

type Config struct {
	SiteTitle  string `mapstructure:"siteTitle"`
	BaseURL    string `mapstructure:"baseURL"`
	OutputDir  string `mapstructure:"outputDir"`
	ContentDir string `mapstructure:"contentDir"`
	LayoutsDir string `mapstructure:"layoutsDir"`
	StaticDir  string `mapstructure:"staticDir"`
}

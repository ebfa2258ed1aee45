package main

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/andarms/andarms.com/cmd"
)

// loadSiteParams reads the free-form site parameters from config.yaml.
// The typed build settings are decoded separately by the CLI layer; this
// map carries everything else (author, social links, ...) into templates.
func loadSiteParams(filename string) (map[string]interface{}, error) {
	yamlFile, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]interface{}{}, nil
		}
		return nil, fmt.Errorf("error reading config file %s: %w", filename, err)
	}

	params := map[string]interface{}{}
	if err := yaml.Unmarshal(yamlFile, &params); err != nil {
		return nil, fmt.Errorf("error unmarshalling config file %s: %w", filename, err)
	}
	return params, nil
}

func main() {
	params, err := loadSiteParams("config.yaml")
	if err != nil {
		log.Fatalf("Error loading site configuration: %v", err)
	}
	cmd.Execute(params)
}

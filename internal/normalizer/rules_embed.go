package normalizer

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/rules.yaml
var rulesYAML []byte

// RulesConfig chứa cấu hình rules được load từ YAML
type RulesConfig struct {
	Boilerplate      []string `yaml:"boilerplate"`
	LocationKeywords []string `yaml:"location_keywords"`
	BangkokAliases   []string `yaml:"bangkok_aliases"`
	BangkokFormal    string   `yaml:"bangkok_formal"`
}

// LoadRulesConfig load cấu hình rules từ embedded YAML
func LoadRulesConfig() (*RulesConfig, error) {
	config := &RulesConfig{}
	if err := yaml.Unmarshal(rulesYAML, config); err != nil {
		return nil, fmt.Errorf("lỗi đọc rules.yaml: %w", err)
	}
	return config, nil
}

// Package security implements the read-only gate for generated SQL.
package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/sqlchat-go/assets"
	"github.com/doeshing/sqlchat-go/internal/domain"
	"github.com/doeshing/sqlchat-go/internal/ports"
)

// Gate implements the SecurityService port with a case-insensitive substring
// scan over a keyword blacklist. It is deliberately not a tokenizer: a
// forbidden word inside a string literal or identifier is still rejected, and
// the check cannot be weakened without a real tokenizer.
type Gate struct {
	keywords []string
}

// RulesFile is the YAML schema root for a keyword rules file.
type RulesFile struct {
	Rules struct {
		ForbiddenKeywords []string `yaml:"forbidden_keywords"`
	} `yaml:"rules"`
}

// NewGate loads keyword rules from disk, falling back to the built-in
// blacklist when the file is missing or empty.
func NewGate(path string) (*Gate, error) {
	keywords, err := loadKeywords(path)
	if err != nil {
		return nil, err
	}
	upper := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		upper = append(upper, strings.ToUpper(strings.TrimSpace(keyword)))
	}
	return &Gate{keywords: upper}, nil
}

// Evaluate implements ports.SecurityService.
func (g *Gate) Evaluate(sql string) (domain.SecurityAssessment, error) {
	if g == nil {
		return domain.SecurityAssessment{}, errors.New("security gate nil")
	}
	upper := strings.ToUpper(sql)
	for _, keyword := range g.keywords {
		if strings.Contains(upper, keyword) {
			return domain.SecurityAssessment{
				Keyword: keyword,
				Message: fmt.Sprintf("不允许执行 %s 操作，仅支持 SELECT 查询", keyword),
			}, nil
		}
	}
	return domain.SecurityAssessment{Allowed: true}, nil
}

func loadKeywords(path string) ([]string, error) {
	if path == "" {
		return defaultKeywords(), nil
	}
	data, err := os.ReadFile(expandPath(path))
	if err != nil {
		// fall back to defaults
		return defaultKeywords(), nil
	}
	var rules RulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, err
	}
	if len(rules.Rules.ForbiddenKeywords) == 0 {
		return defaultKeywords(), nil
	}
	return rules.Rules.ForbiddenKeywords, nil
}

func defaultKeywords() []string {
	var rules RulesFile
	if err := yaml.Unmarshal(assets.DefaultRulesYAML, &rules); err == nil && len(rules.Rules.ForbiddenKeywords) > 0 {
		return rules.Rules.ForbiddenKeywords
	}
	return []string{"INSERT", "UPDATE", "DELETE", "DROP", "ALTER", "CREATE", "TRUNCATE"}
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return path
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.SecurityService = (*Gate)(nil)

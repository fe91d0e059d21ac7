package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/scholarsite/internal/model"
)

// ErrAborted is returned when the user declines to overwrite existing data.
var ErrAborted = errors.New("init aborted")

// RunWizard interactively collects the owner profile and server settings,
// writes the starter data files under the site directory and saves the
// config to configPath.
func RunWizard(configPath string) (*Config, error) {
	fmt.Println("Welcome to scholarsite! Let's set up your homepage.")
	fmt.Println()

	cfg := DefaultConfig()

	siteDir, err := ask("Site directory", cfg.SiteDir, required)
	if err != nil {
		return nil, err
	}
	cfg.SiteDir = siteDir

	if _, err := os.Stat(filepath.Join(cfg.DataPath(), "site.json")); err == nil {
		confirm := promptui.Prompt{
			Label:     "Data files already exist. Overwrite",
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			return nil, ErrAborted
		}
	}

	var profile model.SiteProfile
	fields := []struct {
		label string
		dst   *string
		check promptui.ValidateFunc
	}{
		{"Full name", &profile.Name, required},
		{"Title (e.g. PhD Student)", &profile.Title, nil},
		{"Affiliation", &profile.Affiliation, nil},
		{"Location", &profile.Location, nil},
		{"Email", &profile.Email, email},
		{"Short bio", &profile.About, nil},
	}
	for _, f := range fields {
		if *f.dst, err = ask(f.label, "", f.check); err != nil {
			return nil, err
		}
	}

	interests, err := ask("Research interests (comma-separated)", "", nil)
	if err != nil {
		return nil, err
	}
	profile.Interests = splitAndTrim(interests)

	port, err := ask("Development server port", strconv.Itoa(cfg.Port), portNumber)
	if err != nil {
		return nil, err
	}
	cfg.Port, _ = strconv.Atoi(port)

	reloadPrompt := promptui.Select{
		Label: "Reload the browser when files change",
		Items: []string{"yes", "no"},
	}
	idx, _, err := reloadPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("live reload selection: %w", err)
	}
	cfg.LiveReload = idx == 0

	if err := Scaffold(cfg, profile); err != nil {
		return nil, err
	}
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nData files written to %s\n", cfg.DataPath())
	fmt.Printf("Configuration saved to %s\n", configPath)
	return cfg, nil
}

// Scaffold writes site.json for profile and empty publication and news
// lists into the config's data directory.
func Scaffold(cfg *Config, profile model.SiteProfile) error {
	dir := cfg.DataPath()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	if profile.Interests == nil {
		profile.Interests = []string{}
	}

	site, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling site profile: %w", err)
	}
	files := map[string][]byte{
		"site.json":         append(site, '\n'),
		"publications.json": []byte("[]\n"),
		"news.json":         []byte("[]\n"),
	}
	for name, body := range files {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, body, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", p, err)
		}
	}
	return nil
}

func ask(label, def string, validate promptui.ValidateFunc) (string, error) {
	p := promptui.Prompt{Label: label, Default: def, Validate: validate}
	v, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("%s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(v), nil
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func email(s string) error {
	s = strings.TrimSpace(s)
	if s != "" && !strings.Contains(s, "@") {
		return errors.New("not an email address")
	}
	return nil
}

func portNumber(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	return nil
}

// splitAndTrim splits a comma-separated string, dropping empty items.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}

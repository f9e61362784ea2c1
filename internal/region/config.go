package region

import (
	"bufio"
	"os"
	"strings"

	"biblefetch/internal/services"
)

// Region is one distribution region with its member languages and role
// metadata.
type Region struct {
	Name        string
	Languages   []string
	Trade       []string
	Regional    []string
	Educational []string
	Literacy    []string
}

// ID returns the region's archive-safe identifier: spaces and slashes become
// underscores, anything else non-alphanumeric is dropped.
func (r Region) ID() string {
	replaced := strings.NewReplacer(" ", "_", "/", "_", ":", "").Replace(r.Name)
	var b strings.Builder
	for _, c := range replaced {
		if c == '_' || c == '-' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// ParseConfig reads a regions config file. A line without commas that is not
// all-lowercase starts a region; comma-separated lines list its languages;
// @role: lines attach metadata. A blank line or comment closes the current
// region. Regions without languages are dropped. A missing file is not an
// error, matching the optional nature of region packaging.
func ParseConfig(path string) ([]Region, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, services.Wrap(services.ErrConfiguration, "region", "parse_config", "open regions config", err)
	}
	defer file.Close()

	var regions []Region
	var current *Region

	flush := func() {
		if current != nil && len(current.Languages) > 0 {
			regions = append(regions, *current)
		}
		current = nil
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			flush()
			continue
		}

		if strings.HasPrefix(line, "@") {
			if current == nil {
				continue
			}
			role, value, ok := strings.Cut(line[1:], ":")
			if !ok {
				continue
			}
			langs := splitLanguages(value)
			switch strings.TrimSpace(role) {
			case "trade":
				current.Trade = langs
			case "regional":
				current.Regional = langs
			case "educational":
				current.Educational = langs
			case "literacy":
				current.Literacy = langs
			}
			continue
		}

		if !strings.Contains(line, ",") && line != strings.ToLower(line) {
			flush()
			current = &Region{Name: line}
			continue
		}

		if current != nil {
			current.Languages = append(current.Languages, splitLanguages(line)...)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "region", "parse_config", "read regions config", err)
	}
	return regions, nil
}

func splitLanguages(value string) []string {
	var langs []string
	for _, lang := range strings.Split(value, ",") {
		lang = strings.TrimSpace(lang)
		if lang != "" {
			langs = append(langs, lang)
		}
	}
	return langs
}

package download

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"biblefetch/internal/services"
)

// LoadStorySets parses the story set config. A line without a colon names a
// set; subsequent lines hold comma-separated BOOK:chapters specs belonging to
// it. Blank lines and #-comments are ignored. A missing file yields an empty
// map, since story sets are optional.
func LoadStorySets(path string) (map[string][]BookPlan, error) {
	sets := make(map[string][]BookPlan)

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return sets, nil
		}
		return nil, services.Wrap(services.ErrConfiguration, "download", "load_story_sets", "open story set config", err)
	}
	defer file.Close()

	var current string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.Contains(line, ":") {
			current = line
			sets[current] = nil
			continue
		}
		if current == "" {
			continue
		}
		for _, spec := range strings.Split(line, ",") {
			spec = strings.TrimSpace(spec)
			book, chapterSpec, ok := strings.Cut(spec, ":")
			if !ok {
				continue
			}
			chapters, err := ParseChapterSpec(chapterSpec)
			if err != nil {
				return nil, services.Wrap(services.ErrConfiguration, "download", "load_story_sets", fmt.Sprintf("story set %q entry %q", current, spec), err)
			}
			sets[current] = append(sets[current], BookPlan{
				Book:     strings.ToUpper(strings.TrimSpace(book)),
				Chapters: chapters,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "download", "load_story_sets", "read story set config", err)
	}
	return sets, nil
}

package download

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"biblefetch/internal/services"
)

// refPattern matches embedded scripture references of the form
// <<<REF: GEN 1:1-2>>>. Only the book and chapter matter here; verse ranges
// are resolved later against the downloaded chapter text.
var refPattern = regexp.MustCompile(`<<<REF:\s*([A-Z0-9]+)\s+(\d+):[^>]+>>>`)

// LoadTemplateReferences scans every markdown file under
// {templateDir}/{templateID} and collects the referenced books and chapters.
func LoadTemplateReferences(templateDir, templateID string) ([]BookPlan, error) {
	dir := filepath.Join(templateDir, templateID)
	matches, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "download", "load_template", "glob template files", err)
	}
	if len(matches) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "download", "load_template", fmt.Sprintf("no markdown files in %s", dir), nil)
	}
	sort.Strings(matches)

	bookChapters := make(map[string]map[int]struct{})
	for _, path := range matches {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "download", "load_template", fmt.Sprintf("read %s", filepath.Base(path)), err)
		}
		for _, ref := range refPattern.FindAllStringSubmatch(string(content), -1) {
			book := strings.ToUpper(ref[1])
			chapter, err := strconv.Atoi(ref[2])
			if err != nil {
				continue
			}
			if bookChapters[book] == nil {
				bookChapters[book] = make(map[int]struct{})
			}
			bookChapters[book][chapter] = struct{}{}
		}
	}

	books := make([]string, 0, len(bookChapters))
	for book := range bookChapters {
		books = append(books, book)
	}
	sort.Strings(books)

	plans := make([]BookPlan, 0, len(books))
	for _, book := range books {
		chapters := make([]int, 0, len(bookChapters[book]))
		for chapter := range bookChapters[book] {
			chapters = append(chapters, chapter)
		}
		sort.Ints(chapters)
		plans = append(plans, BookPlan{Book: book, Chapters: chapters})
	}
	return plans, nil
}

// BooksSpec renders template plans back into the combined books argument
// format: chapters joined with commas, books joined with spaces.
func BooksSpec(plans []BookPlan) string {
	specs := make([]string, 0, len(plans))
	for _, plan := range plans {
		chapters := make([]string, 0, len(plan.Chapters))
		for _, chapter := range plan.Chapters {
			chapters = append(chapters, strconv.Itoa(chapter))
		}
		specs = append(specs, plan.Book+":"+strings.Join(chapters, ","))
	}
	return strings.Join(specs, " ")
}

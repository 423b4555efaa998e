package note

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DefaultTag is added to the front matter of every created note.
const DefaultTag = "weekly"

// FrontMatter is the YAML header written when front matter is enabled.
type FrontMatter struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	Created string   `yaml:"created"`
	Tags    []string `yaml:"tags"`
}

// Content renders the initial body of a new note: a level-1 heading with
// the stem followed by a blank line. With frontmatter set, a YAML header
// carrying a fresh id precedes the heading.
func Content(stem string, created time.Time, frontmatter bool) (string, error) {
	heading := fmt.Sprintf("# %s\n\n", stem)
	if !frontmatter {
		return heading, nil
	}

	fm := FrontMatter{
		ID:      uuid.NewString(),
		Title:   stem,
		Created: created.Format(time.RFC3339),
		Tags:    []string{DefaultTag},
	}

	data, err := yaml.Marshal(&fm)
	if err != nil {
		return "", fmt.Errorf("failed to marshal front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n")
	b.WriteString(heading)
	return b.String(), nil
}

// splitFrontMatter returns the YAML header lines and the body. ok is false
// when the note has no complete header.
func splitFrontMatter(content string) (header, body string, ok bool) {
	lines := strings.Split(content, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", content, false
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.Join(lines[1:i], "\n"), strings.Join(lines[i+1:], "\n"), true
		}
	}
	return "", content, false
}

// ParseFrontMatter extracts the YAML header from note content. It returns
// nil when the note has none.
func ParseFrontMatter(content string) (*FrontMatter, error) {
	header, _, ok := splitFrontMatter(content)
	if !ok {
		return nil, nil
	}

	var fm FrontMatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return nil, fmt.Errorf("failed to parse front matter: %w", err)
	}
	return &fm, nil
}

// StripFrontMatter returns content without its YAML header.
func StripFrontMatter(content string) string {
	_, body, _ := splitFrontMatter(content)
	return body
}

package vault

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var inlineTag = regexp.MustCompile(`(?:^|[\s(\[,])#([\p{L}\p{N}_/\-]+)`)

type frontmatter struct {
	Tags interface{} `yaml:"tags"`
	Tag  interface{} `yaml:"tag"`
}

// ParseTags returns the unique, normalised tags of a note: those listed in
// its YAML frontmatter and #tags in the body outside code fences.
func ParseTags(data []byte) ([]string, error) {
	seen := map[string]struct{}{}
	add := func(raw string) {
		t := NormalizeTag(raw)
		if t == "" || isNumeric(t) {
			return
		}
		seen[t] = struct{}{}
	}

	meta, body, ok := splitFrontmatter(data)
	if ok {
		var fm frontmatter
		if err := yaml.Unmarshal(meta, &fm); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMetadata, err)
		}
		for _, v := range []interface{}{fm.Tags, fm.Tag} {
			for _, t := range tagValues(v) {
				add(t)
			}
		}
	}

	inFence := false
	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		for _, m := range inlineTag.FindAllStringSubmatch(line, -1) {
			add(m[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags, nil
}

// splitFrontmatter separates a leading "---" delimited block from the body.
func splitFrontmatter(data []byte) (meta, body []byte, ok bool) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	first, rest, found := bytes.Cut(data, []byte("\n"))
	if !found || strings.TrimSpace(string(first)) != "---" {
		return nil, data, false
	}
	offset := 0
	for {
		line, next, more := bytes.Cut(rest[offset:], []byte("\n"))
		if strings.TrimSpace(string(line)) == "---" {
			return rest[:offset], next, true
		}
		if !more {
			return nil, data, false
		}
		offset += len(line) + 1
	}
}

// tagValues accepts a YAML list, a single string, or a comma/space separated
// string.
func tagValues(v interface{}) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return strings.FieldsFunc(val, func(r rune) bool { return r == ',' || r == ' ' })
	case []interface{}:
		var out []string
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			} else if item != nil {
				out = append(out, fmt.Sprint(item))
			}
		}
		return out
	default:
		return []string{fmt.Sprint(val)}
	}
}

func isNumeric(tag string) bool {
	for _, r := range tag {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

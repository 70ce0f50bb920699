package optimizer

import "strings"

// section 文档中的一个分段。
type section struct {
	name    string
	content string
}

// preambleSection 首个标题之前内容的分段名。
const preambleSection = "preamble"

// splitSections 按 Markdown 标题将内容切分为分段。
//
// 每个以 # 开头的标题行开启一个新分段，分段名为去掉
// 井号后的标题文本；首个标题之前的内容归入 "preamble"。
// 没有任何标题时整个内容作为单个 preamble 分段返回。
func splitSections(content string) []section {
	lines := strings.Split(content, "\n")

	var sections []section
	current := section{name: preambleSection}
	var body strings.Builder

	flush := func() {
		current.content = strings.TrimSpace(body.String())
		if current.content != "" || current.name != preambleSection {
			sections = append(sections, current)
		}
		body.Reset()
	}

	for _, line := range lines {
		if name, ok := headingName(line); ok {
			flush()
			current = section{name: name}
			continue
		}
		body.WriteString(line)
		body.WriteString("\n")
	}
	flush()

	if len(sections) == 0 {
		return []section{{name: preambleSection, content: strings.TrimSpace(content)}}
	}
	return sections
}

// headingName 解析 Markdown 标题行，返回标题文本。
func headingName(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#") {
		return "", false
	}
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level > 6 || level == len(trimmed) || trimmed[level] != ' ' {
		return "", false
	}
	name := strings.TrimSpace(trimmed[level:])
	if name == "" {
		return "", false
	}
	return name, true
}

package ai

import (
	"strings"
	"unicode"
)

const (
	defaultMaxKeyPoints  = 5
	minKeyPointRunes     = 8
	maxKeyPointRunes     = 160
	keyPointSourceWindow = 6000 // 只在文本前部提取
)

// ExtractKeyPoints 从文本中启发式提取要点，不依赖AI服务
// 优先取列表项和小标题，不足时按句子补齐
func ExtractKeyPoints(text string, max int) []string {
	if max <= 0 {
		max = defaultMaxKeyPoints
	}
	text = truncateRunes(text, keyPointSourceWindow)

	var points []string
	seen := make(map[string]bool)

	appendPoint := func(candidate string) bool {
		candidate = strings.TrimSpace(candidate)
		runes := []rune(candidate)
		if len(runes) < minKeyPointRunes {
			return false
		}
		if len(runes) > maxKeyPointRunes {
			candidate = string(runes[:maxKeyPointRunes])
		}
		if seen[candidate] {
			return false
		}
		seen[candidate] = true
		points = append(points, candidate)
		return len(points) >= max
	}

	// 第一轮：markdown列表项和小标题
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		var candidate string
		switch {
		case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "), strings.HasPrefix(trimmed, "• "):
			candidate = trimmed[2:]
		case strings.HasPrefix(trimmed, "#"):
			candidate = strings.TrimLeft(trimmed, "# ")
		case startsWithOrdinal(trimmed):
			candidate = trimmed
		default:
			continue
		}
		if appendPoint(candidate) {
			return points
		}
	}

	// 第二轮：按句子补齐
	for _, sentence := range splitSentences(text) {
		if appendPoint(sentence) {
			return points
		}
	}

	return points
}

// startsWithOrdinal 判断行首是否为 "1." "2)" 这类序号
func startsWithOrdinal(line string) bool {
	runes := []rune(line)
	if len(runes) < 3 || !unicode.IsDigit(runes[0]) {
		return false
	}
	i := 0
	for i < len(runes) && unicode.IsDigit(runes[i]) {
		i++
	}
	return i < len(runes) && (runes[i] == '.' || runes[i] == ')' || runes[i] == '、')
}

// splitSentences 按中英文句末标点切句
func splitSentences(text string) []string {
	var sentences []string
	var sb strings.Builder
	for _, r := range text {
		sb.WriteRune(r)
		switch r {
		case '。', '！', '？', '.', '!', '?', '\n':
			if s := strings.TrimSpace(sb.String()); s != "" {
				sentences = append(sentences, s)
			}
			sb.Reset()
		}
	}
	if s := strings.TrimSpace(sb.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

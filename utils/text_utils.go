package utils

import (
	"strings"
	"unicode/utf8"
)

// DeduplicateSlice 去重字符串切片，去掉空白项并保持原有顺序
func DeduplicateSlice(input []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(input))

	for _, val := range input {
		val = strings.TrimSpace(val)
		if val != "" && !seen[val] {
			result = append(result, val)
			seen[val] = true
		}
	}

	return result
}

// TruncateRunes 按字符数截断文本，超出部分以省略号结尾
func TruncateRunes(text string, max int) string {
	text = strings.TrimSpace(text)
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:max])) + "…"
}

// CollapseWhitespace 把换行和连续空白压缩为单个空格，避免破坏提示词的行结构
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// CalculateTokens 粗略估算文本token数：英文单词1token，其余非ASCII字符各1token
func CalculateTokens(text string) int {
	words := len(strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	}))

	other := 0
	for _, r := range text {
		if r > utf8.RuneSelf {
			other++
		}
	}
	return words + other
}

// CleanJSONResponse 去掉模型输出中的markdown代码块标记，截取第一个 '{' 到最后一个 '}' 之间的内容
func CleanJSONResponse(input string) string {
	cleaned := strings.TrimSpace(input)
	if cleaned == "" {
		return cleaned
	}

	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```JSON")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || start >= end {
		return cleaned
	}
	return cleaned[start : end+1]
}

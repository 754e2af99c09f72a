package common

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	// 多个空格/制表符合并为一个空格
	spaceRe = regexp.MustCompile(`[ \t\f\v]+`)
	// 多个换行符（3个或以上）合并为两个换行
	newlineRe = regexp.MustCompile(`\n{3,}`)
)

// 零宽字符集合
var zeroWidthRunes = map[rune]bool{
	'\u200B': true, // Zero Width Space
	'\u200C': true, // Zero Width Non-Joiner
	'\u200D': true, // Zero Width Joiner
	'\uFEFF': true, // Zero Width No-Break Space (BOM)
	'\u2060': true, // Word Joiner
	'\u180E': true, // Mongolian Vowel Separator
}

// 非标准空格字符（转换为普通空格）
var nonStandardSpaces = map[rune]bool{
	'\u00A0': true, // Non-breaking space
	'\u1680': true, // Ogham Space Mark
	'\u2000': true, // En Quad
	'\u2001': true, // Em Quad
	'\u2002': true, // En Space
	'\u2003': true, // Em Space
	'\u2004': true, // Three-Per-Em Space
	'\u2005': true, // Four-Per-Em Space
	'\u2006': true, // Six-Per-Em Space
	'\u2007': true, // Figure Space
	'\u2008': true, // Punctuation Space
	'\u2009': true, // Thin Space
	'\u200A': true, // Hair Space
	'\u202F': true, // Narrow No-Break Space
	'\u205F': true, // Medium Mathematical Space
	'\u3000': true, // Ideographic Space (全角空格)
}

// isPrivateUse 私有使用区字符，PDF提取结果里常见的字体映射残留
func isPrivateUse(r rune) bool {
	return (r >= 0xE000 && r <= 0xF8FF) ||
		(r >= 0xF0000 && r <= 0xFFFFD) ||
		(r >= 0x100000 && r <= 0x10FFFD)
}

// CleanExtractedText 清洗提取出的文本，供落库和AI增强使用
// 统一Unicode形式（NFC），去掉NUL/零宽/私有区字符，归一空白和换行
func CleanExtractedText(input []byte) (string, error) {
	// 1. UTF-8 校验
	if !utf8.Valid(input) {
		return "", errors.New("invalid UTF-8 sequence")
	}

	// 2. Unicode 归一化 + 统一换行符
	s := norm.NFC.String(string(input))
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	// 3. 按字符过滤
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == 0x00:
			// NULL 字符MySQL和PostgreSQL的text列都不接受
		case zeroWidthRunes[r]:
			// 丢弃零宽字符
		case isPrivateUse(r):
			// 丢弃私有区字符
		case nonStandardSpaces[r]:
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}

	// 4. 空白归一
	out := spaceRe.ReplaceAllString(b.String(), " ")
	out = newlineRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out), nil
}

package common

import "testing"

func TestCleanExtractedText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"普通文本不变", "机器学习是人工智能的分支。", "机器学习是人工智能的分支。"},
		{"合并连续空格", "a  \t  b", "a b"},
		{"压缩多余空行", "第一段\n\n\n\n第二段", "第一段\n\n第二段"},
		{"去掉零宽字符", "知\u200b识\ufeff库", "知识库"},
		{"全角空格归一", "标题\u3000正文", "标题 正文"},
		{"不换行空格归一", "a\u00a0b", "a b"},
		{"去掉NUL", "a\x00b", "ab"},
		{"去掉私有区字符", "页眉\ue000正文", "页眉正文"},
		{"CRLF归一", "line1\r\nline2\rline3", "line1\nline2\nline3"},
		{"首尾空白去除", "  文本  ", "文本"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanExtractedText([]byte(tt.in))
			if err != nil {
				t.Fatalf("CleanExtractedText(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("CleanExtractedText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanExtractedTextInvalidUTF8(t *testing.T) {
	if _, err := CleanExtractedText([]byte{0xff, 0xfe, 0x00}); err == nil {
		t.Fatal("expected error for invalid UTF-8 input")
	}
}

package ai

import (
	"strings"
	"testing"
)

func TestExtractKeyPointsFromBullets(t *testing.T) {
	text := `# 机器学习基础知识总结
机器学习是人工智能的一个分支。

- 监督学习需要带标签的训练数据
- 无监督学习从无标签数据中发现结构
- 强化学习通过与环境交互获得奖励信号
`
	points := ExtractKeyPoints(text, 5)
	if len(points) < 3 {
		t.Fatalf("got %d key points, want at least 3: %v", len(points), points)
	}
	if points[0] != "机器学习基础知识总结" {
		t.Errorf("first point = %q, want heading first", points[0])
	}
}

func TestExtractKeyPointsFromSentences(t *testing.T) {
	text := "神经网络由多层神经元组成。反向传播算法用于计算梯度。梯度下降优化网络参数。"
	points := ExtractKeyPoints(text, 2)
	if len(points) != 2 {
		t.Fatalf("got %d key points, want 2: %v", len(points), points)
	}
}

func TestExtractKeyPointsOrderedList(t *testing.T) {
	text := "1. Install the toolchain first\n2. Configure the database connection\n3. Run the migration step"
	points := ExtractKeyPoints(text, 5)
	if len(points) != 3 {
		t.Fatalf("got %d key points, want 3: %v", len(points), points)
	}
}

func TestExtractKeyPointsShortText(t *testing.T) {
	points := ExtractKeyPoints("too short", 5)
	if len(points) != 1 {
		t.Fatalf("got %d key points, want 1: %v", len(points), points)
	}
}

func TestExtractKeyPointsDeduplicates(t *testing.T) {
	text := strings.Repeat("- 同一个要点内容重复出现\n", 10)
	points := ExtractKeyPoints(text, 5)
	if len(points) != 1 {
		t.Errorf("got %d key points, want 1 after dedup: %v", len(points), points)
	}
}

func TestExtractKeyPointsCapsLength(t *testing.T) {
	long := "- " + strings.Repeat("长", 500) + "\n"
	points := ExtractKeyPoints(long, 5)
	if len(points) != 1 {
		t.Fatalf("got %d key points, want 1", len(points))
	}
	if got := len([]rune(points[0])); got > maxKeyPointRunes {
		t.Errorf("key point length = %d runes, want <= %d", got, maxKeyPointRunes)
	}
}

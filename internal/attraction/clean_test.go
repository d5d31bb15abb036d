package attraction

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"故宫博物院·Palace Museum", "故宫博物院"},
		{"The Bund 外滩", "外滩"},
		{"外滩 The Bund", "外滩"},
		{"锦里古街 Jinli Street", "锦里古街"},
		{"1. 宽窄巷子", "宽窄巷子"},
		{"大熊猫繁育研究基地（成都）", "大熊猫繁育研究基地成都"},
		{"武侯祠   博物馆", "武侯祠 博物馆"},
		{"  杜甫草堂  ", "杜甫草堂"},
		{"Chengdu Park", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Clean(tt.raw); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCleanIsFixedPoint(t *testing.T) {
	inputs := []string{
		"故宫博物院·Palace Museum",
		"Mount Qingcheng 青城山 Scenic Area",
		"2. 都江堰景区 (Dujiangyan)",
		"人民公园 People's Park",
		"春熙路 - 太古里 Taikoo Li",
		"黄龙溪古镇\t\n 门票",
		"!!!",
		"abc 123 天府广场 456 def",
	}

	for _, in := range inputs {
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Errorf("Clean not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

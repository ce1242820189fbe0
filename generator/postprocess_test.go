package generator

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "  hello world \n", "  hello world \n"},
		{"endoftext", "def f():\n    pass<|endoftext|>", "def f():\n    pass"},
		{"deepseek markers", "<｜begin▁of▁sentence｜>Hi there<｜end▁of▁sentence｜>", "Hi there"},
		{"llama markers", "<s> sure </s>", "sure"},
		{"repeated end markers", "done</s></s>", "done"},
		{"interior kept", "a  <b> & c", "a  <b> & c"},
		{"interior markers kept", "x <s>y</s> z", "x <s>y</s> z"},
		{"html strikethrough kept", "Use <s>old</s> for strikethrough", "Use <s>old</s> for strikethrough"},
		{"indentation kept", "\n    return 1", "\n    return 1"},
		{"indentation after marker kept", "<s>\n    return 1</s>", "\n    return 1"},
		{"only markers", "<s></s>", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Fatalf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestReadPrompts(t *testing.T) {
	in := "# warm-up prompts\nHello, DeepSeek! Can you complete this sentence:\n\n   Write a haiku  \r\n# trailing comment\n"
	got, err := ReadPrompts(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Hello, DeepSeek! Can you complete this sentence:", "Write a haiku"}
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestModelSpecValidate(t *testing.T) {
	ok := []ModelSpec{
		{Name: "m"},
		{Name: "m", Device: DeviceCPU, DType: DTypeFloat32},
		{Name: "m", Device: DeviceCUDA, DType: DTypeBFloat16},
		{Name: "m", Device: DeviceMPS, DType: DTypeFloat16},
	}
	for _, s := range ok {
		if err := s.Validate(); err != nil {
			t.Errorf("Validate(%+v) = %v", s, err)
		}
	}
	bad := []ModelSpec{{}, {Name: "m", Device: "gpu0"}, {Name: "m", DType: "fp8"}}
	for _, s := range bad {
		if err := s.Validate(); err == nil {
			t.Errorf("Validate(%+v) should fail", s)
		}
	}
}

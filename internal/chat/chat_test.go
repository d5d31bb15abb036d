package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/intelligrit/attraction-scout/internal/model"
)

func TestReadStream(t *testing.T) {
	input := strings.Join([]string{
		`: keep-alive`,
		`data: {"choices":[{"delta":{"content":"宽窄"}}]}`,
		``,
		`data: {"choices":[{"delta":{"role":"assistant"}}]}`,
		`data: not json`,
		`data: {"choices":[{"delta":{"content":"巷子"}}]}`,
		`data: [DONE]`,
		`data: {"choices":[{"delta":{"content":"ignored"}}]}`,
	}, "\n")

	var deltas []string
	got, err := ReadStream(strings.NewReader(input), func(d string) { deltas = append(deltas, d) }, nil)
	if err != nil {
		t.Fatalf("ReadStream: %v", err)
	}
	if got != "宽窄巷子" {
		t.Errorf("expected '宽窄巷子', got %q", got)
	}
	if len(deltas) != 2 {
		t.Errorf("expected 2 deltas, got %v", deltas)
	}
}

func TestReadStreamWithoutDone(t *testing.T) {
	input := "data: {\"choices\":[{\"delta\":{\"content\":\"武侯祠\"}}]}\r\n"
	got, err := ReadStream(strings.NewReader(input), nil, nil)
	if err != nil {
		t.Fatalf("ReadStream: %v", err)
	}
	if got != "武侯祠" {
		t.Errorf("expected '武侯祠', got %q", got)
	}
}

func TestAugmentPrompt(t *testing.T) {
	if got := AugmentPrompt("成都有什么好玩的", nil); got != "成都有什么好玩的" {
		t.Errorf("expected plain question without attractions, got %q", got)
	}

	got := AugmentPrompt("成都有什么好玩的", []model.Attraction{
		{Name: "杜甫草堂", Rating: 4.5, Reviews: "4,000 条点评"},
		{Name: "武侯祠", Rating: 4.5, Reviews: "3,000 条点评"},
	})
	if !strings.HasPrefix(got, `以下是关于"成都有什么好玩的"的网络搜索结果：`) {
		t.Errorf("unexpected prefix: %q", got)
	}
	if !strings.Contains(got, "标题: 杜甫草堂\n评分: 4.5\n点评: 4,000 条点评") {
		t.Errorf("missing first entry: %q", got)
	}
	if strings.Count(got, "---\n") != 1 {
		t.Errorf("expected one separator: %q", got)
	}
	if !strings.HasSuffix(got, `对用户的问题"成都有什么好玩的"进行全面的回答。`) {
		t.Errorf("unexpected suffix: %q", got)
	}
}

func TestConversation(t *testing.T) {
	msgs := Conversation("", "你好")
	if len(msgs) != 2 || msgs[0].Role != "system" || msgs[0].Content != SystemPrompt {
		t.Errorf("unexpected messages: %+v", msgs)
	}
	if msgs[1].Role != "user" || msgs[1].Content != "你好" {
		t.Errorf("unexpected user message: %+v", msgs[1])
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient("http://x", "m", ""); err == nil {
		t.Error("expected error for empty key")
	}
}

func chatServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":"bad key"}`)
			return
		}

		var req apiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.Model != "test-model" || len(req.Messages) != 2 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if req.Stream {
			fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"青城\"}}]}\n\n")
			fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"山\"}}]}\n\n")
			fmt.Fprint(w, "data: [DONE]\n\n")
			return
		}
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"都江堰"}}]}`)
	}))
}

func TestClientComplete(t *testing.T) {
	srv := chatServer(t)
	defer srv.Close()

	c, err := NewClient(srv.URL, "test-model", "sk-test")
	if err != nil {
		t.Fatal(err)
	}

	got, err := c.Complete(context.Background(), Conversation("", "推荐一个景点"))
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "都江堰" {
		t.Errorf("expected '都江堰', got %q", got)
	}
}

func TestClientStream(t *testing.T) {
	srv := chatServer(t)
	defer srv.Close()

	c, err := NewClient(srv.URL, "test-model", "sk-test")
	if err != nil {
		t.Fatal(err)
	}

	var n int
	got, err := c.Stream(context.Background(), Conversation("", "推荐一个景点"), func(string) { n++ })
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	if got != "青城山" || n != 2 {
		t.Errorf("expected '青城山' in 2 deltas, got %q in %d", got, n)
	}
}

func TestClientErrorStatus(t *testing.T) {
	srv := chatServer(t)
	defer srv.Close()

	c, _ := NewClient(srv.URL, "test-model", "sk-wrong")
	_, err := c.Complete(context.Background(), Conversation("", "hi"))
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("expected 401 error, got %v", err)
	}
}

package chat

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

const (
	dataPrefix  = "data: "
	doneMarker  = "[DONE]"
	maxLineSize = 1 << 20
)

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// ReadStream consumes a newline-delimited "data: {...}" event stream up
// to "data: [DONE]" or EOF. Lines without the data prefix are ignored and
// undecodable events are logged and skipped.
func ReadStream(r io.Reader, onDelta func(string), log *zap.Logger) (string, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var out strings.Builder
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		payload, ok := strings.CutPrefix(line, dataPrefix)
		if !ok {
			continue
		}
		if payload == doneMarker {
			break
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			log.Warn("skipping undecodable stream event", zap.String("payload", payload), zap.Error(err))
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}

		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		out.WriteString(delta)
		if onDelta != nil {
			onDelta(delta)
		}
	}

	if err := sc.Err(); err != nil {
		return out.String(), fmt.Errorf("reading stream: %w", err)
	}
	return out.String(), nil
}

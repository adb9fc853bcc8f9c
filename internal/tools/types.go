package tools

import "fmt"

// Definition describes one tool and its input schema, as exposed to callers
// before invocation.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// ContentBlock is one piece of content in a tool result.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Result is the uniform envelope returned for every tool call, success or
// failure. Failures carry IsError plus a descriptive text block; the dispatch
// boundary never surfaces an error any other way.
type Result struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

func textResult(text string) Result {
	return Result{Content: []ContentBlock{{Type: "text", Text: text}}}
}

func errorResult(format string, args ...any) Result {
	return Result{
		Content: []ContentBlock{{Type: "text", Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

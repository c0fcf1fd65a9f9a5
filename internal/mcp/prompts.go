// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mcp

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultSearchPromptPapers = 5

func (s *Server) registerPrompts() {
	s.impl.AddPrompt(&mcpsdk.Prompt{
		Name:        "basic_question_prompt",
		Description: "Pass a question through unchanged.",
		Arguments: []*mcpsdk.PromptArgument{
			{Name: "question_text", Description: "The question to be asked.", Required: true},
		},
	}, s.handleBasicQuestionPrompt)

	s.impl.AddPrompt(&mcpsdk.Prompt{
		Name:        "math_problem_prompt",
		Description: "Ask for a math problem to be solved, suggesting a tool.",
		Arguments: []*mcpsdk.PromptArgument{
			{Name: "problem_description", Description: "The math problem, e.g. 'what is 100 divided by 25?'.", Required: true},
			{Name: "tool_name", Description: "Suggested tool, defaults to 'calculator'."},
		},
	}, s.handleMathProblemPrompt)

	s.impl.AddPrompt(&mcpsdk.Prompt{
		Name:        "request_current_time_prompt",
		Description: "Ask for the current time, optionally for a timezone and in a specific format.",
		Arguments: []*mcpsdk.PromptArgument{
			{Name: "time_zone", Description: "Timezone the time is requested for, e.g. 'UTC'."},
			{Name: "desired_format", Description: "Desired time layout."},
		},
	}, s.handleRequestCurrentTimePrompt)

	s.impl.AddPrompt(&mcpsdk.Prompt{
		Name:        "generate_search_prompt",
		Description: "Instruct an LLM to find and discuss academic papers on a topic using the paper tools.",
		Arguments: []*mcpsdk.PromptArgument{
			{Name: "topic", Description: "The topic to search for papers on.", Required: true},
			{Name: "num_papers", Description: "Desired number of papers, defaults to 5."},
		},
	}, s.handleGenerateSearchPrompt)
}

func promptResult(description, text string) *mcpsdk.GetPromptResult {
	return &mcpsdk.GetPromptResult{
		Description: description,
		Messages: []*mcpsdk.PromptMessage{{
			Role:    "user",
			Content: &mcpsdk.TextContent{Text: text},
		}},
	}
}

func promptArg(req *mcpsdk.GetPromptRequest, name string) string {
	if req.Params == nil {
		return ""
	}
	return req.Params.Arguments[name]
}

func (s *Server) handleBasicQuestionPrompt(ctx context.Context, req *mcpsdk.GetPromptRequest) (*mcpsdk.GetPromptResult, error) {
	question := promptArg(req, "question_text")
	if question == "" {
		return nil, fmt.Errorf("question_text is required")
	}
	return promptResult("A simple passthrough question.", question), nil
}

func (s *Server) handleMathProblemPrompt(ctx context.Context, req *mcpsdk.GetPromptRequest) (*mcpsdk.GetPromptResult, error) {
	problem := promptArg(req, "problem_description")
	if problem == "" {
		return nil, fmt.Errorf("problem_description is required")
	}
	toolName := promptArg(req, "tool_name")
	if toolName == "" {
		toolName = "calculator"
	}
	text := fmt.Sprintf("Please solve the following math problem: '%s'. If helpful, you can use the '%s' tool.", problem, toolName)
	return promptResult("A math problem with a tool suggestion.", text), nil
}

func (s *Server) handleRequestCurrentTimePrompt(ctx context.Context, req *mcpsdk.GetPromptRequest) (*mcpsdk.GetPromptResult, error) {
	timeZone := promptArg(req, "time_zone")
	desiredFormat := promptArg(req, "desired_format")

	promptText := "What is the current time?"
	if timeZone != "" {
		promptText += fmt.Sprintf(" in %s?", timeZone)
	}

	toolSuggestion := "You can use the 'get_current_datetime' tool"
	if desiredFormat != "" {
		toolSuggestion += fmt.Sprintf(" with format='%s'", desiredFormat)
	}
	toolSuggestion += "."

	return promptResult("A request for the current time.", promptText+" "+toolSuggestion), nil
}

func (s *Server) handleGenerateSearchPrompt(ctx context.Context, req *mcpsdk.GetPromptRequest) (*mcpsdk.GetPromptResult, error) {
	topic := promptArg(req, "topic")
	if topic == "" {
		return nil, fmt.Errorf("topic is required")
	}
	numPapers := defaultSearchPromptPapers
	if raw := promptArg(req, "num_papers"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("num_papers must be a positive integer, got %q", raw)
		}
		numPapers = n
	}
	return promptResult("A structured paper research workflow.", searchPromptText(topic, numPapers)), nil
}

func searchPromptText(topic string, numPapers int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Search for %d academic papers about '%s' using the 'search_papers' tool.\n\n", numPapers, topic)
	b.WriteString("Follow these instructions:\n")
	fmt.Fprintf(&b, "1. First, use the 'search_papers' tool with arguments: topic='%s', max_results=%d. This will return a list of paper IDs.\n", topic, numPapers)
	b.WriteString("2. For each paper ID found, use the 'extract_info' tool to get detailed information about that paper.\n")
	b.WriteString("3. After gathering information for all papers, present a consolidated summary. For each paper, include:\n")
	b.WriteString("   - Paper title\n")
	b.WriteString("   - Authors\n")
	b.WriteString("   - Publication date (if available)\n")
	b.WriteString("   - A brief summary of its key findings or abstract.\n")
	fmt.Fprintf(&b, "4. Conclude with a high-level overview of the research landscape in '%s' based on the papers found, if possible. ", topic)
	b.WriteString("Mention any common themes or particularly interesting points.\n\n")
	b.WriteString("Organize your findings in a clear, structured format with headings and bullet points for easy readability.\n")
	b.WriteString("Example of calling a tool (for your internal thought process, you don't output this part):\n")
	b.WriteString("If I need to search for papers, I will use:\n")
	fmt.Fprintf(&b, "{\n  \"tool_name\": \"search_papers\",\n  \"tool_input\": { \"topic\": \"%s\", \"max_results\": %d }\n}\n", topic, numPapers)
	b.WriteString("If I need to extract info for a paper ID '1234.5678', I will use:\n")
	b.WriteString("{\n  \"tool_name\": \"extract_info\",\n  \"tool_input\": { \"paper_id\": \"1234.5678\" }\n}\n")
	b.WriteString("Present only the requested information and analysis in your final response.\n")
	return b.String()
}

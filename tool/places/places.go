// Package places exposes the blog-analysis pipeline as a place-discovery
// tool.
package places

import (
	"context"
	"fmt"
	"strings"

	"github.com/tripweaver-ai/tripweaver/blog"
	"github.com/tripweaver-ai/tripweaver/log"
	"github.com/tripweaver-ai/tripweaver/tool"
	"github.com/tripweaver-ai/tripweaver/tool/function"
)

// ToolName identifies the place-discovery tool.
const ToolName = "search_places"

// SearchInput is the tool's argument schema.
type SearchInput struct {
	// Location is the area to search, stated concretely, e.g. "일본 사가".
	Location string `json:"location"`
	// Interests are comma-separated traveler interests used for scoring.
	Interests string `json:"interests,omitempty"`
}

// NewTool wraps the pipeline as a callable tool. Internal pipeline failures
// become a failure result with empty data instead of an error, so a caller
// running several tools in parallel can proceed with partial information.
func NewTool(pipeline *blog.Pipeline) *function.FunctionTool[SearchInput, tool.Result[[]blog.RankedPlace]] {
	fn := func(ctx context.Context, input SearchInput) (tool.Result[[]blog.RankedPlace], error) {
		userCtx := blog.UserContext{Location: input.Location, Interests: input.Interests}
		placeList, err := pipeline.Run(ctx, input.Location, userCtx)
		if err != nil {
			log.Errorf("place discovery failed for %s: %v", input.Location, err)
			return tool.Failure[[]blog.RankedPlace](err.Error()), nil
		}
		return tool.Success(placeList), nil
	}
	return function.New(fn,
		function.WithName(ToolName),
		function.WithDescription("Searches and analyzes blogs about an area and returns recommendable places ranked by relevance. Useful for trip planning, place details, and finding restaurants or cafes."),
	)
}

// Format renders ranked places as one line per place for prompt context.
func Format(placeList []blog.RankedPlace) string {
	if len(placeList) == 0 {
		return "no place recommendations available"
	}
	lines := make([]string, 0, len(placeList))
	for i, p := range placeList {
		line := fmt.Sprintf("%d. %s (score %.1f): %s [source: %s]", i+1, p.Name, p.Score, p.Description, p.SourceURL)
		if len(p.Keywords) > 0 {
			line += " keywords: " + strings.Join(p.Keywords, ", ")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

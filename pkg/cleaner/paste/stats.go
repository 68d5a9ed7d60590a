package paste

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Stats captures metrics about what the cleaner did.
type Stats struct {
	// Size metrics
	InputBytes  int `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int `json:"output_bytes" yaml:"output_bytes"`

	// Decision
	Classification Classification `json:"classification" yaml:"classification"`
	Route          Route          `json:"route" yaml:"route"`

	// Links
	AnchorsIn  int `json:"anchors_in" yaml:"anchors_in"`
	AnchorsOut int `json:"anchors_out" yaml:"anchors_out"`

	// Element counts
	ElementsRemoved map[string]int `json:"elements_removed" yaml:"elements_removed"` // tag -> count

	// Special whitespace characters and entities replaced by the final pass
	WhitespaceNormalized int `json:"whitespace_normalized" yaml:"whitespace_normalized"`

	// Timing
	StagesRun        []string                 `json:"stages_run" yaml:"stages_run"`
	StageDurations   map[string]time.Duration `json:"stage_durations" yaml:"stage_durations"`
	ClassifyDuration time.Duration            `json:"classify_duration" yaml:"classify_duration"`
	TotalDuration    time.Duration            `json:"total_duration" yaml:"total_duration"`
}

// NewStats creates a new Stats instance with initialized maps.
func NewStats() *Stats {
	return &Stats{
		ElementsRemoved: make(map[string]int),
		StageDurations:  make(map[string]time.Duration),
	}
}

// ReductionPercent returns the percentage reduction in size.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

// TotalElementsRemoved returns the sum of all removed elements.
func (s *Stats) TotalElementsRemoved() int {
	total := 0
	for _, count := range s.ElementsRemoved {
		total += count
	}
	return total
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Size: %d -> %d bytes (%.1f%% reduction)\n",
		s.InputBytes, s.OutputBytes, s.ReductionPercent()))

	sb.WriteString(fmt.Sprintf("Classification: %s, route: %s\n", s.Classification, s.Route))

	if s.AnchorsIn > 0 || s.AnchorsOut > 0 {
		sb.WriteString(fmt.Sprintf("Links: %d in, %d out\n", s.AnchorsIn, s.AnchorsOut))
	}

	if len(s.ElementsRemoved) > 0 {
		sb.WriteString(fmt.Sprintf("Elements removed: %d (", s.TotalElementsRemoved()))
		tags := make([]string, 0, len(s.ElementsRemoved))
		for tag := range s.ElementsRemoved {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		parts := make([]string, 0, len(tags))
		for _, tag := range tags {
			parts = append(parts, fmt.Sprintf("%s=%d", tag, s.ElementsRemoved[tag]))
		}
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString(")\n")
	}

	if s.WhitespaceNormalized > 0 {
		sb.WriteString(fmt.Sprintf("Special whitespace replaced: %d\n", s.WhitespaceNormalized))
	}

	if len(s.StagesRun) > 0 {
		parts := make([]string, 0, len(s.StagesRun))
		for _, name := range s.StagesRun {
			parts = append(parts, fmt.Sprintf("%s=%v", name, s.StageDurations[name].Round(time.Microsecond)))
		}
		sb.WriteString("Stages: " + strings.Join(parts, ", ") + "\n")
	}

	sb.WriteString(fmt.Sprintf("Timing: classify=%v, total=%v\n",
		s.ClassifyDuration.Round(time.Microsecond),
		s.TotalDuration.Round(time.Microsecond)))

	return sb.String()
}

// Warning represents a non-fatal issue encountered during cleaning.
type Warning struct {
	Phase   string `json:"phase" yaml:"phase"`     // stage name
	Message string `json:"message" yaml:"message"` // Human-readable description
	Context string `json:"context" yaml:"context"` // href, marker or error text
}

// String returns a formatted warning message.
func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result contains the output of a cleaning operation.
type Result struct {
	// Content is the cleaned output. On pipeline errors, this contains the original input.
	Content string `json:"content" yaml:"content"`

	// Stats contains metrics about what was done.
	Stats *Stats `json:"stats" yaml:"stats"`

	// Warnings contains non-fatal issues encountered.
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Error is set only on pipeline faults (content is still returned).
	Error error `json:"-" yaml:"-"`

	input *inventory
}

// AddWarning adds a warning to the result.
func (r *Result) AddWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{
		Phase:   phase,
		Message: message,
		Context: context,
	})
}

// HasWarnings returns true if any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

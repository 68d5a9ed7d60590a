package paste

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/jmylchreest/pasteclean/internal/logger"
)

// Stage names, in pipeline order.
const (
	StageVendorStrip         = "vendor_strip"
	StageHeadingDetect       = "heading_detect"
	StageListDetect          = "list_detect"
	StageAttributeStrip      = "attribute_strip"
	StageVocabularyEnforce   = "vocabulary_enforce"
	StageAnchorCheck         = "anchor_count_check"
	StageBlockFormatting     = "block_formatting"
	StageWhitespaceNormalize = "whitespace_normalize"
)

// debugPreviewBytes bounds the document excerpt logged after each stage.
const debugPreviewBytes = 500

// ErrPipeline is wrapped by every PipelineError.
var ErrPipeline = errors.New("normalization pipeline failed")

// PipelineError reports an unexpected fault inside classification or a
// normalization stage.
type PipelineError struct {
	Stage string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%v in %s: %v", ErrPipeline, e.Stage, e.Err)
}

// Unwrap exposes both ErrPipeline and the underlying fault.
func (e *PipelineError) Unwrap() []error {
	return []error{ErrPipeline, e.Err}
}

type stage struct {
	name string
	fn   func(doc string, result *Result) string

	// vendorOnly stages run on RouteVendorCleanup only.
	vendorOnly bool
}

func textStage(name string, fn func(string) string) stage {
	return stage{name: name, fn: func(doc string, _ *Result) string { return fn(doc) }}
}

// Cleaner runs the paste normalization pipeline.
// It implements the cleaner.Cleaner interface and is safe for concurrent use.
type Cleaner struct {
	config *Config
	stages []stage
}

// New creates a new Cleaner with the given configuration.
// If config is nil, DefaultConfig() is used.
func New(config *Config) *Cleaner {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config
	if cfg.VendorCleanup == "" {
		cfg.VendorCleanup = VendorAuto
	}
	if cfg.VendorStyleThreshold <= 0 {
		cfg.VendorStyleThreshold = DefaultVendorStyleThreshold
	}

	c := &Cleaner{config: &cfg}
	c.stages = c.buildStages()
	return c
}

// Name returns the cleaner name for logging.
func (c *Cleaner) Name() string {
	return "paste"
}

func (c *Cleaner) buildStages() []stage {
	cfg := c.config
	var stages []stage

	if cfg.VendorCleanup != VendorNever {
		stages = append(stages, stage{name: StageVendorStrip, fn: stripVendorStage, vendorOnly: true})
	}
	if cfg.DetectHeadings {
		stages = append(stages, textStage(StageHeadingDetect, DetectHeadings))
	}
	if cfg.DetectBullets {
		stages = append(stages, textStage(StageListDetect, DetectBullets))
	}
	if cfg.StripAttributes {
		stages = append(stages, textStage(StageAttributeStrip, StripAttributes))
	}
	if cfg.EnforceVocabulary {
		stages = append(stages, textStage(StageVocabularyEnforce, EnforceVocabulary))
	}
	if cfg.CheckAnchors {
		stages = append(stages, stage{name: StageAnchorCheck, fn: checkAnchorsStage})
	}
	if cfg.FormatBlocks {
		stages = append(stages, textStage(StageBlockFormatting, FormatBlocks))
	}
	if cfg.NormalizeWhitespace {
		stages = append(stages, stage{name: StageWhitespaceNormalize, fn: normalizeWhitespaceStage})
	}
	return stages
}

// Route picks the code path for content. The checks run in order: plain text,
// editor code export, already-clean markup, vendor export, anything else.
func (c *Cleaner) Route(content string) Route {
	switch {
	case !IsMarkup(content):
		return RouteVerbatim
	case c.config.DetectCodeExport && IsEditorCodeExport(content):
		return RoutePlainText
	case c.config.SkipCleanContent && IsAlreadyClean(content):
		return RouteVerbatim
	case c.needsVendorCleanup(content):
		return RouteVendorCleanup
	default:
		return RouteNormalize
	}
}

func (c *Cleaner) needsVendorCleanup(content string) bool {
	switch c.config.VendorCleanup {
	case VendorNever:
		return false
	case VendorAlways:
		return true
	default:
		return needsVendorCleanup(content, c.config.VendorStyleThreshold)
	}
}

// Clean transforms pasted content according to the configuration.
// This method implements the cleaner.Cleaner interface. On a pipeline fault the
// original content is returned together with a *PipelineError.
func (c *Cleaner) Clean(content string) (string, error) {
	result := c.CleanWithStats(content)
	return result.Content, result.Error
}

// CleanWithStats performs cleaning and returns detailed stats.
// Plain text, already-clean markup and editor code exports come back unchanged;
// Stats.Route tells them apart.
func (c *Cleaner) CleanWithStats(content string) *Result {
	startTime := time.Now()
	result := &Result{
		Content: content,
		Stats:   NewStats(),
	}
	result.Stats.InputBytes = len(content)
	defer func() {
		result.Stats.OutputBytes = len(result.Content)
		result.Stats.TotalDuration = time.Since(startTime)
	}()

	classifyStart := time.Now()
	err := protect("classify", func() {
		result.Stats.Classification = Classify(content)
		result.Stats.Route = c.Route(content)
	})
	result.Stats.ClassifyDuration = time.Since(classifyStart)
	if err != nil {
		c.fail(result, content, err)
		return result
	}

	route := result.Stats.Route
	logger.Debug("paste classified",
		"classification", result.Stats.Classification.String(),
		"route", route.String(),
		"bytes", len(content))
	if !route.Cleans() {
		return result
	}

	if c.config.CheckAnchors {
		if inv, err := takeInventory(content); err != nil {
			result.AddWarning(StageAnchorCheck, "input could not be inventoried", err.Error())
		} else {
			result.input = inv
			result.Stats.AnchorsIn = len(inv.hrefs)
		}
	}

	doc := content
	for _, st := range c.stages {
		if st.vendorOnly && route != RouteVendorCleanup {
			continue
		}

		stageStart := time.Now()
		bytesIn := len(doc)
		if err := protect(st.name, func() { doc = st.fn(doc, result) }); err != nil {
			c.fail(result, content, err)
			return result
		}
		elapsed := time.Since(stageStart)

		result.Stats.StagesRun = append(result.Stats.StagesRun, st.name)
		result.Stats.StageDurations[st.name] = elapsed
		logger.Debug("paste stage",
			"stage", st.name,
			"bytes_in", bytesIn,
			"bytes_out", len(doc),
			"duration", elapsed)
		if c.config.Debug {
			logger.Debug("paste stage output", "stage", st.name, "head", preview(doc))
		}
	}

	result.Content = doc
	return result
}

func (c *Cleaner) fail(result *Result, content string, err error) {
	logger.Error("paste pipeline failed", "error", err)
	result.Content = content
	result.Error = err
}

// protect runs fn and turns a panic into a *PipelineError naming stage.
func protect(stage string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = fmt.Errorf("%v", r)
			}
			err = &PipelineError{Stage: stage, Err: cause}
		}
	}()
	fn()
	return nil
}

func stripVendorStage(doc string, result *Result) string {
	out, err := StripVendorMarkup(doc)
	if err != nil {
		logger.Warn("vendor cleanup failed, continuing with original input", "error", err)
		result.AddWarning(StageVendorStrip, "vendor cleanup failed, continuing with original input", err.Error())
	}
	return out
}

func checkAnchorsStage(doc string, result *Result) string {
	if result.input == nil {
		return doc
	}
	after, err := takeInventory(doc)
	if err != nil {
		result.AddWarning(StageAnchorCheck, "output could not be inventoried", err.Error())
		return doc
	}

	result.Stats.AnchorsOut = len(after.hrefs)
	result.Stats.ElementsRemoved = removedTags(result.input, after)
	for _, href := range missingHrefs(result.input, after) {
		result.AddWarning(StageAnchorCheck, "link lost during cleaning", href)
	}
	logger.Debug("paste anchors", "in", result.Stats.AnchorsIn, "out", result.Stats.AnchorsOut)
	return doc
}

func normalizeWhitespaceStage(doc string, result *Result) string {
	result.Stats.WhitespaceNormalized = countSpecialWhitespace(doc)
	return NormalizeWhitespace(doc)
}

func preview(doc string) string {
	if len(doc) <= debugPreviewBytes {
		return doc
	}
	end := debugPreviewBytes
	for end > 0 && !utf8.RuneStart(doc[end]) {
		end--
	}
	return doc[:end]
}

var defaultCleaner = New(nil)

// NormalizeMarkup cleans raw pasted content with DefaultConfig. It has no side
// effects and is deterministic. Plain text and already-clean markup are returned
// unchanged, as is the input when the pipeline faults.
func NormalizeMarkup(raw string) string {
	return defaultCleaner.CleanWithStats(raw).Content
}

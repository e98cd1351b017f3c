// README: Processor bundles decode, extract and normalize with an injected logger.
package itinerary

import (
	"errors"
	"io"
	"log/slog"
	"unicode/utf8"
)

// maxLoggedInput caps how much offending agent output is copied into a log record.
const maxLoggedInput = 4096

// Options tunes a Processor.
type Options struct {
	// Repair retries invalid JSON through jsonrepair before giving up.
	Repair bool
	// MaxDepth bounds raw-value extraction; zero means DefaultMaxDepth.
	MaxDepth int
}

// Processor runs the decode, extract and normalize steps and logs every failure with the
// input that caused it.
type Processor struct {
	logger    *slog.Logger
	repair    bool
	maxDepth  int
	normalize func(any) Itinerary
}

// NewProcessor returns a Processor. A nil logger discards log output.
func NewProcessor(logger *slog.Logger, opts Options) *Processor {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Processor{
		logger:    logger.With("component", "itinerary"),
		repair:    opts.Repair,
		maxDepth:  maxDepth,
		normalize: normalize,
	}
}

// Decode is the logging counterpart of the package-level Decode.
func (p *Processor) Decode(raw any) (any, error) {
	tree, err := decode(raw, p.repair)
	if err != nil {
		var de *DecodeError
		input := ""
		if errors.As(err, &de) {
			input = truncate(de.Input)
		}
		p.logger.Error("decode agent response failed", "error", err, "input", input)
		return nil, err
	}
	return tree, nil
}

// ExtractRawValues is the logging counterpart of the package-level ExtractRawValues.
func (p *Processor) ExtractRawValues(tree any) ([]any, error) {
	values, err := extractRawValues(tree, p.maxDepth)
	if err != nil {
		p.logger.Error("extract raw values failed", "error", err, "max_depth", p.maxDepth)
		return nil, err
	}
	return values, nil
}

// Normalize never fails; a recovered panic is logged with the tree that caused it.
func (p *Processor) Normalize(tree any) Itinerary {
	it, recovered := normalizeWith(p.normalize, tree)
	if recovered != nil {
		p.logger.Error("normalize itinerary recovered", "panic", recovered, "tree", truncateValue(tree))
	}
	return it
}

// DecodeAndNormalize decodes raw and projects it onto an Itinerary.
func (p *Processor) DecodeAndNormalize(raw any) (Itinerary, error) {
	tree, err := p.Decode(raw)
	if err != nil {
		return Itinerary{}, err
	}
	return p.Normalize(tree), nil
}

// DecodeAndExtract decodes raw and collects every "raw" value in it.
func (p *Processor) DecodeAndExtract(raw any) ([]any, error) {
	tree, err := p.Decode(raw)
	if err != nil {
		return nil, err
	}
	return p.ExtractRawValues(tree)
}

func truncate(s string) string {
	if len(s) <= maxLoggedInput {
		return s
	}
	cut := maxLoggedInput
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "...(truncated)"
}

func truncateValue(v any) string {
	return truncate(slog.AnyValue(v).String())
}

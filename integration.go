// integration.go provides one-call helpers over the fluent Extractor.
package pdflayout

import (
	"context"

	"github.com/tsawler/pdflayout/model"
)

// ParseFile parses the PDF at path with the given options.
//
// Example:
//
//	opts := pdflayout.DefaultOptions()
//	opts.JoinParagraphs = true
//	elems, err := pdflayout.ParseFile(ctx, "document.pdf", opts)
func ParseFile(ctx context.Context, path string, opts Options) ([]model.Element, error) {
	return Open(path).WithOptions(opts).Parse(ctx)
}

// ParseBytes parses PDF data held in memory with the given options.
func ParseBytes(ctx context.Context, data []byte, opts Options) ([]model.Element, error) {
	return FromBytes(data).WithOptions(opts).Parse(ctx)
}

// ParseMap parses the PDF at path with options given as a map of option
// names, as accepted by OptionsFromMap.
func ParseMap(ctx context.Context, path string, options map[string]any) ([]model.Element, error) {
	opts, err := OptionsFromMap(options)
	if err != nil {
		return nil, err
	}
	return ParseFile(ctx, path, opts)
}

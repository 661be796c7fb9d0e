package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"log/slog"

	"context-generator/internal/common"
	"context-generator/internal/match"
	"context-generator/internal/plan"
)

// ErrNoRecords is returned when a plan holds nothing to generate.
var ErrNoRecords = errors.New("no records to generate")

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName overrides the package clause; by default the records'
	// package name is used.
	PackageName string
	// Filename is the name of the generated file. By default it is derived
	// from the first record: Order becomes order_view.go.
	Filename string
	// OutputDir receives a sidecar with the unformatted source when
	// formatting fails.
	OutputDir string
	// GenerateComments enables doc comments on methods and name comments on
	// switch cases.
	GenerateComments bool
	// Logger receives debug output. Nil disables logging.
	Logger *slog.Logger
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		GenerateComments: true,
	}
}

// Generator generates Go code from a dispatch plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "order_view.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// DefaultFilename returns the file name used for records led by typeName.
func DefaultFilename(typeName string) string {
	return match.SnakeCase(typeName) + "_view.go"
}

// Generate generates the view implementations of every record in p. A plan
// with errors is refused.
func (g *Generator) Generate(p *plan.Plan) ([]GeneratedFile, error) {
	if p.Diagnostics.HasErrors() {
		return nil, fmt.Errorf("plan has errors: %w", p.Diagnostics.Error())
	}

	first, ok := common.First(p.Records)
	if !ok {
		return nil, ErrNoRecords
	}

	data := &templateData{
		PackageName: g.config.PackageName,
		Filename:    g.config.Filename,
		Imports:     p.Imports,
		View:        p.ViewName,
		Comments:    g.config.GenerateComments,
	}
	if data.PackageName == "" {
		data.PackageName = p.Package.Name
	}
	if data.Filename == "" {
		data.Filename = DefaultFilename(first.Name)
	}

	for i := range p.Records {
		data.Records = append(data.Records, buildRecordData(&p.Records[i]))
	}

	file, err := g.render(data)
	if err != nil {
		if file != nil {
			return []GeneratedFile{*file}, err
		}
		return nil, err
	}

	if g.config.Logger != nil {
		g.config.Logger.Debug("generated file",
			"file", file.Filename, "records", len(data.Records), "bytes", len(file.Content))
	}

	return []GeneratedFile{*file}, nil
}

func (g *Generator) render(data *templateData) (*GeneratedFile, error) {
	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: the sidecar only helps debugging.
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, data.Filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: data.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Filename: data.Filename,
		Content:  formatted,
	}, nil
}

package renderer

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"text/template"

	"github.com/smartcontractkit/safe-txdetails/format"
	"github.com/smartcontractkit/safe-txdetails/multisend"
	"github.com/smartcontractkit/safe-txdetails/network"
	"github.com/smartcontractkit/safe-txdetails/view"
)

//go:embed templates
var embeddedTemplates embed.FS

const (
	IDText     = "text"
	IDMarkdown = "markdown"
)

// planSection is one block of the rendered view. It is rendered from <name>.tmpl with the
// data returned by data, and skipped when data reports the section absent from the plan.
type planSection struct {
	name string
	data func(*planContext) (any, bool)
}

func always[T any](get func(*planContext) T) func(*planContext) (any, bool) {
	return func(c *planContext) (any, bool) { return get(c), true }
}

func when[T any](get func(*planContext) *T) func(*planContext) (any, bool) {
	return func(c *planContext) (any, bool) {
		v := get(c)
		return v, v != nil
	}
}

// planSections lists the blocks of a view in display order.
var planSections = []planSection{
	{name: "header", data: always(func(c *planContext) *planContext { return c })},
	{name: "description", data: when(func(c *planContext) *view.Section[[]format.Segment] { return c.Description })},
	{name: "decoded_data", data: always(func(c *planContext) view.Section[view.DecodedData] { return c.DecodedData })},
	{name: "module", data: when(func(c *planContext) *view.ModuleInfo { return c.Module })},
	{name: "warnings", data: func(c *planContext) (any, bool) {
		return c.Warnings, c.Warnings.Untrusted || c.Warnings.DelegateCall != nil
	}},
	{name: "summary", data: always(func(c *planContext) view.SummaryInfo { return c.Summary })},
	{name: "multisend", data: when(func(c *planContext) *view.Section[[]multisend.Transaction] { return c.Multisend })},
	{name: "signers", data: when(func(c *planContext) *view.Signers { return c.Signers })},
}

// planContext is the data of the header block: the plan plus display helpers.
type planContext struct {
	view.Plan
}

// Network names the chain as "<name> (<id>)", or marks an id no chain is known by.
func (c *planContext) Network() string {
	if !network.Known(c.ChainID) {
		return fmt.Sprintf("unknown network (%s)", c.ChainID)
	}

	return fmt.Sprintf("%s (%s)", c.ChainName, c.ChainID)
}

// TemplateRenderer renders a plan block by block, one template per section. Sections are
// separated by a blank line.
type TemplateRenderer struct {
	id       string
	sections map[string]*template.Template
}

var _ Renderer = (*TemplateRenderer)(nil)

// Option configures a TemplateRenderer.
type Option func(*templateConfig)

type templateConfig struct {
	fsys fs.FS
}

// WithTemplateFS reads the section templates from fsys instead of the embedded set. fsys
// must hold a <section>.tmpl file for every section of the view.
func WithTemplateFS(fsys fs.FS) Option {
	return func(c *templateConfig) {
		c.fsys = fsys
	}
}

// NewTextRenderer creates a TemplateRenderer for plain text output.
func NewTextRenderer(opts ...Option) (*TemplateRenderer, error) {
	return newTemplateRenderer(IDText, opts...)
}

// NewMarkdownRenderer creates a TemplateRenderer for markdown output.
func NewMarkdownRenderer(opts ...Option) (*TemplateRenderer, error) {
	return newTemplateRenderer(IDMarkdown, opts...)
}

func newTemplateRenderer(id string, opts ...Option) (*TemplateRenderer, error) {
	var cfg templateConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.fsys == nil {
		sub, err := fs.Sub(embeddedTemplates, "templates/"+id)
		if err != nil {
			return nil, fmt.Errorf("no embedded templates for %s: %w", id, err)
		}
		cfg.fsys = sub
	}

	r := &TemplateRenderer{id: id, sections: make(map[string]*template.Template, len(planSections))}
	var missing []string
	for _, sec := range planSections {
		tmpl, err := parseSection(cfg.fsys, sec.name)
		if errors.Is(err, fs.ErrNotExist) {
			missing = append(missing, sec.name)
			continue
		}
		if err != nil {
			return nil, err
		}
		r.sections[sec.name] = tmpl
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s templates are missing sections: %s", id, strings.Join(missing, ", "))
	}

	return r, nil
}

func parseSection(fsys fs.FS, name string) (*template.Template, error) {
	content, err := fs.ReadFile(fsys, name+".tmpl")
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(name).Funcs(defaultFuncMap()).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
	}

	return tmpl, nil
}

func (r *TemplateRenderer) ID() string { return r.id }

// RenderTo writes every section present in plan.
func (r *TemplateRenderer) RenderTo(w io.Writer, plan view.Plan) error {
	ctx := &planContext{Plan: plan}

	var out bytes.Buffer
	for _, sec := range planSections {
		data, ok := sec.data(ctx)
		if !ok {
			continue
		}

		var block bytes.Buffer
		if err := r.sections[sec.name].Execute(&block, data); err != nil {
			return fmt.Errorf("failed to render %s of %s: %w", sec.name, plan.TxID, err)
		}
		text := strings.TrimRight(block.String(), "\n")
		if text == "" {
			continue
		}
		if out.Len() > 0 {
			out.WriteString("\n\n")
		}
		out.WriteString(text)
	}
	out.WriteByte('\n')

	_, err := out.WriteTo(w)

	return err
}

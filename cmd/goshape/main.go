package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	goshape "github.com/goshape/goshape"
	js "github.com/goshape/goshape/jsonschema"
	"github.com/goshape/goshape/openapi"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "export":
		exportCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "goshape CLI\n\nUsage:\n  goshape export -f descriptor.yaml [-f more.yaml ...] -format json|yaml [-title T] [-version V]\n\nNotes:\n  - Each descriptor file declares one record type; see docs for the YAML shape.")
}

type multiFlag []string

func (m *multiFlag) String() string { return fmt.Sprint([]string(*m)) }
func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func exportCmd(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	var files multiFlag
	var format, title, version string
	fs.Var(&files, "f", "descriptor YAML file (repeatable)")
	fs.StringVar(&format, "format", "json", "output format: json or yaml")
	fs.StringVar(&title, "title", "goshape export", "document title")
	fs.StringVar(&version, "version", "0.0.0", "document version")
	_ = fs.Parse(args)
	if len(files) == 0 {
		fs.Usage()
		os.Exit(2)
	}

	reg := goshape.NewRegistry()
	for _, f := range files {
		if err := registerFile(reg, f); err != nil {
			fmt.Fprintf(os.Stderr, "goshape: %s: %v\n", f, err)
			os.Exit(1)
		}
	}

	doc, err := openapi.Document(title, version, reg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "goshape: %v\n", err)
		os.Exit(1)
	}
	var out []byte
	switch format {
	case "yaml":
		out, err = openapi.MarshalYAML(doc)
	default:
		out, err = openapi.MarshalJSON(doc)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "goshape: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func registerFile(reg *goshape.Registry, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc descriptorDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}
	ot, err := doc.compile()
	if err != nil {
		return err
	}
	ot.Register(reg)
	return nil
}

// descriptorDoc is the YAML shape of one record type declaration.
type descriptorDoc struct {
	Name              string        `yaml:"name"`
	Description       string        `yaml:"description"`
	RenameAll         string        `yaml:"renameAll"`
	Deprecated        bool          `yaml:"deprecated"`
	DenyUnknownFields bool          `yaml:"denyUnknownFields"`
	ExternalDocs      *externalDocs `yaml:"externalDocs"`
	Fields            []fieldDoc    `yaml:"fields"`
}

type externalDocs struct {
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

type fieldDoc struct {
	Ident    string `yaml:"ident"`
	Type     string `yaml:"type"`
	Items    string `yaml:"items"`
	Values   string `yaml:"values"`
	Optional bool   `yaml:"optional"`
	Rename   string `yaml:"rename"`
	Doc      string `yaml:"doc"`

	ReadOnly  bool   `yaml:"readOnly"`
	WriteOnly bool   `yaml:"writeOnly"`
	Skip      bool   `yaml:"skip"`
	Default   string `yaml:"default"` // "zero" or empty

	Minimum          *float64 `yaml:"minimum"`
	Maximum          *float64 `yaml:"maximum"`
	ExclusiveMinimum *float64 `yaml:"exclusiveMinimum"`
	ExclusiveMaximum *float64 `yaml:"exclusiveMaximum"`
	MultipleOf       *float64 `yaml:"multipleOf"`
	MinLength        *uint64  `yaml:"minLength"`
	MaxLength        *uint64  `yaml:"maxLength"`
	Pattern          string   `yaml:"pattern"`
	MinItems         *uint64  `yaml:"minItems"`
	MaxItems         *uint64  `yaml:"maxItems"`
	UniqueItems      bool     `yaml:"uniqueItems"`
}

func (d descriptorDoc) compile() (*goshape.ObjectType, error) {
	rename, ok := goshape.ParseRenameRule(d.RenameAll)
	if !ok {
		return nil, fmt.Errorf("unknown renameAll rule %q", d.RenameAll)
	}
	desc := goshape.Descriptor{
		Name:              d.Name,
		Description:       d.Description,
		RenameAll:         rename,
		Deprecated:        d.Deprecated,
		DenyUnknownFields: d.DenyUnknownFields,
	}
	if d.ExternalDocs != nil {
		desc.ExternalDocs = &js.ExternalDocs{URL: d.ExternalDocs.URL, Description: d.ExternalDocs.Description}
	}
	for _, f := range d.Fields {
		field, err := f.toField()
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Ident, err)
		}
		desc.Fields = append(desc.Fields, field)
	}
	return goshape.Compile(desc)
}

func (f fieldDoc) toField() (goshape.Field, error) {
	typ, err := resolveType(f.Type, f.Items, f.Values)
	if err != nil {
		return goshape.Field{}, err
	}
	if f.Optional {
		typ = goshape.Optional(typ)
	}
	field := goshape.Field{
		Ident:       f.Ident,
		Type:        typ,
		Rename:      f.Rename,
		Description: f.Doc,
		ReadOnly:    f.ReadOnly,
		WriteOnly:   f.WriteOnly,
		Skip:        f.Skip,
	}
	switch f.Default {
	case "":
	case "zero":
		field.Default = goshape.ZeroDefault()
	default:
		return goshape.Field{}, fmt.Errorf("unsupported default %q", f.Default)
	}
	field.Rules, err = f.rules()
	if err != nil {
		return goshape.Field{}, err
	}
	return field, nil
}

func (f fieldDoc) rules() ([]goshape.Rule, error) {
	var rules []goshape.Rule
	if f.Minimum != nil {
		rules = append(rules, goshape.Minimum(*f.Minimum))
	}
	if f.Maximum != nil {
		rules = append(rules, goshape.Maximum(*f.Maximum))
	}
	if f.ExclusiveMinimum != nil {
		rules = append(rules, goshape.ExclusiveMinimum(*f.ExclusiveMinimum))
	}
	if f.ExclusiveMaximum != nil {
		rules = append(rules, goshape.ExclusiveMaximum(*f.ExclusiveMaximum))
	}
	if f.MultipleOf != nil {
		if *f.MultipleOf <= 0 {
			return nil, fmt.Errorf("multipleOf must be positive, got %v", *f.MultipleOf)
		}
		rules = append(rules, goshape.MultipleOf(*f.MultipleOf))
	}
	if f.MinLength != nil {
		rules = append(rules, goshape.MinLength(*f.MinLength))
	}
	if f.MaxLength != nil {
		rules = append(rules, goshape.MaxLength(*f.MaxLength))
	}
	if f.Pattern != "" {
		re, err := regexp.Compile(f.Pattern)
		if err != nil {
			return nil, err
		}
		rules = append(rules, goshape.Pattern(re))
	}
	if f.MinItems != nil {
		rules = append(rules, goshape.MinItems(*f.MinItems))
	}
	if f.MaxItems != nil {
		rules = append(rules, goshape.MaxItems(*f.MaxItems))
	}
	if f.UniqueItems {
		rules = append(rules, goshape.UniqueItems())
	}
	return rules, nil
}

func resolveType(typ, items, values string) (goshape.SchemaType, error) {
	switch typ {
	case "string":
		return goshape.String(), nil
	case "boolean", "bool":
		return goshape.Bool(), nil
	case "integer", "int":
		return goshape.Int64(), nil
	case "number", "float":
		return goshape.Float64(), nil
	case "array":
		elem, err := resolveType(items, "", "")
		if err != nil {
			return nil, fmt.Errorf("array items: %w", err)
		}
		return goshape.ArrayOf(elem), nil
	case "map":
		value, err := resolveType(values, "", "")
		if err != nil {
			return nil, fmt.Errorf("map values: %w", err)
		}
		return goshape.MapOf(value), nil
	}
	return nil, fmt.Errorf("unknown type %q", typ)
}

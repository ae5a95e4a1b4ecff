package schema

import (
	"context"
	"fmt"

	"github.com/go-gum/exhume/catalog"
	"github.com/go-gum/exhume/lockey"
)

// Visibility classifies a raw visibilityFlags value into a named level.
// The flag values were mapped out empirically; unknown values fall through
// to an "unknown" level that keeps the raw number in the description.
type Visibility struct {
	Level            string `json:"level"`
	Description      string `json:"description"`
	LikelyDocumented bool   `json:"likely_documented"`
}

var visibilityLevels = map[int64]Visibility{
	0:  {Level: "public", Description: "Fully visible and documented", LikelyDocumented: true},
	2:  {Level: "somewhat_hidden", Description: "May have limited visibility", LikelyDocumented: true},
	3:  {Level: "hidden", Description: "Hidden from normal browsing"},
	5:  {Level: "restricted", Description: "Restricted access"},
	7:  {Level: "very_hidden", Description: "Very hidden, possibly internal"},
	13: {Level: "experimental", Description: "Experimental or beta feature"},
	15: {Level: "maximum_hidden", Description: "Maximally hidden, likely internal-only"},
}

// ClassifyVisibility maps a visibilityFlags value to its level.
func ClassifyVisibility(flags int64) Visibility {
	if v, ok := visibilityLevels[flags]; ok {
		return v
	}
	return Visibility{
		Level:       "unknown",
		Description: fmt.Sprintf("Unknown visibility level (%d)", flags),
	}
}

// AppRef identifies the app that registered an action.
type AppRef struct {
	BundleID string `json:"bundle_id"`
	Name     string `json:"name"`
}

// Deprecation is present when an action names a replacement.
type Deprecation struct {
	ReplacementID string `json:"replacement_id"`
	Message       string `json:"message,omitempty"`
}

// ParameterSchema is one action parameter with its recovered display text
// and, when blob decoding is on, the analysis of its type instance blob.
type ParameterSchema struct {
	Key           string        `json:"key"`
	Name          lockey.Parsed `json:"name"`
	Description   lockey.Parsed `json:"description"`
	SortOrder     int64         `json:"sort_order"`
	Flags         int64         `json:"flags"`
	AcceptedTypes []string      `json:"accepted_types"`
	TypeInfo      *BlobAnalysis `json:"type_info,omitempty"`
}

// ActionSchema is the complete structured record for one action.
type ActionSchema struct {
	ID                 string            `json:"id"`
	Name               lockey.Parsed     `json:"name"`
	DescriptionSummary lockey.Parsed     `json:"description_summary"`
	DescriptionNote    string            `json:"description_note,omitempty"`
	Type               string            `json:"type"`
	Flags              int64             `json:"flags"`
	VisibilityFlags    int64             `json:"visibility_flags"`
	Hidden             bool              `json:"hidden"`
	Visibility         Visibility        `json:"visibility"`
	SourceProvider     string            `json:"source_provider,omitempty"`
	App                AppRef            `json:"app"`
	Deprecation        *Deprecation      `json:"deprecation,omitempty"`
	Parameters         []ParameterSchema `json:"parameters"`
	OutputTypes        []string          `json:"output_types"`
	Categories         []string          `json:"categories"`
	Keywords           []string          `json:"keywords"`
}

// TypeSchema is the structured record for one catalog type.
type TypeSchema struct {
	RowID        int64                    `json:"row_id"`
	Name         string                   `json:"name"`
	Kind         int64                    `json:"kind"`
	KindName     string                   `json:"kind_name"`
	RuntimeFlags int64                    `json:"runtime_flags"`
	ContainerID  string                   `json:"container_id,omitempty"`
	TypeID       *TypeID                  `json:"type_id,omitempty"`
	Requirements *BlobAnalysis            `json:"requirements,omitempty"`
	Properties   []catalog.EntityProperty `json:"properties,omitempty"`
	EnumCases    []catalog.EnumCase       `json:"enum_cases,omitempty"`
}

var kindNames = map[int64]string{
	1: "primitive",
	2: "entity",
	3: "enum",
	4: "object",
	6: "array",
	8: "special",
}

// KindName names a Types.kind value, "unknown" for anything unmapped.
func KindName(kind int64) string {
	if name, ok := kindNames[kind]; ok {
		return name
	}
	return "unknown"
}

// Builder assembles schemas from catalog rows. The zero Locale means "en";
// IncludeBlobs controls whether parameter type-instance blobs are decoded.
type Builder struct {
	Catalog      *catalog.DB
	Parser       *lockey.Parser
	Locale       string
	IncludeBlobs bool
}

func (b *Builder) locale() string {
	if b.Locale == "" {
		return "en"
	}
	return b.Locale
}

func (b *Builder) parser() *lockey.Parser {
	if b.Parser == nil {
		return lockey.NewParser()
	}
	return b.Parser
}

// BuildAction assembles the full schema for one action row: recovered
// display text, parameters with accepted types, output types, categories
// and keywords.
func (b *Builder) BuildAction(ctx context.Context, action catalog.Action) (ActionSchema, error) {
	parser := b.parser()

	schema := ActionSchema{
		ID:                 action.ID,
		Name:               parser.Parse(action.Name),
		DescriptionSummary: parser.Parse(action.DescriptionSummary),
		DescriptionNote:    action.DescriptionNote,
		Type:               action.ToolType,
		Flags:              action.Flags,
		VisibilityFlags:    action.VisibilityFlags,
		Hidden:             action.VisibilityFlags > 0,
		Visibility:         ClassifyVisibility(action.VisibilityFlags),
		SourceProvider:     action.SourceProvider,
		App: AppRef{
			BundleID: action.ContainerID,
			Name:     action.AppName,
		},
		Parameters:  []ParameterSchema{},
		OutputTypes: []string{},
		Categories:  []string{},
		Keywords:    []string{},
	}

	if action.DeprecationReplacementID != "" {
		schema.Deprecation = &Deprecation{
			ReplacementID: action.DeprecationReplacementID,
			Message:       action.DeprecationMessage,
		}
	}

	params, err := b.Catalog.Parameters(ctx, action.RowID, b.locale())
	if err != nil {
		return ActionSchema{}, fmt.Errorf("action %s: %w", action.ID, err)
	}
	for _, param := range params {
		ps := ParameterSchema{
			Key:         param.Key,
			Name:        parser.Parse(param.Name),
			Description: parser.Parse(param.Description),
			SortOrder:   param.SortOrder,
			Flags:       param.Flags,
		}

		ps.AcceptedTypes, err = b.Catalog.ParameterTypes(ctx, action.RowID, param.Key)
		if err != nil {
			return ActionSchema{}, fmt.Errorf("action %s parameter %s: %w", action.ID, param.Key, err)
		}
		if ps.AcceptedTypes == nil {
			ps.AcceptedTypes = []string{}
		}

		if b.IncludeBlobs && len(param.TypeInstance) > 0 {
			analysis := AnalyzeBlob(param.TypeInstance)
			ps.TypeInfo = &analysis
		}

		schema.Parameters = append(schema.Parameters, ps)
	}

	if schema.OutputTypes, err = b.Catalog.OutputTypes(ctx, action.RowID); err != nil {
		return ActionSchema{}, fmt.Errorf("action %s: %w", action.ID, err)
	}
	if schema.Categories, err = b.Catalog.Categories(ctx, action.RowID, b.locale()); err != nil {
		return ActionSchema{}, fmt.Errorf("action %s: %w", action.ID, err)
	}
	if schema.Keywords, err = b.Catalog.Keywords(ctx, action.RowID, b.locale()); err != nil {
		return ActionSchema{}, fmt.Errorf("action %s: %w", action.ID, err)
	}
	for _, s := range []*[]string{&schema.OutputTypes, &schema.Categories, &schema.Keywords} {
		if *s == nil {
			*s = []string{}
		}
	}

	return schema, nil
}

// BuildType assembles the schema for one type row, decoding the identifier
// and requirements blobs and pulling entity properties or enum cases where
// the kind calls for them.
func (b *Builder) BuildType(ctx context.Context, info catalog.TypeInfo) (TypeSchema, error) {
	schema := TypeSchema{
		RowID:        info.RowID,
		Name:         info.Name,
		Kind:         info.Kind,
		KindName:     KindName(info.Kind),
		RuntimeFlags: info.RuntimeFlags,
		ContainerID:  info.ContainerID,
	}

	// The id column is itself a small wire-format blob; the reverse-DNS
	// identifier inside it names the type.
	if len(info.ID) > 0 {
		analysis := AnalyzeBlob(info.ID)
		if len(analysis.UTITypes) > 0 {
			parsed := ParseTypeID(analysis.UTITypes[0])
			schema.TypeID = &parsed
		}
	}

	if len(info.RuntimeRequirements) > 0 {
		analysis := AnalyzeRequirements(info.RuntimeRequirements)
		schema.Requirements = &analysis
	}

	var err error
	switch info.Kind {
	case 2:
		if schema.Properties, err = b.Catalog.EntityProperties(ctx, info.RowID, b.locale()); err != nil {
			return TypeSchema{}, fmt.Errorf("type %d: %w", info.RowID, err)
		}
	case 3:
		if schema.EnumCases, err = b.Catalog.EnumCases(ctx, info.RowID, b.locale()); err != nil {
			return TypeSchema{}, fmt.Errorf("type %d: %w", info.RowID, err)
		}
	}

	return schema, nil
}

// Summary aggregates counts over a set of action schemas.
type Summary struct {
	TotalCount      int            `json:"total_count"`
	ByType          map[string]int `json:"by_type"`
	ByVisibility    map[int64]int  `json:"by_visibility"`
	ByApp           map[string]int `json:"by_app"`
	HiddenCount     int            `json:"hidden_count"`
	DeprecatedCount int            `json:"deprecated_count"`
	WithParameters  int            `json:"with_parameters"`
	ParameterCount  int            `json:"parameter_count"`
}

// Summarize computes collection-level statistics for a set of actions.
func Summarize(actions []ActionSchema) Summary {
	summary := Summary{
		TotalCount:   len(actions),
		ByType:       map[string]int{},
		ByVisibility: map[int64]int{},
		ByApp:        map[string]int{},
	}

	for _, action := range actions {
		actionType := action.Type
		if actionType == "" {
			actionType = "unknown"
		}
		summary.ByType[actionType]++
		summary.ByVisibility[action.VisibilityFlags]++

		app := action.App.Name
		if app == "" {
			app = "Unknown"
		}
		summary.ByApp[app]++

		if action.Hidden {
			summary.HiddenCount++
		}
		if action.Deprecation != nil {
			summary.DeprecatedCount++
		}
		if len(action.Parameters) > 0 {
			summary.WithParameters++
			summary.ParameterCount += len(action.Parameters)
		}
	}

	return summary
}

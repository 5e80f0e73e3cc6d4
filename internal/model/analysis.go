package model

import "time"

// AnalyzerVersion tags every StructuralAnalysis so downstream caches can
// detect incompatible results after an upgrade.
const AnalyzerVersion = "pagelint/1"

// StructuralAnalysis is the complete structural model of one page.
type StructuralAnalysis struct {
	PageURL       string `json:"page_url,omitempty"`
	CentralEntity string `json:"central_entity,omitempty"`

	HeadingTree []*HeadingNode `json:"heading_tree"` // ordered forest, document order

	Regions Regions `json:"regions"`

	MainContentText      string `json:"-"` // raw text kept out of JSON reports
	MainContentWordCount int    `json:"main_content_word_count"`

	Sections []SectionAnalysis `json:"sections"`

	EntityProminence EntityProminence `json:"entity_prominence"`

	SchemaMarkup []SchemaBlock `json:"schema_markup"`

	DOMMetrics DOMMetrics `json:"dom_metrics"`

	// SkippedFragments counts malformed units (bad JSON-LD blocks, broken
	// attributes) that were dropped without aborting the analysis.
	SkippedFragments int `json:"skipped_fragments,omitempty"`

	AnalyzedAt time.Time `json:"analyzed_at"`
	Version    string    `json:"version"`
}

// HeadingNode is one heading element and its subtree.
// Every child's level is strictly greater than its parent's level and
// siblings appear in document order.
type HeadingNode struct {
	Level          int            `json:"level"` // 1-6
	Text           string         `json:"text"`
	WordCount      int            `json:"word_count"` // words in the span this heading owns
	EntityMentions int            `json:"entity_mentions"`
	Children       []*HeadingNode `json:"children,omitempty"`
}

// RegionStats describes the word-level share of one structural region.
type RegionStats struct {
	Exists     bool    `json:"exists"`
	WordCount  int     `json:"word_count"`
	Percentage float64 `json:"percentage"` // of total body words, 0-100
}

// Regions holds the five named structural regions of a page.
type Regions struct {
	Main    RegionStats `json:"main"`
	Sidebar RegionStats `json:"sidebar"`
	Nav     RegionStats `json:"nav"`
	Header  RegionStats `json:"header"`
	Footer  RegionStats `json:"footer"`
}

// SectionAnalysis covers one H2-rooted block: its content runs from the end
// of its H2 to the start of the next H2 (or document end).
type SectionAnalysis struct {
	Heading        string            `json:"heading"`
	Level          int               `json:"level"`
	WordCount      int               `json:"word_count"`
	ParagraphCount int               `json:"paragraph_count"`
	ListCount      int               `json:"list_count"`
	TableCount     int               `json:"table_count"`
	ImageCount     int               `json:"image_count"`
	EntityMentions int               `json:"entity_mentions"`
	SubSections    []SectionAnalysis `json:"sub_sections,omitempty"` // H3 blocks inside this span
}

// EntityProminence captures how prominently the central entity appears.
// FirstMentionPosition is the relative offset of the first case-insensitive
// match in the main content text; 1 means the entity was not found.
type EntityProminence struct {
	InTitle           bool `json:"in_title"`
	InFirstH1         bool `json:"in_first_h1"`
	InFirstH2         bool `json:"in_first_h2"`
	InMetaDescription bool `json:"in_meta_description"`

	TotalMentions   int `json:"total_mentions"`
	MainMentions    int `json:"main_mentions"`
	SidebarMentions int `json:"sidebar_mentions"`
	FooterMentions  int `json:"footer_mentions"`

	FirstMentionPosition float64 `json:"first_mention_position"` // 0-1, 1 = absent
	HeadingMentionRate   float64 `json:"heading_mention_rate"`   // 0-1, 0 when no headings
}

// SchemaSource identifies which embedding mechanism a SchemaBlock came from.
type SchemaSource string

const (
	SchemaSourceJSONLD    SchemaSource = "json-ld"
	SchemaSourceMicrodata SchemaSource = "microdata"
	SchemaSourceRDFa      SchemaSource = "rdfa"
)

// SchemaBlock is one structured-data entity, from any embedding mechanism.
type SchemaBlock struct {
	Type       string                 `json:"type"` // "Unknown" when absent
	Properties map[string]interface{} `json:"properties,omitempty"`
	Source     SchemaSource           `json:"source"`
}

// DOMMetrics holds element-count and nesting statistics for the document.
type DOMMetrics struct {
	TotalNodes       int `json:"total_nodes"`
	MainContentNodes int `json:"main_content_nodes"` // always <= TotalNodes
	NestingDepth     int `json:"nesting_depth"`
	DocumentBytes    int `json:"document_bytes"` // UTF-8 length of the raw input
}

package analyze

import (
	"testing"

	"github.com/ppiankov/pagelint/internal/model"
)

func TestExtractJSONLD_SingleBlock(t *testing.T) {
	doc := parseDoc(t, `<html><head>
<script type="application/ld+json">{"@type":"Article","headline":"Hello"}</script>
</head><body></body></html>`)

	blocks, skipped := extractSchema(doc)
	if skipped != 0 {
		t.Errorf("Expected no skipped fragments, got %d", skipped)
	}
	if len(blocks) != 1 {
		t.Fatalf("Expected 1 block, got %d", len(blocks))
	}
	b := blocks[0]
	if b.Type != "Article" || b.Source != model.SchemaSourceJSONLD {
		t.Errorf("Unexpected block: %+v", b)
	}
	if b.Properties["headline"] != "Hello" {
		t.Errorf("Unexpected properties: %+v", b.Properties)
	}
}

func TestExtractJSONLD_GraphFlattening(t *testing.T) {
	doc := parseDoc(t, `<html><head>
<script type="application/ld+json">
{"@context":"https://schema.org","@graph":[
  {"@type":"Organization","name":"Acme"},
  {"@type":"WebPage","name":"Home"}
]}
</script>
</head><body></body></html>`)

	blocks, _ := extractSchema(doc)
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks from @graph, got %d", len(blocks))
	}
	if blocks[0].Type != "Organization" || blocks[1].Type != "WebPage" {
		t.Errorf("Unexpected types: %s, %s", blocks[0].Type, blocks[1].Type)
	}
}

func TestExtractJSONLD_BadJSONSkipsBlockOnly(t *testing.T) {
	doc := parseDoc(t, `<html><head>
<script type="application/ld+json">{not valid json</script>
<script type="application/ld+json">{"@type":"Product"}</script>
</head><body></body></html>`)

	blocks, skipped := extractSchema(doc)
	if skipped != 1 {
		t.Errorf("Expected 1 skipped fragment, got %d", skipped)
	}
	if len(blocks) != 1 || blocks[0].Type != "Product" {
		t.Fatalf("Expected the valid block to survive, got %+v", blocks)
	}
}

func TestExtractJSONLD_MissingTypeDefaultsToUnknown(t *testing.T) {
	doc := parseDoc(t, `<html><head>
<script type="application/ld+json">{"name":"no type here"}</script>
</head><body></body></html>`)

	blocks, _ := extractSchema(doc)
	if len(blocks) != 1 || blocks[0].Type != "Unknown" {
		t.Fatalf("Expected Unknown type, got %+v", blocks)
	}
}

func TestExtractJSONLD_NestedPropertiesPreserved(t *testing.T) {
	doc := parseDoc(t, `<html><head>
<script type="application/ld+json">
{"@type":"Article","author":{"@type":"Person","name":"Jane"}}
</script>
</head><body></body></html>`)

	blocks, _ := extractSchema(doc)
	if len(blocks) != 1 {
		t.Fatalf("Expected 1 block, got %d", len(blocks))
	}
	author, ok := blocks[0].Properties["author"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected nested author map, got %T", blocks[0].Properties["author"])
	}
	if author["name"] != "Jane" {
		t.Errorf("Unexpected nested value: %+v", author)
	}
}

func TestExtractMicrodata(t *testing.T) {
	doc := parseDoc(t, `<html><body>
<div itemscope itemtype="https://schema.org/Product">
  <span itemprop="name">Widget</span>
  <meta itemprop="sku" content="W-1">
  <a itemprop="url" href="/widget">details</a>
</div>
</body></html>`)

	blocks, _ := extractSchema(doc)
	if len(blocks) != 1 {
		t.Fatalf("Expected 1 microdata block, got %d", len(blocks))
	}
	b := blocks[0]
	if b.Type != "Product" || b.Source != model.SchemaSourceMicrodata {
		t.Errorf("Unexpected block: %+v", b)
	}
	if b.Properties["name"] != "Widget" {
		t.Errorf("name = %v", b.Properties["name"])
	}
	if b.Properties["sku"] != "W-1" {
		t.Errorf("sku = %v", b.Properties["sku"])
	}
	if b.Properties["url"] != "/widget" {
		t.Errorf("url = %v", b.Properties["url"])
	}
}

func TestExtractMicrodata_NestedScope(t *testing.T) {
	doc := parseDoc(t, `<html><body>
<div itemscope itemtype="https://schema.org/Article">
  <span itemprop="headline">Story</span>
  <div itemprop="author" itemscope itemtype="https://schema.org/Person">
    <span itemprop="name">Jane</span>
  </div>
</div>
</body></html>`)

	blocks, _ := extractSchema(doc)
	// The outer and inner scopes are both blocks.
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(blocks))
	}

	outer := blocks[0]
	if outer.Type != "Article" {
		t.Fatalf("Unexpected outer type: %s", outer.Type)
	}
	author, ok := outer.Properties["author"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected nested author map, got %T", outer.Properties["author"])
	}
	if author["@type"] != "Person" {
		t.Errorf("Nested type = %v", author["@type"])
	}
	// The inner scope must not leak its properties into the outer block.
	if _, leaked := outer.Properties["name"]; leaked {
		t.Error("Inner itemprop leaked into outer block")
	}

	if blocks[1].Type != "Person" || blocks[1].Properties["name"] != "Jane" {
		t.Errorf("Unexpected inner block: %+v", blocks[1])
	}
}

func TestExtractRDFa(t *testing.T) {
	doc := parseDoc(t, `<html><body>
<div typeof="schema:Article">
  <h1 property="schema:headline">The Piece</h1>
  <meta property="schema:datePublished" content="2024-01-01">
</div>
</body></html>`)

	blocks, _ := extractSchema(doc)
	if len(blocks) != 1 {
		t.Fatalf("Expected 1 RDFa block, got %d", len(blocks))
	}
	b := blocks[0]
	if b.Type != "Article" || b.Source != model.SchemaSourceRDFa {
		t.Errorf("Unexpected block: %+v", b)
	}
	if b.Properties["headline"] != "The Piece" {
		t.Errorf("headline = %v", b.Properties["headline"])
	}
	if b.Properties["datePublished"] != "2024-01-01" {
		t.Errorf("datePublished = %v", b.Properties["datePublished"])
	}
}

func TestExtractSchema_AllThreeMechanismsContribute(t *testing.T) {
	doc := parseDoc(t, `<html><head>
<script type="application/ld+json">{"@type":"WebSite"}</script>
</head><body>
<div itemscope itemtype="https://schema.org/Organization"></div>
<div typeof="schema:Person"><span property="schema:name">Jo</span></div>
</body></html>`)

	blocks, _ := extractSchema(doc)
	if len(blocks) != 3 {
		t.Fatalf("Expected 3 blocks, got %d", len(blocks))
	}
	sources := map[model.SchemaSource]bool{}
	for _, b := range blocks {
		sources[b.Source] = true
	}
	for _, s := range []model.SchemaSource{model.SchemaSourceJSONLD, model.SchemaSourceMicrodata, model.SchemaSourceRDFa} {
		if !sources[s] {
			t.Errorf("Missing blocks from source %s", s)
		}
	}
}

package xmltree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const capDoc = `<?xml version="1.0" encoding="UTF-8"?>
<alert xmlns="urn:oasis:names:tc:emergency:cap:1.2">
  <identifier>abc-1</identifier>
  <info>
    <event>Flood</event>
    <severity>Severe</severity>
    <eventCode><valueName>SAME</valueName><value>FLW</value></eventCode>
    <headline lang="en">River rising</headline>
    <area>
      <areaDesc>Mumbai</areaDesc>
      <circle>19.07,72.87 10</circle>
    </area>
  </info>
</alert>`

func TestDecode_LeavesCollapseToText(t *testing.T) {
	root, err := Decode([]byte(capDoc))
	require.NoError(t, err)

	assert.Equal(t, "alert", root.Name.Local)
	assert.Equal(t, "urn:oasis:names:tc:emergency:cap:1.2", root.Name.Space)

	info := root.ChildElement("info")
	require.NotNil(t, info)

	ev := info.Child("event")
	assert.IsType(t, Text(""), ev)
	assert.Equal(t, "Flood", TextOf(ev))
}

func TestDecode_AttributedLeafStaysElement(t *testing.T) {
	root, err := Decode([]byte(capDoc))
	require.NoError(t, err)

	h := root.ChildElement("info").Child("headline")
	el, ok := h.(*Element)
	require.True(t, ok, "attributed leaf should be an *Element")
	lang, _ := el.Attr("lang")
	assert.Equal(t, "en", lang)
	assert.Equal(t, "River rising", TextOf(h))
}

func TestTextOf_NestedContent(t *testing.T) {
	root, err := Decode([]byte(capDoc))
	require.NoError(t, err)

	assert.Equal(t, "SAME FLW", root.ChildElement("info").ChildText("eventCode"))
	assert.Equal(t, "", TextOf(nil))
	assert.Equal(t, "", root.ChildText("missing"))
}

func TestDecode_NamespaceDeclarationsKeptAsAttrs(t *testing.T) {
	doc := `<rss xmlns:cap="urn:oasis:names:tc:emergency:cap:1.2"><channel><item><cap:alert><cap:identifier>x</cap:identifier></cap:alert></item></channel></rss>`
	root, err := Decode([]byte(doc))
	require.NoError(t, err)

	ns, ok := root.Attr("xmlns:cap")
	assert.True(t, ok)
	assert.Equal(t, "urn:oasis:names:tc:emergency:cap:1.2", ns)

	alerts := root.Find("alert")
	require.Len(t, alerts, 1)
	assert.Equal(t, "urn:oasis:names:tc:emergency:cap:1.2", alerts[0].Name.Space)
	assert.Equal(t, "x", alerts[0].ChildText("identifier"))
}

func TestFind_DocumentOrder(t *testing.T) {
	doc := `<rss><channel><item><title>a</title></item><item><title>b</title></item><extra><item><title>c</title></item></extra></channel></rss>`
	root, err := Decode([]byte(doc))
	require.NoError(t, err)

	items := root.Find("item")
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].ChildText("title"))
	assert.Equal(t, "b", items[1].ChildText("title"))
	assert.Equal(t, "c", items[2].ChildText("title"))
}

func TestDecode_CDATAAndEntities(t *testing.T) {
	doc := `<item><description><![CDATA[<p>Heavy rain&nbsp;in Pune</p>]]></description><title>A&nbsp;B</title></item>`
	root, err := Decode([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "<p>Heavy rain&nbsp;in Pune</p>", root.ChildText("description"))
	assert.Equal(t, "A\u00a0B", root.ChildText("title"))
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode([]byte(`<rss><channel>`))
	assert.Error(t, err)

	_, err = Decode([]byte(`   `))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestDecode_DeclaredCharset(t *testing.T) {
	// "Pun\xe9" is Latin-1 for "Puné".
	doc := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><item><title>Pun\xe9</title></item>")
	root, err := Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, "Puné", root.ChildText("title"))
}

func TestTextOf_MixedContentKeepsInlineMarkup(t *testing.T) {
	doc := `<item><description>Heavy rain warning for <b>Mumbai</b> and Pune districts</description></item>`
	root, err := Decode([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "Heavy rain warning for Mumbai and Pune districts", root.ChildText("description"))
	assert.Equal(t, "Heavy rain warning for Mumbai and Pune districts", root.Content())
}

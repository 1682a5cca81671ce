package atom

import (
	"errors"
	"strings"
	"testing"

	"greenbutton/internal/espi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <id>urn:uuid:feed</id>
  <title>Sample</title>
  <entry>
    <id>urn:uuid:1</id>
    <link href="http://x/UsagePoint" rel="up"/>
    <link href="http://x/UsagePoint/1" rel="self"/>
    <link href="http://x/UsagePoint/1/MeterReading" rel="related"/>
    <title>1 MAIN ST, </title>
    <title>ANYTOWN</title>
    <content>
      <UsagePoint xmlns="http://naesb.org/espi">
        <ServiceCategory><kind>0</kind></ServiceCategory>
      </UsagePoint>
      <Widget xmlns="http://example.com/other"><a>1</a></Widget>
    </content>
  </entry>
  <entry>
    <link href="http://x/ReadingType/1" rel="self"/>
    <content/>
  </entry>
</feed>`

func TestDecode(t *testing.T) {
	feed, err := Decode(strings.NewReader(sampleFeed))
	require.NoError(t, err)

	assert.Equal(t, "urn:uuid:feed", feed.ID)
	assert.Equal(t, "Sample", feed.Title)
	require.Len(t, feed.Entries, 2)

	entry := feed.Entries[0]
	assert.Equal(t, "1 MAIN ST, ANYTOWN", entry.Title())

	require.Len(t, entry.Links, 3)
	assert.Equal(t, Link{Href: "http://x/UsagePoint", Rel: RelUp}, entry.Links[0])
	assert.Equal(t, RelSelf, entry.Links[1].Rel)
	assert.Equal(t, RelRelated, entry.Links[2].Rel)

	require.Len(t, entry.Contents, 1)
	content := entry.Contents[0]
	require.Len(t, content.Elements, 2)

	up, ok := content.First().(*espi.UsagePoint)
	require.True(t, ok, "first element should be a usage point, got %T", content.First())
	kind, ok := up.ServiceKind().Wire()
	assert.True(t, ok)
	assert.Equal(t, espi.ServiceKindElectricity, kind)

	unknown, ok := content.Elements[1].(*espi.Unknown)
	require.True(t, ok)
	assert.Equal(t, "Widget", unknown.Name.Local)
	assert.Equal(t, espi.KindUnknown, unknown.Kind())

	empty := feed.Entries[1]
	assert.Equal(t, "", empty.Title())
	require.Len(t, empty.Contents, 1)
	assert.Nil(t, empty.Contents[0].First())
}

func TestDecodeNotAFeed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"other root", `<entry xmlns="http://www.w3.org/2005/Atom"><id>1</id></entry>`},
		{"empty document", ``},
		{"prolog only", `<?xml version="1.0"?>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNotAFeed), "got %v", err)
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode(strings.NewReader(`<feed><entry><title>x</entry></feed>`))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotAFeed))
}

func TestDecodeCharset(t *testing.T) {
	// 0xE9 is "é" in both latin1 and windows-1252
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>" +
		"<feed xmlns=\"http://www.w3.org/2005/Atom\"><entry><title>Caf\xe9</title></entry></feed>"

	feed, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, feed.Entries, 1)
	assert.Equal(t, "Café", feed.Entries[0].Title())

	_, err = Decode(strings.NewReader(`<?xml version="1.0" encoding="EBCDIC"?><feed/>`))
	assert.Error(t, err)
}

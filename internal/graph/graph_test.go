package graph

import (
	"os"
	"testing"

	"greenbutton/internal/atom"
	"greenbutton/internal/espi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func entry(self, up, title string, related []string, elements ...espi.Element) atom.Entry {
	e := atom.Entry{Titles: []atom.Text{{Value: title}}}
	if self != "" {
		e.Links = append(e.Links, atom.Link{Href: self, Rel: atom.RelSelf})
	}
	if up != "" {
		e.Links = append(e.Links, atom.Link{Href: up, Rel: atom.RelUp})
	}
	for _, r := range related {
		e.Links = append(e.Links, atom.Link{Href: r, Rel: atom.RelRelated})
	}
	if len(elements) > 0 {
		e.Contents = []atom.Content{{Elements: elements}}
	}
	return e
}

func sampleFeed() *atom.Feed {
	return &atom.Feed{Entries: []atom.Entry{
		entry("/UsagePoint/1", "/UsagePoint", "House",
			[]string{"/UsagePoint/1/MeterReading", "/LocalTimeParameters/1"},
			&espi.UsagePoint{}),
		entry("/UsagePoint/1/MeterReading/1", "/UsagePoint/1/MeterReading", "Hourly",
			[]string{"/UsagePoint/1/MeterReading/1/IntervalBlock", "/ReadingType/1"},
			&espi.MeterReading{}),
		entry("/UsagePoint/1/MeterReading/1/IntervalBlock/1", "/UsagePoint/1/MeterReading/1/IntervalBlock", "",
			nil, &espi.IntervalBlock{}),
		entry("/UsagePoint/1/MeterReading/1/IntervalBlock/2", "/UsagePoint/1/MeterReading/1/IntervalBlock", "",
			nil, &espi.IntervalBlock{}),
		entry("/ReadingType/1", "", "Type", nil, &espi.ReadingType{}),
	}}
}

func TestBuild(t *testing.T) {
	g := Build(sampleFeed())

	// 5 entries, placeholders for /UsagePoint, the MeterReading and IntervalBlock
	// containers and /LocalTimeParameters/1
	assert.Equal(t, 9, g.Len())
	assert.Equal(t, 0, g.Collisions())

	up, ok := g.Node("/UsagePoint/1")
	require.True(t, ok)
	assert.Equal(t, "House", up.Title)
	assert.Equal(t, espi.KindUsagePoint, up.ContentKind)
	assert.False(t, up.Placeholder)
	assert.Equal(t, []string{"/UsagePoint/1/MeterReading", "/LocalTimeParameters/1"}, up.Related)

	container, ok := g.Node("/UsagePoint/1/MeterReading/1/IntervalBlock")
	require.True(t, ok)
	assert.True(t, container.Placeholder)
	assert.Equal(t, espi.KindNone, container.ContentKind)
	assert.Equal(t, []string{
		"/UsagePoint/1/MeterReading/1/IntervalBlock/1",
		"/UsagePoint/1/MeterReading/1/IntervalBlock/2",
	}, container.Children)

	assert.Equal(t, []string{
		"/ReadingType/1",
		"/UsagePoint",
		"/UsagePoint/1/MeterReading",
		"/LocalTimeParameters/1",
		"/UsagePoint/1/MeterReading/1/IntervalBlock",
	}, g.RootNodes())
}

func TestBuildURIsAreUnique(t *testing.T) {
	g := Build(sampleFeed())

	seen := make(map[string]bool)
	for _, uri := range g.URIs() {
		assert.False(t, seen[uri], "duplicate uri %s", uri)
		seen[uri] = true
	}
	assert.Len(t, seen, g.Len())
}

func TestBuildParentChildBijection(t *testing.T) {
	g := Build(sampleFeed())

	for _, uri := range g.URIs() {
		n, _ := g.Node(uri)

		if n.HasParent() {
			parent, ok := g.Node(n.Parent)
			require.True(t, ok, "parent of %s missing", uri)
			count := 0
			for _, c := range parent.Children {
				if c == uri {
					count++
				}
			}
			assert.Equal(t, 1, count, "%s should appear once in its parent's children", uri)
		}

		for _, c := range n.Children {
			child, ok := g.Node(c)
			require.True(t, ok)
			assert.Equal(t, uri, child.Parent)
		}
	}
}

func TestBuildPlaceholders(t *testing.T) {
	feed := &atom.Feed{Entries: []atom.Entry{
		entry("/a", "/missing-parent", "a", []string{"/missing-1", "/b"}),
		entry("/b", "", "b", []string{"/missing-1", "/missing-2"}),
	}}

	g := Build(feed)

	assert.Equal(t, 2+3, g.Len())
	for _, uri := range []string{"/missing-parent", "/missing-1", "/missing-2"} {
		n, ok := g.Node(uri)
		require.True(t, ok, uri)
		assert.True(t, n.Placeholder)
		assert.Empty(t, n.Related)
		assert.Empty(t, n.Contents)
		assert.Equal(t, "", n.Title)
		assert.False(t, n.HasParent())
	}

	b, _ := g.Node("/b")
	assert.False(t, b.Placeholder)
}

func TestBuildIsIdempotent(t *testing.T) {
	first := Build(sampleFeed())
	second := Build(sampleFeed())

	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
	assert.Equal(t, first.URIs(), second.URIs())
	for _, uri := range first.URIs() {
		a, _ := first.Node(uri)
		b, _ := second.Node(uri)
		assert.Equal(t, a, b)
	}
}

func TestFingerprintChangesWithStructure(t *testing.T) {
	feed := sampleFeed()
	base := Build(feed).Fingerprint()

	feed.Entries[1].Links = append(feed.Entries[1].Links, atom.Link{Href: "/extra", Rel: atom.RelRelated})
	assert.NotEqual(t, base, Build(feed).Fingerprint())

	assert.Len(t, base, 64)
}

func TestBuildMissingSelfCollides(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	feed := &atom.Feed{Entries: []atom.Entry{
		entry("", "", "first", nil, &espi.MeterReading{}),
		entry("", "", "second", nil, &espi.ReadingType{}),
	}}

	g := Build(feed, WithLogger(zap.New(core)))

	assert.Equal(t, 1, g.Len())
	assert.Equal(t, 1, g.Collisions())
	n, ok := g.Node("")
	require.True(t, ok)
	assert.Equal(t, "second", n.Title)
	assert.Equal(t, espi.KindReadingType, n.ContentKind)
	assert.Equal(t, 1, logs.FilterMessageSnippet("same identity").Len())
}

func TestBuildEmptyHrefsIgnored(t *testing.T) {
	e := entry("/a", "", "a", nil)
	e.Links = append(e.Links,
		atom.Link{Href: "", Rel: atom.RelRelated},
		atom.Link{Href: "", Rel: atom.RelUp})

	g := Build(&atom.Feed{Entries: []atom.Entry{e}})

	assert.Equal(t, 1, g.Len())
	n, _ := g.Node("/a")
	assert.Empty(t, n.Related)
	assert.False(t, n.HasParent())
}

func TestBuildContentKind(t *testing.T) {
	withEmptyContent := entry("/empty", "", "", nil)
	withEmptyContent.Contents = []atom.Content{{}}

	feed := &atom.Feed{Entries: []atom.Entry{
		entry("/none", "", "", nil),
		withEmptyContent,
		entry("/unknown", "", "", nil, &espi.Unknown{}),
		entry("/first-wins", "", "", nil, &espi.IntervalBlock{}, &espi.ReadingType{}),
	}}

	g := Build(feed)

	tests := map[string]espi.Kind{
		"/none":       espi.KindNone,
		"/empty":      espi.KindNone,
		"/unknown":    espi.KindUnknown,
		"/first-wins": espi.KindIntervalBlock,
	}
	for uri, want := range tests {
		t.Run(uri, func(t *testing.T) {
			n, ok := g.Node(uri)
			require.True(t, ok)
			assert.Equal(t, want, n.ContentKind)
		})
	}
}

func TestBuildNilFeed(t *testing.T) {
	g := Build(nil)
	assert.Equal(t, 0, g.Len())
	assert.Empty(t, g.RootNodes())
}

func TestBuildFixture(t *testing.T) {
	f, err := os.Open("../../testdata/electric_containerized.xml")
	require.NoError(t, err)
	defer f.Close()

	feed, err := atom.Decode(f)
	require.NoError(t, err)

	g := Build(feed)
	const base = "https://services.greenbuttondata.org/DataCustodian/espi/1_1/resource"

	up, ok := g.Node(base + "/RetailCustomer/3/UsagePoint/1")
	require.True(t, ok)
	assert.Equal(t, "Coastal Multi-Family 12hr", up.Title)
	assert.Len(t, up.Related, 3)

	blocks, ok := g.Node(base + "/RetailCustomer/3/UsagePoint/1/MeterReading/0/IntervalBlock")
	require.True(t, ok)
	assert.True(t, blocks.Placeholder)
	assert.Len(t, blocks.Children, 2)

	// 7 entries plus 6 undefined containers
	assert.Equal(t, 13, g.Len())
}

package feed

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"greenbutton/internal/atom"
	"greenbutton/internal/domain"
	"greenbutton/internal/enum"
	"greenbutton/internal/espi"
	"greenbutton/internal/graph"
	"greenbutton/internal/tree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func loadFixture(t *testing.T, name string) *atom.Feed {
	t.Helper()
	f, err := os.Open(filepath.Join("..", "..", "testdata", name))
	require.NoError(t, err)
	defer f.Close()

	feed, err := atom.Decode(f)
	require.NoError(t, err)
	return feed
}

func decode(t *testing.T, doc string) *atom.Feed {
	t.Helper()
	feed, err := atom.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	return feed
}

func build(feed *atom.Feed, opts ...Option) (*ObjectFeed, error) {
	return Build(tree.Build(graph.Build(feed)), opts...)
}

func value(t *testing.T, r *domain.IntervalReading) float64 {
	t.Helper()
	v, err := r.Value()
	require.NoError(t, err)
	return v
}

func TestBuildElectricContainerized(t *testing.T) {
	out, err := build(loadFixture(t, "electric_containerized.xml"))
	require.NoError(t, err)
	require.Len(t, out.UsagePoints, 1)

	up := out.UsagePoints[0]
	assert.Equal(t, "Coastal Multi-Family 12hr", up.Title)
	assert.Equal(t, domain.ServiceElectricity, up.ServiceKind)
	assert.Contains(t, up.URI, "Customer/3/UsagePoint/1")
	assert.Equal(t, -1, up.Status)

	require.NotNil(t, up.ElectricPowerUsageSummary)
	quality, err := domain.QualityBridge.Decode(up.ElectricPowerUsageSummary.QualityOfReading)
	require.NoError(t, err)
	assert.Equal(t, domain.QualityUnvalidated, quality)
	assert.Nil(t, up.UsageSummary)

	require.NotNil(t, up.LocalTimeParameters)
	assert.Equal(t, int64(3600), up.LocalTimeParameters.DSTOffset)
	assert.Equal(t, int64(-8*60*60), up.LocalTimeParameters.TZOffset)

	require.Len(t, up.MeterReadings, 1)
	mr := up.MeterReadings[0]
	assert.Equal(t, "Hourly Electricity Consumption", mr.Title)
	assert.Contains(t, mr.URI, "Point/1/MeterReading/0")
	assert.Equal(t, "Real energy", mr.UOMDescription())
	assert.Equal(t, "Wh", mr.UOMSymbol())
	require.Len(t, mr.IntervalBlocks, 2)
	require.Len(t, mr.Readings, 8)

	first := mr.Readings[0]
	assert.Equal(t, 450.0, value(t, first))
	assert.True(t, math.IsNaN(first.CostValue()))
	assert.Equal(t, domain.QualityMissing, first.QualityOfReading)

	block := mr.IntervalBlocks[0]
	assert.Len(t, block.Readings, 4)
	assert.Same(t, block, first.Parent)
	assert.Same(t, mr.IntervalBlocks[1], mr.Readings[4].Parent)
	assert.Contains(t, mr.IntervalBlocks[1].URI, "IntervalBlock/174")
	assert.Equal(t, 602.0, value(t, mr.Readings[7]))
}

func TestBuildGasContainerizedAssumesGas(t *testing.T) {
	feed := loadFixture(t, "gas_containerized.xml")

	out, err := build(feed)
	require.NoError(t, err)
	require.Len(t, out.UsagePoints, 1)

	up := out.UsagePoints[0]
	assert.Equal(t, "101 DOG ST BOBTOWN MA US 12345-9032", up.Title)
	assert.Equal(t, domain.ServiceGas, up.ServiceKind)
	assert.Contains(t, up.URI, "User/1111111/UsagePoint/01")

	require.NotNil(t, up.LocalTimeParameters)
	assert.Equal(t, int64(3600), up.LocalTimeParameters.DSTOffset)
	assert.Equal(t, int64(5*60*60), up.LocalTimeParameters.TZOffset)

	require.Len(t, up.MeterReadings, 1)
	mr := up.MeterReadings[0]
	assert.Equal(t, "", mr.Title)
	assert.Contains(t, mr.URI, "Point/01/MeterReading/01")
	assert.Len(t, mr.IntervalBlocks, 3)
	require.Len(t, mr.Readings, 3)
	assert.Equal(t, "therm", mr.UOMSymbol())

	first := mr.Readings[0]
	assert.Equal(t, 12.0, value(t, first))
	assert.Equal(t, 2806000.0, first.CostValue())
	assert.Equal(t, domain.QualityValidated, first.QualityOfReading)
	assert.Equal(t, domain.QualityUnvalidated, mr.Readings[2].QualityOfReading)
	for _, b := range mr.IntervalBlocks {
		require.NotNil(t, b.PowerOfTen)
		assert.Equal(t, -3, *b.PowerOfTen)
	}

	// the fallback works on a copy of the decoded reading type
	rtNode := findEntry(t, feed, "/ReadingType/01")
	rt := rtNode.Contents[0].First().(*espi.ReadingType)
	uom, ok := rt.UOM.Wire()
	require.True(t, ok)
	assert.Equal(t, espi.UnitSymbolWh, uom)
	assert.NotSame(t, rt, mr.ReadingType)
}

func TestBuildGasContainerizedPolicies(t *testing.T) {
	feed := loadFixture(t, "gas_containerized.xml")

	t.Run("reject", func(t *testing.T) {
		_, err := build(feed, WithPolicy(Reject{}))
		assert.ErrorIs(t, err, ErrMissingServiceKind)
	})

	t.Run("keep missing", func(t *testing.T) {
		out, err := build(feed, WithPolicy(KeepMissing{}))
		require.NoError(t, err)
		up := out.UsagePoints[0]
		assert.Equal(t, domain.ServiceMissing, up.ServiceKind)
		assert.Equal(t, 12000.0, value(t, up.MeterReadings[0].Readings[0]))
		assert.Equal(t, "Wh", up.MeterReadings[0].UOMSymbol())
	})

	t.Run("custom", func(t *testing.T) {
		water := PolicyFunc(func(up *domain.UsagePoint) error {
			up.ServiceKind = domain.ServiceWater
			return nil
		})
		out, err := build(feed, WithPolicy(water))
		require.NoError(t, err)
		assert.Equal(t, domain.ServiceWater, out.UsagePoints[0].ServiceKind)
	})
}

func TestBuildGasDirect(t *testing.T) {
	out, err := build(loadFixture(t, "gas_direct.xml"))
	require.NoError(t, err)
	require.Len(t, out.UsagePoints, 1)

	up := out.UsagePoints[0]
	assert.Equal(t, "1 MAIN ST, ANYTOWN ME 12345", up.Title)
	assert.Equal(t, domain.ServiceGas, up.ServiceKind)
	assert.Contains(t, up.URI, "90/UsagePoint/NET_USAGE")
	assert.Nil(t, up.LocalTimeParameters)
	assert.Equal(t, 1, up.Status)

	require.Len(t, up.MeterReadings, 1)
	mr := up.MeterReadings[0]
	assert.Contains(t, mr.URI, "Point/NET_USAGE/MeterReading/1")
	assert.Len(t, mr.IntervalBlocks, 1)
	require.Len(t, mr.Readings, 5)

	first := mr.Readings[0]
	assert.Equal(t, 37.0, value(t, first))
	assert.Equal(t, 5100000.0, first.CostValue())
	assert.Equal(t, domain.QualityMissing, first.QualityOfReading)
	assert.Equal(t, 0, first.CPP)
	assert.Nil(t, first.TOU)

	require.NotNil(t, mr.Readings[2].TOU)
	assert.Equal(t, 1, *mr.Readings[2].TOU)
	require.NotNil(t, mr.Readings[3].ConsumptionTier)
	assert.Equal(t, 2, *mr.Readings[3].ConsumptionTier)
	assert.Equal(t, 1, mr.Readings[4].CPP)
	assert.Equal(t, 5, out.ReadingCount())
}

func TestBuildIsRepeatable(t *testing.T) {
	feed := loadFixture(t, "gas_containerized.xml")

	first, err := build(feed)
	require.NoError(t, err)
	second, err := build(feed)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

const unknownServiceKind = `<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <link href="/up/1" rel="self"/>
    <content><UsagePoint xmlns="http://naesb.org/espi"><ServiceCategory><kind>42</kind></ServiceCategory></UsagePoint></content>
  </entry>
</feed>`

const unknownQuality = `<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <link href="/up/1" rel="self"/>
    <link href="/mr/1" rel="related"/>
    <content><UsagePoint xmlns="http://naesb.org/espi"><ServiceCategory><kind>0</kind></ServiceCategory></UsagePoint></content>
  </entry>
  <entry>
    <link href="/mr/1" rel="self"/>
    <link href="/ib/1" rel="related"/>
    <content><MeterReading xmlns="http://naesb.org/espi"/></content>
  </entry>
  <entry>
    <link href="/ib/1" rel="self"/>
    <content><IntervalBlock xmlns="http://naesb.org/espi">
      <IntervalReading><ReadingQuality><quality>3</quality></ReadingQuality><value>1</value></IntervalReading>
    </IntervalBlock></content>
  </entry>
</feed>`

const unknownUnit = `<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <link href="/up/1" rel="self"/>
    <link href="/mr/1" rel="related"/>
    <content><UsagePoint xmlns="http://naesb.org/espi"><ServiceCategory><kind>0</kind></ServiceCategory></UsagePoint></content>
  </entry>
  <entry>
    <link href="/mr/1" rel="self"/>
    <link href="/rt/1" rel="related"/>
    <content><MeterReading xmlns="http://naesb.org/espi"/></content>
  </entry>
  <entry>
    <link href="/rt/1" rel="self"/>
    <content><ReadingType xmlns="http://naesb.org/espi"><uom>999</uom></ReadingType></content>
  </entry>
</feed>`

func TestBuildUnknownCodesFail(t *testing.T) {
	tests := map[string]string{
		"service kind": unknownServiceKind,
		"quality":      unknownQuality,
		"unit":         unknownUnit,
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := build(decode(t, doc))
			assert.ErrorIs(t, err, enum.ErrUnknownCode)
			assert.Nil(t, out)
		})
	}
}

const unreadableServiceKind = `<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <link href="/up/1" rel="self"/>
    <link href="/mr/1" rel="related"/>
    <content><UsagePoint xmlns="http://naesb.org/espi"><ServiceCategory><kind>%s</kind></ServiceCategory></UsagePoint></content>
  </entry>
  <entry>
    <link href="/mr/1" rel="self"/>
    <link href="/rt/1" rel="related"/>
    <link href="/ib/1" rel="related"/>
    <content><MeterReading xmlns="http://naesb.org/espi"/></content>
  </entry>
  <entry>
    <link href="/rt/1" rel="self"/>
    <content><ReadingType xmlns="http://naesb.org/espi"><powerOfTenMultiplier>0</powerOfTenMultiplier><uom>72</uom></ReadingType></content>
  </entry>
  <entry>
    <link href="/ib/1" rel="self"/>
    <content><IntervalBlock xmlns="http://naesb.org/espi">
      <IntervalReading><value>450</value></IntervalReading>
    </IntervalBlock></content>
  </entry>
</feed>`

func TestBuildUnreadableServiceKindFails(t *testing.T) {
	for _, kind := range []string{"electricity", "99999999999999999999"} {
		t.Run(kind, func(t *testing.T) {
			resolved := 0
			policy := PolicyFunc(func(up *domain.UsagePoint) error {
				resolved++
				return AssumeGas{}.Resolve(up)
			})

			out, err := build(decode(t, fmt.Sprintf(unreadableServiceKind, kind)), WithPolicy(policy))
			require.Error(t, err)
			assert.ErrorIs(t, err, enum.ErrUnknownCode)
			assert.Contains(t, err.Error(), kind)
			assert.Nil(t, out)
			assert.Zero(t, resolved, "an unreadable kind must not reach the policy")
		})
	}

	// the same feed with a readable kind keeps its unit and scale
	out, err := build(decode(t, fmt.Sprintf(unreadableServiceKind, "0")))
	require.NoError(t, err)
	require.Len(t, out.UsagePoints, 1)
	up := out.UsagePoints[0]
	assert.Equal(t, domain.ServiceElectricity, up.ServiceKind)
	mr := up.MeterReadings[0]
	unit, err := mr.Unit()
	require.NoError(t, err)
	assert.Equal(t, domain.UnitWh, unit)
	assert.Equal(t, 450.0, value(t, mr.Readings[0]))
}

func TestBuildSkipsUsagePointWithoutPayload(t *testing.T) {
	doc := `<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <link href="/up" rel="up"/>
    <link href="/up/1" rel="self"/>
    <content><UsagePoint xmlns="http://naesb.org/espi"><ServiceCategory><kind>2</kind></ServiceCategory></UsagePoint></content>
  </entry>
  <entry>
    <link href="/up" rel="up"/>
    <link href="/up/2" rel="self"/>
    <content><ReadingType xmlns="http://naesb.org/espi"/></content>
  </entry>
</feed>`

	core, logs := observer.New(zapcore.WarnLevel)
	out, err := build(decode(t, doc), WithLogger(zap.New(core)))
	require.NoError(t, err)

	require.Len(t, out.UsagePoints, 1)
	assert.Equal(t, domain.ServiceWater, out.UsagePoints[0].ServiceKind)
	assert.Empty(t, out.UsagePoints[0].MeterReadings)
	assert.Equal(t, 1, logs.FilterField(zap.String("uri", "/up/2")).Len())
}

func TestBuildTimeConfigurationElement(t *testing.T) {
	doc := `<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <link href="/up/1" rel="self"/>
    <link href="/tc/1" rel="related"/>
    <content><UsagePoint xmlns="http://naesb.org/espi"><ServiceCategory><kind>0</kind></ServiceCategory></UsagePoint></content>
  </entry>
  <entry>
    <link href="/tc/1" rel="self"/>
    <content><TimeConfiguration xmlns="http://naesb.org/espi"><tzOffset>-18000</tzOffset></TimeConfiguration></content>
  </entry>
</feed>`

	out, err := build(decode(t, doc))
	require.NoError(t, err)
	require.NotNil(t, out.UsagePoints[0].LocalTimeParameters)
	assert.Equal(t, int64(-18000), out.UsagePoints[0].LocalTimeParameters.TZOffset)
}

func TestBuildNilTree(t *testing.T) {
	out, err := Build(nil)
	require.NoError(t, err)
	assert.Empty(t, out.UsagePoints)
}

func TestProcessReadings(t *testing.T) {
	cost := int64(100)
	tier := 3
	raw := &espi.IntervalBlock{IntervalReadings: []espi.IntervalReading{
		{Cost: &cost, ConsumptionTier: &tier},
		{ReadingQuality: []espi.ReadingQuality{
			{Quality: enum.Wire(espi.QualityRaw)},
			{Quality: enum.Wire(espi.QualityValid)},
		}},
		{ReadingQuality: []espi.ReadingQuality{{}}},
	}}
	block := &domain.IntervalBlock{URI: "/ib"}

	require.NoError(t, ProcessReadings(block, raw))
	require.Len(t, block.Readings, 3)

	first := block.Readings[0]
	assert.Equal(t, int64(0), first.RawValue)
	assert.Equal(t, domain.QualityMissing, first.QualityOfReading)
	assert.Same(t, block, first.Parent)
	require.NotNil(t, first.ConsumptionTier)
	assert.NotSame(t, &tier, first.ConsumptionTier)
	assert.Equal(t, 100.0, first.CostValue())

	assert.Equal(t, domain.QualityUnvalidated, block.Readings[1].QualityOfReading, "first annotation wins")
	assert.Equal(t, domain.QualityMissing, block.Readings[2].QualityOfReading, "absent code is missing")
}

func TestPolicyByName(t *testing.T) {
	tests := []struct {
		name string
		want ServicePolicy
	}{
		{"", AssumeGas{}},
		{"assume-gas", AssumeGas{}},
		{"Reject", Reject{}},
		{"missing", KeepMissing{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := PolicyByName(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}

	_, err := PolicyByName("guess")
	assert.Error(t, err)
}

func findEntry(t *testing.T, feed *atom.Feed, suffix string) *atom.Entry {
	t.Helper()
	for i := range feed.Entries {
		for _, l := range feed.Entries[i].Links {
			if l.Rel == atom.RelSelf && strings.HasSuffix(l.Href, suffix) {
				return &feed.Entries[i]
			}
		}
	}
	t.Fatalf("no entry ending in %s", suffix)
	return nil
}

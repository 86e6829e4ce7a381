package notion

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseProps(t *testing.T, raw string) Properties {
	t.Helper()
	var p Properties
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return p
}

func TestProperties_TextAccessors(t *testing.T) {
	p := parseProps(t, `{
		"Name": {"type":"title","title":[{"plain_text":"Deep Work"},{"plain_text":" tail"}]},
		"Empty": {"type":"title","title":[]},
		"Norm": {"type":"rich_text","rich_text":[{"plain_text":"≥4 ч"}]},
		"Broken": {"type":"title","title":"oops"}
	}`)

	assert.Equal(t, "Deep Work", p.Title("Name"))
	assert.Equal(t, "", p.Title("Empty"))
	assert.Equal(t, "", p.Title("Missing"))
	assert.Equal(t, "", p.Title("Broken"))
	assert.Equal(t, "≥4 ч", p.RichText("Norm"))
	assert.Equal(t, "", p.RichText("Name"))
}

func TestProperties_Select(t *testing.T) {
	p := parseProps(t, `{
		"Level": {"type":"select","select":{"name":"🥉 Bronze"}},
		"Null": {"type":"select","select":null},
		"State": {"type":"status","status":{"name":"Получено"}}
	}`)

	assert.Equal(t, "🥉 Bronze", p.Select("Level"))
	assert.Equal(t, "", p.Select("Null"))
	assert.Equal(t, "Получено", p.Select("State"))
	assert.Equal(t, "", p.Select("Missing"))
}

func TestProperties_Formula(t *testing.T) {
	p := parseProps(t, `{
		"Text": {"type":"formula","formula":{"type":"string","string":"7.9 ч"}},
		"Num": {"type":"formula","formula":{"type":"number","number":103.3}},
		"NullNum": {"type":"formula","formula":{"type":"number","number":null}},
		"Bool": {"type":"formula","formula":{"type":"boolean","boolean":true}}
	}`)

	assert.Equal(t, FormulaValue{Text: "7.9 ч"}, p.Formula("Text"))
	num := p.Formula("Num")
	require.NotNil(t, num.Number)
	assert.InDelta(t, 103.3, *num.Number, 1e-9)
	assert.Equal(t, FormulaValue{}, p.Formula("NullNum"))
	assert.Equal(t, FormulaValue{}, p.Formula("Bool"))
	assert.Equal(t, FormulaValue{}, p.Formula("Missing"))
}

func TestProperties_NumbersAndCheckboxes(t *testing.T) {
	p := parseProps(t, `{
		"Score": {"type":"number","number":8},
		"NullScore": {"type":"number","number":null},
		"Done": {"type":"checkbox","checkbox":true},
		"Count": {"type":"rollup","rollup":{"type":"number","number":3}},
		"First": {"type":"rollup","rollup":{"type":"date","date":{"start":"2025-01-02"}}},
		"NoDate": {"type":"rollup","rollup":{"type":"date","date":null}},
		"Day": {"type":"date","date":{"start":"2025-01-05"}}
	}`)

	assert.Equal(t, 8.0, p.Number("Score"))
	assert.Equal(t, 0.0, p.Number("NullScore"))
	assert.Equal(t, 0.0, p.Number("Missing"))
	assert.True(t, p.Checkbox("Done"))
	assert.False(t, p.Checkbox("Missing"))
	assert.Equal(t, 3.0, p.RollupNumber("Count"))
	assert.Equal(t, 0.0, p.RollupNumber("First"))

	first := p.RollupDate("First")
	require.NotNil(t, first)
	assert.Equal(t, "2025-01-02", *first)
	assert.Nil(t, p.RollupDate("NoDate"))
	assert.Nil(t, p.RollupDate("Missing"))

	day := p.DateStart("Day")
	require.NotNil(t, day)
	assert.Equal(t, "2025-01-05", *day)
	assert.Nil(t, p.DateStart("Missing"))
	assert.True(t, p.Has("Day"))
	assert.False(t, p.Has("Missing"))
}

package notion

import "encoding/json"

// Page is a database row as returned by a query. Properties are kept raw and
// decoded on access so that one malformed property never poisons the page.
type Page struct {
	Object         string     `json:"object"`
	ID             string     `json:"id"`
	CreatedTime    string     `json:"created_time"`
	LastEditedTime string     `json:"last_edited_time"`
	Archived       bool       `json:"archived"`
	URL            string     `json:"url"`
	Properties     Properties `json:"properties"`
}

type RichText struct {
	Type      string `json:"type"`
	PlainText string `json:"plain_text"`
}

type SelectOption struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type DateValue struct {
	Start    string  `json:"start"`
	End      *string `json:"end"`
	TimeZone *string `json:"time_zone"`
}

type Formula struct {
	Type    string     `json:"type"`
	String  *string    `json:"string"`
	Number  *float64   `json:"number"`
	Boolean *bool      `json:"boolean"`
	Date    *DateValue `json:"date"`
}

type Rollup struct {
	Type     string     `json:"type"`
	Function string     `json:"function"`
	Number   *float64   `json:"number"`
	Date     *DateValue `json:"date"`
}

// Property is the union of the property shapes this package understands.
// Only the member matching Type is populated by Notion.
type Property struct {
	ID       string        `json:"id"`
	Type     string        `json:"type"`
	Title    []RichText    `json:"title"`
	RichText []RichText    `json:"rich_text"`
	Select   *SelectOption `json:"select"`
	Status   *SelectOption `json:"status"`
	Formula  *Formula      `json:"formula"`
	Number   *float64      `json:"number"`
	Checkbox *bool         `json:"checkbox"`
	Rollup   *Rollup       `json:"rollup"`
	Date     *DateValue    `json:"date"`
}

// FormulaValue is a formula result reduced to the two kinds the dashboard
// shows: text and numbers.
type FormulaValue struct {
	Text   string
	Number *float64
}

// Properties is a page's property bag keyed by the human-readable field
// name. Every accessor returns its documented default when the field is
// absent, null, of another type or malformed.
type Properties map[string]json.RawMessage

func (p Properties) lookup(name string) (Property, bool) {
	raw, ok := p[name]
	if !ok || len(raw) == 0 {
		return Property{}, false
	}
	var prop Property
	if err := json.Unmarshal(raw, &prop); err != nil {
		return Property{}, false
	}
	return prop, true
}

// Has reports whether the page carries a property with that name at all.
func (p Properties) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// Title returns the first text run of a title property, or "".
func (p Properties) Title(name string) string {
	prop, ok := p.lookup(name)
	if !ok {
		return ""
	}
	return firstPlainText(prop.Title)
}

// RichText returns the first text run of a rich_text property, or "".
func (p Properties) RichText(name string) string {
	prop, ok := p.lookup(name)
	if !ok {
		return ""
	}
	return firstPlainText(prop.RichText)
}

// Select returns the selected option's label, or "". Notion "status"
// properties carry the same option shape and are accepted too.
func (p Properties) Select(name string) string {
	prop, ok := p.lookup(name)
	if !ok {
		return ""
	}
	if prop.Select != nil {
		return prop.Select.Name
	}
	if prop.Status != nil {
		return prop.Status.Name
	}
	return ""
}

// Formula returns a string formula as Text, a numeric formula as Number and
// anything else (boolean, date, null) as the empty text value.
func (p Properties) Formula(name string) FormulaValue {
	prop, ok := p.lookup(name)
	if !ok || prop.Formula == nil {
		return FormulaValue{}
	}
	switch prop.Formula.Type {
	case "string":
		if prop.Formula.String != nil {
			return FormulaValue{Text: *prop.Formula.String}
		}
	case "number":
		if prop.Formula.Number != nil {
			n := *prop.Formula.Number
			return FormulaValue{Number: &n}
		}
	}
	return FormulaValue{}
}

// Number returns a number property, or 0.
func (p Properties) Number(name string) float64 {
	prop, ok := p.lookup(name)
	if !ok || prop.Number == nil {
		return 0
	}
	return *prop.Number
}

// Checkbox returns a checkbox property, or false.
func (p Properties) Checkbox(name string) bool {
	prop, ok := p.lookup(name)
	if !ok || prop.Checkbox == nil {
		return false
	}
	return *prop.Checkbox
}

// RollupNumber returns the aggregated number of a rollup, or 0.
func (p Properties) RollupNumber(name string) float64 {
	prop, ok := p.lookup(name)
	if !ok || prop.Rollup == nil || prop.Rollup.Number == nil {
		return 0
	}
	return *prop.Rollup.Number
}

// RollupDate returns the start of a date rollup, or nil.
func (p Properties) RollupDate(name string) *string {
	prop, ok := p.lookup(name)
	if !ok || prop.Rollup == nil || prop.Rollup.Date == nil {
		return nil
	}
	return nonEmpty(prop.Rollup.Date.Start)
}

// DateStart returns the start of a date property, or nil.
func (p Properties) DateStart(name string) *string {
	prop, ok := p.lookup(name)
	if !ok || prop.Date == nil {
		return nil
	}
	return nonEmpty(prop.Date.Start)
}

func firstPlainText(runs []RichText) string {
	if len(runs) == 0 {
		return ""
	}
	return runs[0].PlainText
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package model

// FilterCombination determines how multiple conditions within one column's
// filter combine.
type FilterCombination string

const (
	CombinationAnd FilterCombination = "and"
	CombinationOr  FilterCombination = "or"
)

// TextOperator enumerates text-condition operators.
type TextOperator string

const (
	TextContains    TextOperator = "contains"
	TextNotContains TextOperator = "notContains"
	TextEquals      TextOperator = "equals"
	TextNotEquals   TextOperator = "notEquals"
	TextStartsWith  TextOperator = "startsWith"
	TextEndsWith    TextOperator = "endsWith"
	TextBlank       TextOperator = "blank"
	TextNotBlank    TextOperator = "notBlank"
)

// NumberOperator enumerates number-condition operators.
type NumberOperator string

const (
	NumberEqual        NumberOperator = "="
	NumberNotEqual     NumberOperator = "!="
	NumberLessThan     NumberOperator = "<"
	NumberGreaterThan  NumberOperator = ">"
	NumberLessEqual    NumberOperator = "<="
	NumberGreaterEqual NumberOperator = ">="
	NumberBetween      NumberOperator = "between"
	NumberBlank        NumberOperator = "blank"
	NumberNotBlank     NumberOperator = "notBlank"
)

// DateOperator enumerates date-condition operators.
type DateOperator string

const (
	DateEqual       DateOperator = "="
	DateNotEqual    DateOperator = "!="
	DateLessThan    DateOperator = "<"
	DateGreaterThan DateOperator = ">"
	DateBetween     DateOperator = "between"
	DateBlank       DateOperator = "blank"
	DateNotBlank    DateOperator = "notBlank"
)

// FilterCondition is a sum type over three variants (text, number, date),
// per §9's design note: "inheritance-like variation among filter
// conditions is a sum type with three variants ... the evaluator
// dispatches on variant." Kind selects the active variant; the evaluator
// in sortfilter dispatches on it rather than on a type assertion chain.
type FilterCondition struct {
	Kind FilterKind

	TextOperator  TextOperator
	NumberOp      NumberOperator
	DateOp        DateOperator
	Value         any
	ValueTo       any
	SelectedValues []string
	IncludeBlank  bool
}

// FilterKind selects which operator set a FilterCondition uses.
type FilterKind string

const (
	FilterKindText   FilterKind = "text"
	FilterKindNumber FilterKind = "number"
	FilterKindDate   FilterKind = "date"
)

// ColumnFilterModel is the per-column filter state: a list of conditions
// combined with And or Or.
type ColumnFilterModel struct {
	Conditions  []FilterCondition
	Combination FilterCombination
}

// IsEmpty reports whether the filter has no conditions and should be
// skipped by applyFilters (§4.4).
func (f ColumnFilterModel) IsEmpty() bool {
	return len(f.Conditions) == 0
}

// FilterModel is the full grid filter state, keyed by column id.
type FilterModel map[string]ColumnFilterModel

package shift

import (
	"fmt"
	"regexp"
)

// LabelFields are the raw segments of a shift label. Nothing is validated beyond
// the structural match; Location, for instance, need not be numeric.
type LabelFields struct {
	Job         string `json:"job"`
	StartText   string `json:"start"`
	EndText     string `json:"end"`
	Location    string `json:"location"`
	DisplayDate string `json:"displayDate"`
}

// DisplayTime renders the start and end text as "05:00PM–10:00PM".
func (f LabelFields) DisplayTime() string {
	return f.StartText + "–" + f.EndText
}

// LabelGrammar parses one shift label. Implementations let a different page
// version be supported without touching the scanner or the exporter.
type LabelGrammar interface {
	Parse(label string) (LabelFields, error)
}

// Capture group names a RegexpGrammar pattern must define.
var requiredGroups = []string{"job", "start", "end", "location", "date"}

// RegexpGrammar is a LabelGrammar backed by a single regular expression with
// named groups job, start, end, location and date.
type RegexpGrammar struct {
	Name    string
	pattern *regexp.Regexp
	index   map[string]int
}

// NewRegexpGrammar compiles expr and checks that every required group is present.
func NewRegexpGrammar(name, expr string) (*RegexpGrammar, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling grammar %s: %w", name, err)
	}

	index := make(map[string]int, len(requiredGroups))
	for _, group := range requiredGroups {
		i := re.SubexpIndex(group)
		if i < 0 {
			return nil, fmt.Errorf("grammar %s: missing capture group %q", name, group)
		}
		index[group] = i
	}

	return &RegexpGrammar{Name: name, pattern: re, index: index}, nil
}

// MustRegexpGrammar is like NewRegexpGrammar but panics on error.
func MustRegexpGrammar(name, expr string) *RegexpGrammar {
	g, err := NewRegexpGrammar(name, expr)
	if err != nil {
		panic(err)
	}
	return g
}

// Parse implements LabelGrammar.
func (g *RegexpGrammar) Parse(label string) (LabelFields, error) {
	m := g.pattern.FindStringSubmatch(label)
	if m == nil {
		return LabelFields{}, &ParseError{Kind: MalformedShiftLabel, Input: label}
	}

	return LabelFields{
		Job:         m[g.index["job"]],
		StartText:   m[g.index["start"]],
		EndText:     m[g.index["end"]],
		Location:    m[g.index["location"]],
		DisplayDate: m[g.index["date"]],
	}, nil
}

// MyTimeV1 is the label grammar of the myTime weekly view:
//
//	<job> shift from <start> to <end> at location <location> on <date>. Click to view daily view
var MyTimeV1 = MustRegexpGrammar("mytime-v1",
	`^(?P<job>.+) shift from (?P<start>.+) to (?P<end>.+) at location (?P<location>.+) on (?P<date>.+)\. Click to view daily view$`)

// DefaultGrammar is used when no grammar is supplied.
var DefaultGrammar LabelGrammar = MyTimeV1

// ParseShiftLabel parses label with DefaultGrammar.
func ParseShiftLabel(label string) (LabelFields, error) {
	return DefaultGrammar.Parse(label)
}

package report

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/featlint/featlint/internal/concordance"
	"github.com/featlint/featlint/internal/taxonomy"
)

// junitRenderer emits JUnit XML so CI systems can surface warnings as
// test failures. Warnings are grouped into one synthetic suite per
// kind; the classname carries the feature file and the case name the
// scenario.
type junitRenderer struct{}

type junitSuites struct {
	XMLName  xml.Name     `xml:"testsuites"`
	Tests    int          `xml:"tests,attr"`
	Failures int          `xml:"failures,attr"`
	Suites   []junitSuite `xml:"testsuite"`
}

type junitSuite struct {
	Name     string      `xml:"name,attr"`
	Tests    int         `xml:"tests,attr"`
	Failures int         `xml:"failures,attr"`
	Cases    []junitCase `xml:"testcase"`
}

type junitCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

func (junitRenderer) RenderWarnings(w io.Writer, warnings []taxonomy.Warning) error {
	suites := junitSuites{
		Tests:    len(warnings),
		Failures: len(warnings),
	}

	// Warnings arrive location-sorted; regroup by kind while keeping
	// each suite's internal order stable.
	index := make(map[taxonomy.Kind]int)
	for _, warning := range warnings {
		i, ok := index[warning.Kind]
		if !ok {
			i = len(suites.Suites)
			index[warning.Kind] = i
			suites.Suites = append(suites.Suites, junitSuite{Name: string(warning.Kind)})
		}
		name := warning.Scenario
		if name == "" {
			name = warning.Location()
		}
		suites.Suites[i].Cases = append(suites.Suites[i].Cases, junitCase{
			Name:      name,
			Classname: warning.Feature,
			Failure: &junitFailure{
				Message: warning.Message,
				Type:    string(warning.Severity),
				Body:    fmt.Sprintf("%s: %s", warning.ID, warning.Message),
			},
		})
		suites.Suites[i].Tests++
		suites.Suites[i].Failures++
	}

	if len(suites.Suites) == 0 {
		suites.Suites = []junitSuite{{Name: "featlint", Cases: []junitCase{}}}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(suites); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (junitRenderer) RenderConcordance(io.Writer, *concordance.Concordance) error {
	return errors.New("junit format renders warnings only")
}

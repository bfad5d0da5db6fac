package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ExtractorSuite struct {
	suite.Suite
}

func TestExtractorSuite(t *testing.T) {
	suite.Run(t, new(ExtractorSuite))
}

func (s *ExtractorSuite) TestDOB() {
	s.Run("finds slash-separated date", func() {
		fields := ExtractFields("DOB: 15/08/1990 and other text")
		s.Require().NotNil(fields.DOB)
		s.Equal("15/08/1990", *fields.DOB)
	})

	s.Run("finds hyphen-separated date", func() {
		fields := ExtractFields("DOB: 15-08-1990 and other text")
		s.Require().NotNil(fields.DOB)
		s.Equal("15-08-1990", *fields.DOB)
	})

	s.Run("falls back to year-first shape", func() {
		fields := ExtractFields("Issued 1990/08/15 somewhere")
		s.Require().NotNil(fields.DOB)
		s.Equal("1990/08/15", *fields.DOB)
	})

	s.Run("falls back to month-name shape", func() {
		fields := ExtractFields("Born on 15 August 1990 in town")
		s.Require().NotNil(fields.DOB)
		s.Equal("15 August 1990", *fields.DOB)
	})

	s.Run("earlier pattern wins over later ones", func() {
		fields := ExtractFields("15 August 1990 then 01/02/2003")
		s.Require().NotNil(fields.DOB)
		s.Equal("01/02/2003", *fields.DOB)
	})

	s.Run("absent when no date shape matches", func() {
		fields := ExtractFields("no dates here at all")
		s.Nil(fields.DOB)
	})
}

func (s *ExtractorSuite) TestIDNumber() {
	s.Run("extracts PAN-shaped token", func() {
		fields := ExtractFields("Permanent Account Number JYWPD8828K issued")
		s.Require().NotNil(fields.IDNumber)
		s.Equal("JYWPD8828K", *fields.IDNumber)
	})

	s.Run("strips trailing non-letter noise", func() {
		fields := ExtractFields("Permanent Account Number JYWPD8828)")
		s.Require().NotNil(fields.IDNumber)
		s.Equal("JYWPD8828", *fields.IDNumber)
	})

	s.Run("keeps trailing digit stripped too", func() {
		fields := ExtractFields("token ABCDE12345 here")
		s.Require().NotNil(fields.IDNumber)
		s.Equal("ABCDE1234", *fields.IDNumber)
	})

	s.Run("lowercase letters do not match", func() {
		fields := ExtractFields("token abcde1234k here")
		s.Nil(fields.IDNumber)
	})

	s.Run("only the first match is used", func() {
		fields := ExtractFields("AAAAA1111B then BBBBB2222C")
		s.Require().NotNil(fields.IDNumber)
		s.Equal("AAAAA1111B", *fields.IDNumber)
	})
}

func (s *ExtractorSuite) TestName() {
	s.Run("prefers the Name label", func() {
		fields := ExtractFields("Name John Smith\nDOB 01/01/1990")
		s.Require().NotNil(fields.Name)
		s.Equal("John Smith", *fields.Name)
	})

	s.Run("label capture is greedy up to the next non-letter", func() {
		// Matches the source behavior: same-line label words ride along.
		fields := ExtractFields("Name John Smith DOB 01/01/1990")
		s.Require().NotNil(fields.Name)
		s.Equal("John Smith DOB", *fields.Name)
	})

	s.Run("label is case-insensitive", func() {
		fields := ExtractFields("NAME Jane Doe")
		s.Require().NotNil(fields.Name)
		s.Equal("Jane Doe", *fields.Name)
	})

	s.Run("falls back to top-line heuristic", func() {
		text := "GOVERNMENT OF EXAMPLE\nJohn A. Smith\nDOB 01/01/1990"
		fields := ExtractFields(text)
		s.Require().NotNil(fields.Name)
		s.Equal("John A. Smith", *fields.Name)
	})

	s.Run("skips boilerplate lines", func() {
		text := "National Identity Card\nGovernment Issue\nMaria Lopez\nmore text"
		fields := ExtractFields(text)
		s.Require().NotNil(fields.Name)
		s.Equal("Maria Lopez", *fields.Name)
	})

	s.Run("single-word lines do not qualify", func() {
		fields := ExtractFields("Smith\n12345\n!!!")
		s.Nil(fields.Name)
	})

	s.Run("heuristic only scans the first eight lines", func() {
		lines := make([]string, 0, 10)
		for i := 0; i < 8; i++ {
			lines = append(lines, "1234 5678")
		}
		lines = append(lines, "John Smith")
		fields := ExtractFields(strings.Join(lines, "\n"))
		s.Nil(fields.Name)
	})
}

func (s *ExtractorSuite) TestAddress() {
	s.Run("joins the last four long lines", func() {
		text := "Name John Smith\nDOB 01/01/1990\nHouse 12, Blue Street\nSpring Gardens Colony\nExample City 560001\nIN"
		fields := ExtractFields(text)
		s.Require().NotNil(fields.AddressSnippet)
		s.Equal("House 12, Blue Street, Spring Gardens Colony, Example City 560001", *fields.AddressSnippet)
	})

	s.Run("absent for documents with three or fewer lines", func() {
		fields := ExtractFields("one line\ntwo line\nthree line")
		s.Nil(fields.AddressSnippet)
	})

	s.Run("truncates to 200 characters", func() {
		long := strings.Repeat("a", 120)
		text := "header line\n" + long + "\n" + long + "\n" + long + "\n" + long
		fields := ExtractFields(text)
		s.Require().NotNil(fields.AddressSnippet)
		s.Len(*fields.AddressSnippet, 200)
	})
}

func (s *ExtractorSuite) TestNormalization() {
	s.Run("collapses runs of whitespace", func() {
		fields := ExtractFields("  too   much\t\twhitespace  ")
		s.Equal("too much whitespace", fields.RawText)
	})

	s.Run("date split across lines still matches", func() {
		fields := ExtractFields("DOB\n15/08/1990")
		s.Require().NotNil(fields.DOB)
		s.Equal("15/08/1990", *fields.DOB)
	})
}

func (s *ExtractorSuite) TestTotality() {
	inputs := []string{
		"",
		" ",
		"\n\n\n",
		"\x00\x01\x02 binary garbage \xff\xfe",
		strings.Repeat("x", 100_000),
	}
	for _, input := range inputs {
		fields := ExtractFields(input)
		if fields.Name != nil {
			s.NotEmpty(*fields.Name)
		}
		if fields.DOB != nil {
			s.NotEmpty(*fields.DOB)
		}
		if fields.IDNumber != nil {
			s.NotEmpty(*fields.IDNumber)
		}
		if fields.AddressSnippet != nil {
			s.NotEmpty(*fields.AddressSnippet)
		}
	}
}

func (s *ExtractorSuite) TestAverageConfidence() {
	conf := func(v float64) *float64 { return &v }

	s.Run("averages present non-negative values", func() {
		words := []Word{
			{Text: "a", Confidence: conf(80)},
			{Text: "b", Confidence: conf(60)},
			{Text: "c", Confidence: conf(-1)},
			{Text: "d"},
		}
		avg := AverageConfidence(words)
		s.Require().NotNil(avg)
		s.InDelta(70.0, *avg, 1e-9)
	})

	s.Run("nil when no values are usable", func() {
		s.Nil(AverageConfidence(nil))
		s.Nil(AverageConfidence([]Word{{Text: "a"}, {Text: "b", Confidence: conf(-5)}}))
	})
}

func (s *ExtractorSuite) TestWordCount() {
	s.Equal(2, WordCount([]Word{{Text: "a"}, {Text: " "}, {Text: "b"}, {Text: ""}}))
}

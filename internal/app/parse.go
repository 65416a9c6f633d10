package service

import (
	"fmt"

	"github.com/okian/boardscore/internal/domain/numparse"
	"github.com/okian/boardscore/pkg/metrics"
)

// Parse modes.
const (
	ParseInt          = "int"
	ParseList         = "list"
	ParseDestinations = "destinations"
)

// ParseResult is the outcome of Parse. Value is set for ParseInt, Values and
// Formatted for the list modes.
type ParseResult struct {
	Mode      string `json:"mode"`
	Value     *int   `json:"value,omitempty"`
	Values    []int  `json:"values,omitempty"`
	Formatted string `json:"formatted"`
}

// Parse runs one of the text parsers on text.
func (s *Service) Parse(mode, text string, allowNegative bool) (ParseResult, error) {
	res := ParseResult{Mode: mode}
	switch mode {
	case ParseInt:
		v := numparse.ExtractInt(text, allowNegative)
		res.Value = &v
		res.Formatted = fmt.Sprint(v)
	case ParseList:
		res.Values = numparse.ExtractIntList(text, allowNegative)
		res.Formatted = numparse.FormatList(res.Values)
	case ParseDestinations:
		res.Values = numparse.DestinationList(text)
		res.Formatted = numparse.FormatList(res.Values)
	default:
		return ParseResult{}, fmt.Errorf("%w: %q", ErrUnknownParseMode, mode)
	}
	metrics.RecordParse(mode)
	return res, nil
}

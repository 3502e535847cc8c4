package collector

import (
	"github.com/AlecAivazis/survey/v2"
)

// SurveyPrompter asks questions on the terminal.
type SurveyPrompter struct {
	opts []survey.AskOpt
}

// NewSurveyPrompter creates a prompter using the given survey options,
// e.g. survey.WithStdio for non-default streams.
func NewSurveyPrompter(opts ...survey.AskOpt) *SurveyPrompter {
	return &SurveyPrompter{opts: opts}
}

// Confirm asks a yes/no question.
func (p *SurveyPrompter) Confirm(message string, def bool) (bool, error) {
	var answer bool
	err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &answer, p.opts...)
	return answer, err
}

// Input asks for a line of text.
func (p *SurveyPrompter) Input(message, def string) (string, error) {
	var answer string
	err := survey.AskOne(&survey.Input{Message: message, Default: def}, &answer, p.opts...)
	return answer, err
}

// Select asks the user to pick one of options.
func (p *SurveyPrompter) Select(message string, options []string) (string, error) {
	var answer string
	err := survey.AskOne(&survey.Select{Message: message, Options: options}, &answer, p.opts...)
	return answer, err
}

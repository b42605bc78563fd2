package chart

import "unicode/utf8"

type InputStatus string

const (
	InputOK       InputStatus = "ok"
	InputEmpty    InputStatus = "empty"
	InputTooShort InputStatus = "too_short"
	InputTooLong  InputStatus = "too_long"
)

// InputCheck is the verdict on chart text before it is sent for generation.
type InputCheck struct {
	Length int         `json:"length"`
	Status InputStatus `json:"status"`
}

func (c InputCheck) OK() bool { return c.Status == InputOK }

// CheckInput counts characters of the trimmed text against [min, max].
// A max of zero disables the upper bound.
func CheckInput(text string, min, max int) InputCheck {
	n := utf8.RuneCountInString(trimSpace(text))
	c := InputCheck{Length: n, Status: InputOK}
	switch {
	case n == 0:
		c.Status = InputEmpty
	case n < min:
		c.Status = InputTooShort
	case max > 0 && n > max:
		c.Status = InputTooLong
	}
	return c
}

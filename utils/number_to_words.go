package utils

import (
	"math"
	"strings"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// Indian numbering: hundreds, then groups of two digits (thousand,
// lakh, crore).
var scales = []struct {
	value int
	name  string
}{
	{10000000, "Crore"},
	{100000, "Lakh"},
	{1000, "Thousand"},
	{100, "Hundred"},
}

// NumberToWords spells num in the Indian system. Zero returns "".
func NumberToWords(num int) string {
	if num == 0 {
		return ""
	}

	var parts []string
	for _, s := range scales {
		if num >= s.value {
			parts = append(parts, NumberToWords(num/s.value), s.name)
			num %= s.value
		}
	}
	if num >= 20 {
		parts = append(parts, tens[num/10])
		num %= 10
	}
	if num > 0 {
		parts = append(parts, ones[num])
	}
	return strings.Join(parts, " ")
}

// NumberToCurrencyWords spells an amount as rupees and paise, ending
// with "Only" as bill wording requires.
func NumberToCurrencyWords(amount float64) string {
	rupees := int(math.Floor(amount))
	paise := int(math.Round((amount - float64(rupees)) * 100))
	// Float noise near a whole rupee can round the fraction to 100
	// paise; carry it over.
	if paise == 100 {
		rupees++
		paise = 0
	}

	var parts []string
	if rupees > 0 {
		parts = append(parts, NumberToWords(rupees)+" Rupees")
	}
	if paise > 0 {
		parts = append(parts, NumberToWords(paise)+" Paise")
	}
	if len(parts) == 0 {
		return "Zero Rupees Only"
	}
	return strings.Join(parts, " and ") + " Only"
}

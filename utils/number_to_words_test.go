package utils

import "testing"

func TestNumberToWordsIndianSystem(t *testing.T) {
	cases := []struct {
		num  int
		want string
	}{
		{0, ""},
		{7, "Seven"},
		{19, "Nineteen"},
		{45, "Forty Five"},
		{300, "Three Hundred"},
		{512, "Five Hundred Twelve"},
		{1500, "One Thousand Five Hundred"},
		{100000, "One Lakh"},
		{2350000, "Twenty Three Lakh Fifty Thousand"},
		{10000000, "One Crore"},
		{12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight"},
	}
	for _, c := range cases {
		if got := NumberToWords(c.num); got != c.want {
			t.Errorf("NumberToWords(%d) = %q, want %q", c.num, got, c.want)
		}
	}
}

func TestNumberToCurrencyWords(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "Zero Rupees Only"},
		{5900, "Five Thousand Nine Hundred Rupees Only"},
		{1234.56, "One Thousand Two Hundred Thirty Four Rupees and Fifty Six Paise Only"},
		{0.05, "Five Paise Only"},
		{2.9999, "Three Rupees Only"},
		{0.9999, "One Rupees Only"},
	}
	for _, c := range cases {
		if got := NumberToCurrencyWords(c.amount); got != c.want {
			t.Errorf("NumberToCurrencyWords(%v) = %q, want %q", c.amount, got, c.want)
		}
	}
}

package utils

import (
	"fmt"
	"strconv"
)

// FormatRupiah renders integer amount with thousand separators.
func FormatRupiah(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%sRp%s", sign, formatThousand(amount))
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out []byte
	for i := 0; i < len(str); i++ {
		if i != 0 && (len(str)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, str[i])
	}
	return string(out)
}

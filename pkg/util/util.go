package util

import (
	"math"
	"strings"
	"unicode"
)

func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

func ReverseG[T any](arr []T) []T {
	copyArr := make([]T, len(arr)) // should do on the copy )
	copy(copyArr, arr)
	for i, j := 0, len(copyArr)-1; i < j; i, j = i+1, j-1 {
		copyArr[i], copyArr[j] = copyArr[j], copyArr[i]
	}
	return copyArr
}

// CleanString lower case, cuma huruf ascii & spasi yang disimpan.
func CleanString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r == ' ' || (r < unicode.MaxASCII && unicode.IsLetter(r)) {
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return sb.String()
}

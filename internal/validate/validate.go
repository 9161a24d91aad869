// Package validate は登録入力のバリデーションを提供する。
package validate

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hitoshi/tsunagu/internal/model"
)

// monthNames は月番号（1〜12）から英語の月名への変換テーブル。
var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Password はパスワード強度を検証する。
// 8文字以上、かつ小文字・大文字・数字・記号（非ワード文字）を
// それぞれ1つ以上含む場合にtrueを返す。4条件はすべて必須（AND）。
func Password(p string) bool {
	if utf8.RuneCountInString(p) < 8 {
		return false
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r) && r != '_':
			// ワード文字（英数字とアンダースコア）以外を記号として扱う
			hasSymbol = true
		}
	}

	return hasLower && hasUpper && hasDigit && hasSymbol
}

// Birthday は誕生日文字列のパース結果を表す。
type Birthday struct {
	MonthName string // 英語の月名（"January"〜"December"）
	Day       int
	Year      int
}

// ParseBirthday は"YYYY-MM-DD"形式の文字列をパースする。
// 3つの整数に分割できない、または月が1〜12の範囲外の場合は形式エラーを返す。
// 日が1〜31、年が1900〜2025の範囲外の場合は範囲エラーを返す。
// 日と月の組み合わせ（2月31日など）は検証しない。
func ParseBirthday(s string) (*Birthday, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return nil, model.NewInvalidBirthdayFormatError()
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, model.NewInvalidBirthdayFormatError()
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, model.NewInvalidBirthdayFormatError()
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, model.NewInvalidBirthdayFormatError()
	}

	if month < 1 || month > 12 {
		return nil, model.NewInvalidBirthdayFormatError()
	}

	if day < 1 || day > 31 || year < 1900 || year > 2025 {
		return nil, model.NewInvalidBirthdayRangeError()
	}

	return &Birthday{
		MonthName: monthNames[month-1],
		Day:       day,
		Year:      year,
	}, nil
}
